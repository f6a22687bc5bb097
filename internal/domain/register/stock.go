// Package register holds the stock registers: one quantity row per
// supply and per product, keyed uniquely on the owning entity.
package register

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
)

// StockInsumo is the stock row of a supply. Listings join the supply
// name for display.
type StockInsumo struct {
	IDStock   int64           `db:"id_stock" json:"id_stock"`
	IDInsumo  int64           `db:"id_insumo" json:"id_insumo"`
	Cantidad  decimal.Decimal `db:"cantidad" json:"cantidad"`
	Usuario   *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`

	NombreInsumo *string `db:"nombre_insumo" json:"nombre_insumo,omitempty"`
}

// StockProducto is the stock row of a product.
type StockProducto struct {
	IDStock    int64           `db:"id_stock" json:"id_stock"`
	IDProducto int64           `db:"id_producto" json:"id_producto"`
	Cantidad   decimal.Decimal `db:"cantidad" json:"cantidad"`
	Usuario    *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`

	NombreProducto *string `db:"nombre_producto" json:"nombre_producto,omitempty"`
	SKU            *string `db:"sku" json:"sku,omitempty"`
}

// StockInsumoRepository persists supply stock. Upsert is keyed on the
// supply id; UpdateCantidad overwrites the stored quantity.
type StockInsumoRepository interface {
	ListAll(ctx context.Context) ([]StockInsumo, error)
	GetByInsumoID(ctx context.Context, idInsumo int64) (StockInsumo, error)
	Upsert(ctx context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (StockInsumo, error)
	UpdateCantidad(ctx context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (StockInsumo, error)
}

// StockProductoRepository persists product stock. Unlike the supply
// register, UpdateCantidad ADDS the given quantity to the stored one;
// callers that need an absolute value use Upsert.
type StockProductoRepository interface {
	ListAll(ctx context.Context) ([]StockProducto, error)
	GetByProductoID(ctx context.Context, idProducto int64) (StockProducto, error)
	Upsert(ctx context.Context, idProducto int64, cantidad decimal.Decimal, usuario string) (StockProducto, error)
	UpdateCantidad(ctx context.Context, idProducto int64, delta decimal.Decimal, usuario string) (StockProducto, error)
}

// StockService exposes both registers behind one facade.
type StockService struct {
	insumos   StockInsumoRepository
	productos StockProductoRepository
}

// NewStockService creates a stock service.
func NewStockService(insumos StockInsumoRepository, productos StockProductoRepository) *StockService {
	return &StockService{insumos: insumos, productos: productos}
}

// ListInsumos returns every supply stock row with the supply name.
func (s *StockService) ListInsumos(ctx context.Context) ([]StockInsumo, error) {
	return s.insumos.ListAll(ctx)
}

// GetInsumo returns the stock row of one supply.
func (s *StockService) GetInsumo(ctx context.Context, idInsumo int64) (StockInsumo, error) {
	return s.insumos.GetByInsumoID(ctx, idInsumo)
}

// UpsertInsumo creates or overwrites the stock row of a supply.
func (s *StockService) UpsertInsumo(ctx context.Context, idInsumo int64, cantidad decimal.Decimal) (StockInsumo, error) {
	return s.insumos.Upsert(ctx, idInsumo, cantidad, appctx.ActingUser(ctx))
}

// SetInsumoCantidad overwrites the quantity of an existing supply row.
func (s *StockService) SetInsumoCantidad(ctx context.Context, idInsumo int64, cantidad decimal.Decimal) (StockInsumo, error) {
	return s.insumos.UpdateCantidad(ctx, idInsumo, cantidad, appctx.ActingUser(ctx))
}

// ListProductos returns every product stock row with name and SKU.
func (s *StockService) ListProductos(ctx context.Context) ([]StockProducto, error) {
	return s.productos.ListAll(ctx)
}

// GetProducto returns the stock row of one product.
func (s *StockService) GetProducto(ctx context.Context, idProducto int64) (StockProducto, error) {
	return s.productos.GetByProductoID(ctx, idProducto)
}

// UpsertProducto creates or overwrites the stock row of a product.
func (s *StockService) UpsertProducto(ctx context.Context, idProducto int64, cantidad decimal.Decimal) (StockProducto, error) {
	return s.productos.Upsert(ctx, idProducto, cantidad, appctx.ActingUser(ctx))
}

// AddProductoCantidad increments the quantity of an existing product
// row by delta.
func (s *StockService) AddProductoCantidad(ctx context.Context, idProducto int64, delta decimal.Decimal) (StockProducto, error) {
	return s.productos.UpdateCantidad(ctx, idProducto, delta, appctx.ActingUser(ctx))
}
