package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/apperror"
	"abarrote/internal/core/appctx"
	"abarrote/internal/core/tx"
	"abarrote/internal/domain"
)

// Marketplace-published flag values.
const (
	PublicadoSi = "si"
	PublicadoNo = "no"
)

// Producto is a sellable product composed from supplies.
type Producto struct {
	IDProducto     int64           `db:"id_producto" json:"id_producto"`
	SKU            string          `db:"sku" json:"sku"`
	NombreProducto string          `db:"nombre_producto" json:"nombre_producto"`
	Descripcion    *string         `db:"descripcion" json:"descripcion"`
	PrecioVenta    decimal.Decimal `db:"precio_venta" json:"precio_venta"`
	TipoProducto   *int64          `db:"tipo_producto" json:"tipo_producto"`
	PublicadoML    string          `db:"publicado_ml" json:"publicado_ml"`
	Status         string          `db:"status" json:"status"`
	Usuario        *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductoInsumo is one line of a product's bill of materials. The
// composite key is (id_producto, id_insumo); re-adding a pair
// overwrites quantity and cost in place. Stored neto/iva/total are
// authoritative once set, the joined supply name/price are display
// only.
type ProductoInsumo struct {
	IDProducto int64            `db:"id_producto" json:"id_producto"`
	IDInsumo   int64            `db:"id_insumo" json:"id_insumo"`
	Cantidad   decimal.Decimal  `db:"cantidad" json:"cantidad"`
	Neto       *decimal.Decimal `db:"neto" json:"neto"`
	IVA        *decimal.Decimal `db:"iva" json:"iva"`
	Total      *decimal.Decimal `db:"total" json:"total"`
	Usuario    *string          `db:"usuario" json:"usuario,omitempty"`

	NombreInsumo *string          `db:"nombre_insumo" json:"nombre_insumo,omitempty"`
	PrecioInsumo *decimal.Decimal `db:"precio_insumo" json:"precio_insumo,omitempty"`
}

// CreateProducto carries the fields accepted on creation.
type CreateProducto struct {
	SKU            string          `json:"sku" binding:"required"`
	NombreProducto string          `json:"nombre_producto" binding:"required"`
	Descripcion    *string         `json:"descripcion"`
	PrecioVenta    decimal.Decimal `json:"precio_venta" binding:"required"`
	TipoProducto   *int64          `json:"tipo_producto"`
}

// UpdateProducto is the partial-update patch. When Insumos is non-nil
// the product's whole bill of materials is replaced with it; when nil
// the existing lines are left untouched.
type UpdateProducto struct {
	SKU            *string          `db:"sku" json:"sku"`
	NombreProducto *string          `db:"nombre_producto" json:"nombre_producto"`
	Descripcion    *string          `db:"descripcion" json:"descripcion"`
	PrecioVenta    *decimal.Decimal `db:"precio_venta" json:"precio_venta"`
	TipoProducto   *int64           `db:"tipo_producto" json:"tipo_producto"`
	Status         *string          `db:"status" json:"status"`

	Insumos *[]BOMLine `db:"-" json:"insumos"`
}

// BOMLine is one incoming bill-of-materials entry.
type BOMLine struct {
	IDInsumo int64            `json:"id_insumo" binding:"required"`
	Cantidad decimal.Decimal  `json:"cantidad" binding:"required"`
	Neto     *decimal.Decimal `json:"neto"`
	IVA      *decimal.Decimal `json:"iva"`
	Total    *decimal.Decimal `json:"total"`
}

// ProductoRepository is the persistence contract for products and
// their bill of materials.
type ProductoRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Producto], error)
	GetByID(ctx context.Context, id int64) (Producto, error)
	FindBySKU(ctx context.Context, sku string) (*Producto, error)
	Create(ctx context.Context, p Producto) (Producto, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateProducto, usuario string) (Producto, error)
	SetPublicadoML(ctx context.Context, id int64, publicado string, usuario string) (Producto, error)
	TogglePublicadoML(ctx context.Context, id int64, usuario string) (Producto, error)
	SoftDelete(ctx context.Context, id int64, usuario string) error

	ListInsumos(ctx context.Context, idProducto int64) ([]ProductoInsumo, error)
	UpsertInsumo(ctx context.Context, idProducto int64, line BOMLine, usuario string) (ProductoInsumo, error)
	ReplaceInsumos(ctx context.Context, idProducto int64, lines []BOMLine, usuario string) error
	RemoveInsumo(ctx context.Context, idProducto, idInsumo int64) error
}

// ProductoService implements the product use cases, including the SKU
// uniqueness rule and bill-of-materials maintenance.
type ProductoService struct {
	repo ProductoRepository
	txm  tx.Manager
}

// NewProductoService creates a product service.
func NewProductoService(repo ProductoRepository, txm tx.Manager) *ProductoService {
	return &ProductoService{repo: repo, txm: txm}
}

// List returns products paginated, with optional search and type
// filter.
func (s *ProductoService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Producto], error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single product.
func (s *ProductoService) Get(ctx context.Context, id int64) (Producto, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a product after checking the SKU is unused. The
// lookup is racy under concurrent writes, so the repository also
// translates the unique-constraint violation into the same error.
func (s *ProductoService) Create(ctx context.Context, in CreateProducto) (Producto, error) {
	existing, err := s.repo.FindBySKU(ctx, in.SKU)
	if err != nil {
		return Producto{}, err
	}
	if existing != nil {
		return Producto{}, apperror.NewDuplicate("El SKU ya existe")
	}

	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Producto{
		SKU:            in.SKU,
		NombreProducto: in.NombreProducto,
		Descripcion:    in.Descripcion,
		PrecioVenta:    in.PrecioVenta,
		TipoProducto:   in.TipoProducto,
		Usuario:        &usuario,
	})
}

// Update applies a partial update. A SKU change is rejected when the
// new SKU belongs to a different product. When the patch carries a
// bill-of-materials array the whole line set is replaced inside the
// same transaction as the field update.
func (s *ProductoService) Update(ctx context.Context, id int64, patch UpdateProducto) (Producto, error) {
	if patch.SKU != nil {
		existing, err := s.repo.FindBySKU(ctx, *patch.SKU)
		if err != nil {
			return Producto{}, err
		}
		if existing != nil && existing.IDProducto != id {
			return Producto{}, apperror.NewDuplicate("El SKU ya existe en otro producto")
		}
	}

	usuario := appctx.ActingUser(ctx)

	var updated Producto
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.UpdatePartial(txCtx, id, patch, usuario)
		if err != nil {
			return err
		}

		if patch.Insumos != nil {
			return s.repo.ReplaceInsumos(txCtx, id, *patch.Insumos, usuario)
		}
		return nil
	})
	if err != nil {
		return Producto{}, err
	}

	return updated, nil
}

// Delete marks the product inactive.
func (s *ProductoService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, appctx.ActingUser(ctx))
}

// SetPublicadoML sets the marketplace flag to an explicit value.
func (s *ProductoService) SetPublicadoML(ctx context.Context, id int64, publicado string) (Producto, error) {
	if publicado != PublicadoSi && publicado != PublicadoNo {
		return Producto{}, apperror.NewValidation("publicado_ml debe ser 'si' o 'no'")
	}
	return s.repo.SetPublicadoML(ctx, id, publicado, appctx.ActingUser(ctx))
}

// TogglePublicadoML flips the marketplace flag. Two toggles in a row
// restore the original value.
func (s *ProductoService) TogglePublicadoML(ctx context.Context, id int64) (Producto, error) {
	return s.repo.TogglePublicadoML(ctx, id, appctx.ActingUser(ctx))
}

// ListInsumos returns the product's bill of materials joined with
// current supply names and prices.
func (s *ProductoService) ListInsumos(ctx context.Context, idProducto int64) ([]ProductoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idProducto); err != nil {
		return nil, err
	}
	return s.repo.ListInsumos(ctx, idProducto)
}

// AddInsumo upserts one bill-of-materials line keyed on the
// (product, supply) pair.
func (s *ProductoService) AddInsumo(ctx context.Context, idProducto int64, line BOMLine) (ProductoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idProducto); err != nil {
		return ProductoInsumo{}, err
	}
	return s.repo.UpsertInsumo(ctx, idProducto, line, appctx.ActingUser(ctx))
}

// ReplaceInsumos swaps the whole bill of materials for the given set
// inside one transaction. An empty set leaves the product with zero
// lines; any failure leaves the prior set intact.
func (s *ProductoService) ReplaceInsumos(ctx context.Context, idProducto int64, lines []BOMLine) ([]ProductoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idProducto); err != nil {
		return nil, err
	}

	usuario := appctx.ActingUser(ctx)
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceInsumos(txCtx, idProducto, lines, usuario)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListInsumos(ctx, idProducto)
}

// RemoveInsumo deletes one bill-of-materials line.
func (s *ProductoService) RemoveInsumo(ctx context.Context, idProducto, idInsumo int64) error {
	return s.repo.RemoveInsumo(ctx, idProducto, idInsumo)
}
