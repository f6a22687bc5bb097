package document

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
	"abarrote/internal/core/tx"
)

// Costo is a cost configuration for a product: one box, one bundle,
// one platform plus an independent bill of materials scoped to this
// record. Cost records are hard-deleted, never soft-deleted.
type Costo struct {
	IDCosto      int64            `db:"id_costo" json:"id_costo"`
	IDProducto   int64            `db:"id_producto" json:"id_producto"`
	IDCaja       int64            `db:"id_caja" json:"id_caja"`
	IDCadena     int64            `db:"id_cadena" json:"id_cadena"`
	IDPlataforma int64            `db:"id_plataforma" json:"id_plataforma"`
	Neto         *decimal.Decimal `db:"neto" json:"neto"`
	IVA          *decimal.Decimal `db:"iva" json:"iva"`
	Total        *decimal.Decimal `db:"total" json:"total"`
	Usuario      *string          `db:"usuario" json:"usuario,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`

	NombreProducto   *string `db:"nombre_producto" json:"nombre_producto,omitempty"`
	SKU              *string `db:"sku" json:"sku,omitempty"`
	NombreCaja       *string `db:"nombre_caja" json:"nombre_caja,omitempty"`
	NombreCadena     *string `db:"nombre_cadena" json:"nombre_cadena,omitempty"`
	NombrePlataforma *string `db:"nombre_plataforma" json:"nombre_plataforma,omitempty"`
}

// CostoInsumo is one supply line of a cost record, keyed on the
// (cost, supply) pair.
type CostoInsumo struct {
	IDCosto  int64           `db:"id_costo" json:"id_costo"`
	IDInsumo int64           `db:"id_insumo" json:"id_insumo"`
	Cantidad decimal.Decimal `db:"cantidad" json:"cantidad"`
	Usuario  *string         `db:"usuario" json:"usuario,omitempty"`

	NombreInsumo *string          `db:"nombre_insumo" json:"nombre_insumo,omitempty"`
	PrecioInsumo *decimal.Decimal `db:"precio_insumo" json:"precio_insumo,omitempty"`
}

// CreateCosto carries the fields accepted on creation.
type CreateCosto struct {
	IDProducto   int64            `json:"id_producto" binding:"required"`
	IDCaja       int64            `json:"id_caja" binding:"required"`
	IDCadena     int64            `json:"id_cadena" binding:"required"`
	IDPlataforma int64            `json:"id_plataforma" binding:"required"`
	Neto         *decimal.Decimal `json:"neto"`
	IVA          *decimal.Decimal `json:"iva"`
	Total        *decimal.Decimal `json:"total"`
}

// UpdateCosto is the partial-update patch. The owning product cannot
// change.
type UpdateCosto struct {
	IDCaja       *int64           `db:"id_caja" json:"id_caja"`
	IDCadena     *int64           `db:"id_cadena" json:"id_cadena"`
	IDPlataforma *int64           `db:"id_plataforma" json:"id_plataforma"`
	Neto         *decimal.Decimal `db:"neto" json:"neto"`
	IVA          *decimal.Decimal `db:"iva" json:"iva"`
	Total        *decimal.Decimal `db:"total" json:"total"`
}

// CostoBOMLine is one incoming cost record line.
type CostoBOMLine struct {
	IDInsumo int64           `json:"id_insumo" binding:"required"`
	Cantidad decimal.Decimal `json:"cantidad" binding:"required"`
}

// CostoRepository is the persistence contract for cost records.
type CostoRepository interface {
	ListAll(ctx context.Context) ([]Costo, error)
	GetByID(ctx context.Context, id int64) (Costo, error)
	ListByProductoID(ctx context.Context, idProducto int64) ([]Costo, error)
	Create(ctx context.Context, c Costo) (Costo, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateCosto, usuario string) (Costo, error)
	HardDelete(ctx context.Context, id int64) error

	ListInsumos(ctx context.Context, idCosto int64) ([]CostoInsumo, error)
	UpsertInsumo(ctx context.Context, idCosto int64, line CostoBOMLine, usuario string) (CostoInsumo, error)
	ReplaceInsumos(ctx context.Context, idCosto int64, lines []CostoBOMLine, usuario string) error
	RemoveInsumo(ctx context.Context, idCosto, idInsumo int64) error
}

// CostoService implements the cost record use cases.
type CostoService struct {
	repo CostoRepository
	txm  tx.Manager
}

// NewCostoService creates a cost record service.
func NewCostoService(repo CostoRepository, txm tx.Manager) *CostoService {
	return &CostoService{repo: repo, txm: txm}
}

// List returns every cost record with its joined display names.
func (s *CostoService) List(ctx context.Context) ([]Costo, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a single cost record.
func (s *CostoService) Get(ctx context.Context, id int64) (Costo, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByProducto returns every cost record of one product.
func (s *CostoService) ListByProducto(ctx context.Context, idProducto int64) ([]Costo, error) {
	return s.repo.ListByProductoID(ctx, idProducto)
}

// Create inserts a cost record.
func (s *CostoService) Create(ctx context.Context, in CreateCosto) (Costo, error) {
	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Costo{
		IDProducto:   in.IDProducto,
		IDCaja:       in.IDCaja,
		IDCadena:     in.IDCadena,
		IDPlataforma: in.IDPlataforma,
		Neto:         in.Neto,
		IVA:          in.IVA,
		Total:        in.Total,
		Usuario:      &usuario,
	})
}

// Update applies a partial update.
func (s *CostoService) Update(ctx context.Context, id int64, patch UpdateCosto) (Costo, error) {
	return s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx))
}

// Delete removes the cost record and, via the database cascade, its
// lines.
func (s *CostoService) Delete(ctx context.Context, id int64) error {
	return s.repo.HardDelete(ctx, id)
}

// ListInsumos returns the record's lines with supply names and
// prices.
func (s *CostoService) ListInsumos(ctx context.Context, idCosto int64) ([]CostoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCosto); err != nil {
		return nil, err
	}
	return s.repo.ListInsumos(ctx, idCosto)
}

// AddInsumo upserts one line keyed on the (cost, supply) pair.
func (s *CostoService) AddInsumo(ctx context.Context, idCosto int64, line CostoBOMLine) (CostoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCosto); err != nil {
		return CostoInsumo{}, err
	}
	return s.repo.UpsertInsumo(ctx, idCosto, line, appctx.ActingUser(ctx))
}

// ReplaceInsumos swaps the whole line set transactionally.
func (s *CostoService) ReplaceInsumos(ctx context.Context, idCosto int64, lines []CostoBOMLine) ([]CostoInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCosto); err != nil {
		return nil, err
	}

	usuario := appctx.ActingUser(ctx)
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceInsumos(txCtx, idCosto, lines, usuario)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListInsumos(ctx, idCosto)
}

// RemoveInsumo deletes one line.
func (s *CostoService) RemoveInsumo(ctx context.Context, idCosto, idInsumo int64) error {
	return s.repo.RemoveInsumo(ctx, idCosto, idInsumo)
}
