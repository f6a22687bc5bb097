// Package catalog holds the catalog entities of the back office:
// supplies, products, boxes, bundles, platforms, clients and the small
// lookup tables. Each entity declares its model, its repository
// contract and a service with the business rules around it.
package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
	"abarrote/internal/core/tx"
	"abarrote/internal/domain"
	"abarrote/internal/domain/register"
)

// Insumo is a raw supply. Listings join the category name and the
// current stock quantity; those fields are empty outside of reads.
type Insumo struct {
	IDInsumo     int64            `db:"id_insumo" json:"id_insumo"`
	NombreInsumo string           `db:"nombre_insumo" json:"nombre_insumo"`
	IDCategoria  *int64           `db:"id_categoria" json:"id_categoria"`
	PrecioInsumo *decimal.Decimal `db:"precio_insumo" json:"precio_insumo"`
	LinkInsumo   *string          `db:"link_insumo" json:"link_insumo"`
	Status       string           `db:"status" json:"status"`
	Usuario      *string          `db:"usuario" json:"usuario,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`

	// Joined fields, read-only.
	NombreCategoria *string          `db:"nombre_categoria" json:"nombre_categoria,omitempty"`
	Cantidad        *decimal.Decimal `db:"cantidad" json:"cantidad,omitempty"`
}

// CreateInsumo carries the fields accepted on creation.
type CreateInsumo struct {
	NombreInsumo string           `json:"nombre_insumo" binding:"required"`
	IDCategoria  *int64           `json:"id_categoria"`
	PrecioInsumo *decimal.Decimal `json:"precio_insumo"`
	LinkInsumo   *string          `json:"link_insumo"`
}

// UpdateInsumo is the partial-update patch. Nil fields are left
// untouched.
type UpdateInsumo struct {
	NombreInsumo *string          `db:"nombre_insumo" json:"nombre_insumo"`
	IDCategoria  *int64           `db:"id_categoria" json:"id_categoria"`
	PrecioInsumo *decimal.Decimal `db:"precio_insumo" json:"precio_insumo"`
	LinkInsumo   *string          `db:"link_insumo" json:"link_insumo"`
	Status       *string          `db:"status" json:"status"`
}

// InsumoRepository is the persistence contract for supplies.
type InsumoRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Insumo], error)
	GetByID(ctx context.Context, id int64) (Insumo, error)
	Create(ctx context.Context, ins Insumo) (Insumo, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateInsumo, usuario string) (Insumo, error)
	SoftDelete(ctx context.Context, id int64, usuario string) error
}

// InsumoService implements the supply use cases. Creation also seeds
// the supply's stock row at quantity zero inside one transaction, so a
// supply never exists without stock.
type InsumoService struct {
	repo  InsumoRepository
	stock register.StockInsumoRepository
	txm   tx.Manager
}

// NewInsumoService creates a supply service.
func NewInsumoService(repo InsumoRepository, stock register.StockInsumoRepository, txm tx.Manager) *InsumoService {
	return &InsumoService{repo: repo, stock: stock, txm: txm}
}

// List returns supplies paginated and optionally filtered by search
// substring and category.
func (s *InsumoService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Insumo], error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single supply with its category and stock quantity.
func (s *InsumoService) Get(ctx context.Context, id int64) (Insumo, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts the supply and its zero-quantity stock row atomically.
func (s *InsumoService) Create(ctx context.Context, in CreateInsumo) (Insumo, error) {
	usuario := appctx.ActingUser(ctx)

	var created Insumo
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, Insumo{
			NombreInsumo: in.NombreInsumo,
			IDCategoria:  in.IDCategoria,
			PrecioInsumo: in.PrecioInsumo,
			LinkInsumo:   in.LinkInsumo,
			Usuario:      &usuario,
		})
		if err != nil {
			return err
		}

		_, err = s.stock.Upsert(txCtx, created.IDInsumo, decimal.Zero, usuario)
		return err
	})
	if err != nil {
		return Insumo{}, err
	}

	return s.repo.GetByID(ctx, created.IDInsumo)
}

// Update applies a partial update and stamps the acting user.
func (s *InsumoService) Update(ctx context.Context, id int64, patch UpdateInsumo) (Insumo, error) {
	if _, err := s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx)); err != nil {
		return Insumo{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete marks the supply inactive. Its stock row is kept.
func (s *InsumoService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, appctx.ActingUser(ctx))
}
