package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
	"abarrote/internal/domain"
)

// Caja is a packaging box, used as a cost component of a cost record.
type Caja struct {
	IDCaja     int64           `db:"id_caja" json:"id_caja"`
	NombreCaja string          `db:"nombre_caja" json:"nombre_caja"`
	Precio     decimal.Decimal `db:"precio" json:"precio"`
	Status     string          `db:"status" json:"status"`
	Usuario    *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// CreateCaja carries the fields accepted on creation.
type CreateCaja struct {
	NombreCaja string          `json:"nombre_caja" binding:"required"`
	Precio     decimal.Decimal `json:"precio" binding:"required"`
}

// UpdateCaja is the partial-update patch.
type UpdateCaja struct {
	NombreCaja *string          `db:"nombre_caja" json:"nombre_caja"`
	Precio     *decimal.Decimal `db:"precio" json:"precio"`
	Status     *string          `db:"status" json:"status"`
}

// CajaRepository is the persistence contract for boxes.
type CajaRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Caja], error)
	GetByID(ctx context.Context, id int64) (Caja, error)
	Create(ctx context.Context, c Caja) (Caja, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateCaja, usuario string) (Caja, error)
	SoftDelete(ctx context.Context, id int64, usuario string) error
}

// CajaService implements the box use cases.
type CajaService struct {
	repo CajaRepository
}

// NewCajaService creates a box service.
func NewCajaService(repo CajaRepository) *CajaService {
	return &CajaService{repo: repo}
}

func (s *CajaService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Caja], error) {
	return s.repo.List(ctx, filter)
}

func (s *CajaService) Get(ctx context.Context, id int64) (Caja, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CajaService) Create(ctx context.Context, in CreateCaja) (Caja, error) {
	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Caja{
		NombreCaja: in.NombreCaja,
		Precio:     in.Precio,
		Usuario:    &usuario,
	})
}

func (s *CajaService) Update(ctx context.Context, id int64, patch UpdateCaja) (Caja, error) {
	return s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx))
}

func (s *CajaService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, appctx.ActingUser(ctx))
}
