package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
	"abarrote/internal/domain"
)

// Plataforma is a sales platform with its commission rate.
type Plataforma struct {
	IDPlataforma     int64           `db:"id_plataforma" json:"id_plataforma"`
	NombrePlataforma string          `db:"nombre_plataforma" json:"nombre_plataforma"`
	Comision         decimal.Decimal `db:"comision" json:"comision"`
	Status           string          `db:"status" json:"status"`
	Usuario          *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// CreatePlataforma carries the fields accepted on creation.
type CreatePlataforma struct {
	NombrePlataforma string          `json:"nombre_plataforma" binding:"required"`
	Comision         decimal.Decimal `json:"comision"`
}

// UpdatePlataforma is the partial-update patch.
type UpdatePlataforma struct {
	NombrePlataforma *string          `db:"nombre_plataforma" json:"nombre_plataforma"`
	Comision         *decimal.Decimal `db:"comision" json:"comision"`
	Status           *string          `db:"status" json:"status"`
}

// PlataformaRepository is the persistence contract for platforms.
type PlataformaRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Plataforma], error)
	GetByID(ctx context.Context, id int64) (Plataforma, error)
	Create(ctx context.Context, p Plataforma) (Plataforma, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdatePlataforma, usuario string) (Plataforma, error)
	SoftDelete(ctx context.Context, id int64, usuario string) error
}

// PlataformaService implements the platform use cases.
type PlataformaService struct {
	repo PlataformaRepository
}

// NewPlataformaService creates a platform service.
func NewPlataformaService(repo PlataformaRepository) *PlataformaService {
	return &PlataformaService{repo: repo}
}

func (s *PlataformaService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Plataforma], error) {
	return s.repo.List(ctx, filter)
}

func (s *PlataformaService) Get(ctx context.Context, id int64) (Plataforma, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PlataformaService) Create(ctx context.Context, in CreatePlataforma) (Plataforma, error) {
	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Plataforma{
		NombrePlataforma: in.NombrePlataforma,
		Comision:         in.Comision,
		Usuario:          &usuario,
	})
}

func (s *PlataformaService) Update(ctx context.Context, id int64, patch UpdatePlataforma) (Plataforma, error) {
	return s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx))
}

func (s *PlataformaService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, appctx.ActingUser(ctx))
}
