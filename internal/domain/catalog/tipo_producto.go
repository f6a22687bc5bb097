package catalog

import (
	"context"

	"abarrote/internal/domain"
)

// TipoProducto is a product type lookup, used as a listing filter on
// products. No foreign key is enforced.
type TipoProducto struct {
	IDTipo             int64  `db:"id_tipo" json:"id_tipo"`
	NombreTipoProducto string `db:"nombre_tipo_producto" json:"nombre_tipo_producto"`
}

// CreateTipoProducto carries the fields accepted on creation.
type CreateTipoProducto struct {
	NombreTipoProducto string `json:"nombre_tipo_producto" binding:"required"`
}

// UpdateTipoProducto is the partial-update patch.
type UpdateTipoProducto struct {
	NombreTipoProducto *string `db:"nombre_tipo_producto" json:"nombre_tipo_producto"`
}

// TipoProductoRepository is the persistence contract for product
// types.
type TipoProductoRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[TipoProducto], error)
	GetByID(ctx context.Context, id int64) (TipoProducto, error)
	Create(ctx context.Context, t TipoProducto) (TipoProducto, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateTipoProducto) (TipoProducto, error)
}

// TipoProductoService implements the product type use cases.
type TipoProductoService struct {
	repo TipoProductoRepository
}

// NewTipoProductoService creates a product type service.
func NewTipoProductoService(repo TipoProductoRepository) *TipoProductoService {
	return &TipoProductoService{repo: repo}
}

func (s *TipoProductoService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[TipoProducto], error) {
	return s.repo.List(ctx, filter)
}

func (s *TipoProductoService) Get(ctx context.Context, id int64) (TipoProducto, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TipoProductoService) Create(ctx context.Context, in CreateTipoProducto) (TipoProducto, error) {
	return s.repo.Create(ctx, TipoProducto{NombreTipoProducto: in.NombreTipoProducto})
}

// Update renames a product type. A body with no recognized fields is
// a no-op, mirroring the category policy.
func (s *TipoProductoService) Update(ctx context.Context, id int64, patch UpdateTipoProducto) (TipoProducto, error) {
	if patch.NombreTipoProducto == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdatePartial(ctx, id, patch)
}
