package catalog

import (
	"context"

	"abarrote/internal/domain"
)

// Categoria is a supply category lookup: id and name only, no audit
// trail.
type Categoria struct {
	IDCategoria     int64  `db:"id_categoria" json:"id_categoria"`
	NombreCategoria string `db:"nombre_categoria" json:"nombre_categoria"`
}

// CreateCategoria carries the fields accepted on creation.
type CreateCategoria struct {
	NombreCategoria string `json:"nombre_categoria" binding:"required"`
}

// UpdateCategoria is the partial-update patch.
type UpdateCategoria struct {
	NombreCategoria *string `db:"nombre_categoria" json:"nombre_categoria"`
}

// CategoriaRepository is the persistence contract for categories.
type CategoriaRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Categoria], error)
	GetByID(ctx context.Context, id int64) (Categoria, error)
	Create(ctx context.Context, c Categoria) (Categoria, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateCategoria) (Categoria, error)
}

// CategoriaService implements the category use cases.
type CategoriaService struct {
	repo CategoriaRepository
}

// NewCategoriaService creates a category service.
func NewCategoriaService(repo CategoriaRepository) *CategoriaService {
	return &CategoriaService{repo: repo}
}

func (s *CategoriaService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Categoria], error) {
	return s.repo.List(ctx, filter)
}

func (s *CategoriaService) Get(ctx context.Context, id int64) (Categoria, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoriaService) Create(ctx context.Context, in CreateCategoria) (Categoria, error) {
	return s.repo.Create(ctx, Categoria{NombreCategoria: in.NombreCategoria})
}

// Update renames a category. A body with no recognized fields is a
// no-op: lookups carry no audit columns to stamp, so the current row
// comes back unchanged.
func (s *CategoriaService) Update(ctx context.Context, id int64, patch UpdateCategoria) (Categoria, error) {
	if patch.NombreCategoria == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdatePartial(ctx, id, patch)
}
