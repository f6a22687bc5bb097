package catalog_repo

import (
	"context"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// CajaRepo persists boxes.
type CajaRepo struct {
	*BaseCatalogRepo[catalog.Caja]
}

// NewCajaRepo creates a box repository.
func NewCajaRepo(txm *postgres.TxManager) *CajaRepo {
	return &CajaRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Caja](
			txm,
			"caja", "id_caja", "nombre_caja",
			[]string{"id_caja", "nombre_caja", "precio", "status", "usuario", "created_at", "updated_at"},
			[]string{"nombre_caja", "precio", "usuario"},
			"Caja no encontrada",
		),
	}
}

// UpdatePartial applies the non-nil patch fields.
func (r *CajaRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateCaja, usuario string) (catalog.Caja, error) {
	return r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
}
