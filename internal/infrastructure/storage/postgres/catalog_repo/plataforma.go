package catalog_repo

import (
	"context"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// PlataformaRepo persists sales platforms.
type PlataformaRepo struct {
	*BaseCatalogRepo[catalog.Plataforma]
}

// NewPlataformaRepo creates a platform repository.
func NewPlataformaRepo(txm *postgres.TxManager) *PlataformaRepo {
	return &PlataformaRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Plataforma](
			txm,
			"plataforma_venta", "id_plataforma", "nombre_plataforma",
			[]string{"id_plataforma", "nombre_plataforma", "comision", "status", "usuario", "created_at", "updated_at"},
			[]string{"nombre_plataforma", "comision", "usuario"},
			"Plataforma no encontrada",
		),
	}
}

// UpdatePartial applies the non-nil patch fields.
func (r *PlataformaRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdatePlataforma, usuario string) (catalog.Plataforma, error) {
	return r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
}
