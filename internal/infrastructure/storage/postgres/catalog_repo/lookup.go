package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// The lookup tables carry no audit columns, so their updates bypass
// the base user/timestamp stamping.

// CategoriaRepo persists supply categories.
type CategoriaRepo struct {
	*BaseCatalogRepo[catalog.Categoria]
}

// NewCategoriaRepo creates a category repository.
func NewCategoriaRepo(txm *postgres.TxManager) *CategoriaRepo {
	return &CategoriaRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Categoria](
			txm,
			"categoria_insumo", "id_categoria", "nombre_categoria",
			[]string{"id_categoria", "nombre_categoria"},
			[]string{"nombre_categoria"},
			"Categoría no encontrada",
		),
	}
}

// UpdatePartial renames the category. An empty patch would leave the
// UPDATE without a SET clause, so it degrades to a plain read.
func (r *CategoriaRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateCategoria) (catalog.Categoria, error) {
	data := postgres.PatchToMap(patch)
	if len(data) == 0 {
		return r.GetByID(ctx, id)
	}
	return updateLookup[catalog.Categoria](ctx, r.BaseCatalogRepo.Querier(ctx), r.NotFound(),
		r.Builder().
			Update("categoria_insumo").
			SetMap(data).
			Where(squirrel.Eq{"id_categoria": id}).
			Suffix("RETURNING id_categoria, nombre_categoria"))
}

// TipoProductoRepo persists product types.
type TipoProductoRepo struct {
	*BaseCatalogRepo[catalog.TipoProducto]
}

// NewTipoProductoRepo creates a product type repository.
func NewTipoProductoRepo(txm *postgres.TxManager) *TipoProductoRepo {
	return &TipoProductoRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.TipoProducto](
			txm,
			"tipo_producto", "id_tipo", "nombre_tipo_producto",
			[]string{"id_tipo", "nombre_tipo_producto"},
			[]string{"nombre_tipo_producto"},
			"Tipo de producto no encontrado",
		),
	}
}

// UpdatePartial renames the product type. An empty patch degrades to
// a plain read, same as the category repo.
func (r *TipoProductoRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateTipoProducto) (catalog.TipoProducto, error) {
	data := postgres.PatchToMap(patch)
	if len(data) == 0 {
		return r.GetByID(ctx, id)
	}
	return updateLookup[catalog.TipoProducto](ctx, r.BaseCatalogRepo.Querier(ctx), r.NotFound(),
		r.Builder().
			Update("tipo_producto").
			SetMap(data).
			Where(squirrel.Eq{"id_tipo": id}).
			Suffix("RETURNING id_tipo, nombre_tipo_producto"))
}

func updateLookup[T any](ctx context.Context, q postgres.Querier, notFound error, b squirrel.UpdateBuilder) (T, error) {
	var updated T

	sql, args, err := b.ToSql()
	if err != nil {
		return updated, fmt.Errorf("build update: %w", err)
	}

	if err := pgxscan.Get(ctx, q, &updated, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return updated, notFound
		}
		return updated, fmt.Errorf("update lookup: %w", err)
	}

	return updated, nil
}
