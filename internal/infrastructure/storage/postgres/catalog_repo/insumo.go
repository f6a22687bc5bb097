package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/domain"
	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

var insumoJoinCols = []string{
	"i.id_insumo",
	"i.nombre_insumo",
	"i.id_categoria",
	"c.nombre_categoria",
	"i.precio_insumo",
	"i.link_insumo",
	"i.status",
	"i.usuario",
	"i.created_at",
	"i.updated_at",
	"s.cantidad",
}

// InsumoRepo persists supplies. Reads join the category name and the
// stock quantity.
type InsumoRepo struct {
	*BaseCatalogRepo[catalog.Insumo]
}

// NewInsumoRepo creates a supply repository.
func NewInsumoRepo(txm *postgres.TxManager) *InsumoRepo {
	return &InsumoRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Insumo](
			txm,
			"insumo", "id_insumo", "nombre_insumo",
			[]string{"id_insumo", "nombre_insumo", "id_categoria", "precio_insumo", "link_insumo", "status", "usuario", "created_at", "updated_at"},
			[]string{"nombre_insumo", "id_categoria", "precio_insumo", "link_insumo", "usuario"},
			"Insumo no encontrado",
		),
	}
}

func (r *InsumoRepo) joinSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(insumoJoinCols...).
		From("insumo i").
		InnerJoin("stock_insumo s ON i.id_insumo = s.id_insumo").
		LeftJoin("categoria_insumo c ON i.id_categoria = c.id_categoria")
}

// List retrieves supplies with category and stock, filtered and
// paginated.
func (r *InsumoRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[catalog.Insumo], error) {
	q := r.joinSelect()

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"i.status": filter.Status})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"i.nombre_insumo": "%" + filter.Search + "%"})
	}
	if filter.CategoriaID != nil {
		q = q.Where(squirrel.Eq{"i.id_categoria": *filter.CategoriaID})
	}

	var total int64
	if filter.Limit > 0 {
		countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
		countSQL, countArgs, err := countQ.ToSql()
		if err != nil {
			return domain.ListResult[catalog.Insumo]{}, fmt.Errorf("build count: %w", err)
		}
		if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return domain.ListResult[catalog.Insumo]{}, fmt.Errorf("count insumos: %w", err)
		}
	}

	q = q.OrderBy("i.nombre_insumo ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[catalog.Insumo]{}, fmt.Errorf("build query: %w", err)
	}

	var items []catalog.Insumo
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return domain.ListResult[catalog.Insumo]{}, fmt.Errorf("list insumos: %w", err)
	}

	return domain.NewListResult(items, total, filter), nil
}

// GetByID retrieves a supply with its category name and stock
// quantity. The stock join is LEFT here so a supply with a missing
// stock row still resolves.
func (r *InsumoRepo) GetByID(ctx context.Context, id int64) (catalog.Insumo, error) {
	q := r.Builder().
		Select(insumoJoinCols...).
		From("insumo i").
		LeftJoin("stock_insumo s ON i.id_insumo = s.id_insumo").
		LeftJoin("categoria_insumo c ON i.id_categoria = c.id_categoria").
		Where(squirrel.Eq{"i.id_insumo": id})

	return r.FindOne(ctx, q)
}

// UpdatePartial applies the non-nil patch fields.
func (r *InsumoRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateInsumo, usuario string) (catalog.Insumo, error) {
	return r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
}
