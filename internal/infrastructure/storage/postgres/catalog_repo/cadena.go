package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// derivedPrecio computes a bundle's price from its current lines. The
// price is never stored: repricing a supply silently reprices every
// bundle that uses it.
const derivedPrecio = "COALESCE(SUM(i.precio_insumo * ci.cantidad), 0) AS precio"

// CadenaRepo persists bundles. Every read derives the price from the
// bundle's lines.
type CadenaRepo struct {
	*BaseCatalogRepo[catalog.Cadena]
}

// NewCadenaRepo creates a bundle repository.
func NewCadenaRepo(txm *postgres.TxManager) *CadenaRepo {
	return &CadenaRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Cadena](
			txm,
			"cadena", "id_cadena", "nombre_cadena",
			[]string{"id_cadena", "nombre_cadena", "status", "usuario", "created_at", "updated_at"},
			[]string{"nombre_cadena", "usuario"},
			"Cadena no encontrada",
		),
	}
}

func (r *CadenaRepo) derivedSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select("c.id_cadena", "c.nombre_cadena", derivedPrecio, "c.status", "c.usuario", "c.created_at", "c.updated_at").
		From("cadena c").
		LeftJoin("cadena_insumo ci ON c.id_cadena = ci.id_cadena").
		LeftJoin("insumo i ON ci.id_insumo = i.id_insumo").
		GroupBy("c.id_cadena")
}

// List retrieves bundles with derived prices.
func (r *CadenaRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[catalog.Cadena], error) {
	q := r.derivedSelect()

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"c.status": filter.Status})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"c.nombre_cadena": "%" + filter.Search + "%"})
	}

	q = q.OrderBy("c.nombre_cadena ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[catalog.Cadena]{}, fmt.Errorf("build query: %w", err)
	}

	var items []catalog.Cadena
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return domain.ListResult[catalog.Cadena]{}, fmt.Errorf("list cadenas: %w", err)
	}

	return domain.NewListResult(items, 0, filter), nil
}

// GetByID retrieves a bundle with its derived price.
func (r *CadenaRepo) GetByID(ctx context.Context, id int64) (catalog.Cadena, error) {
	return r.FindOne(ctx, r.derivedSelect().Where(squirrel.Eq{"c.id_cadena": id}))
}

// UpdatePartial applies the non-nil patch fields. The returned row
// carries no derived price; callers re-read when they need it.
func (r *CadenaRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateCadena, usuario string) (catalog.Cadena, error) {
	return r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
}

// --- Lines ---

// ListInsumos returns the bundle's lines with supply names and
// prices.
func (r *CadenaRepo) ListInsumos(ctx context.Context, idCadena int64) ([]catalog.CadenaInsumo, error) {
	q := r.Builder().
		Select("ci.id_cadena", "ci.id_insumo", "ci.cantidad", "ci.usuario", "i.nombre_insumo", "i.precio_insumo").
		From("cadena_insumo ci").
		InnerJoin("insumo i ON ci.id_insumo = i.id_insumo").
		Where(squirrel.Eq{"ci.id_cadena": idCadena}).
		OrderBy("i.nombre_insumo ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []catalog.CadenaInsumo
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list cadena insumos: %w", err)
	}

	return lines, nil
}

// UpsertInsumo inserts a line or overwrites the existing one for the
// (bundle, supply) pair.
func (r *CadenaRepo) UpsertInsumo(ctx context.Context, idCadena int64, line catalog.CadenaBOMLine, usuario string) (catalog.CadenaInsumo, error) {
	q := r.Builder().
		Insert("cadena_insumo").
		Columns("id_cadena", "id_insumo", "cantidad", "usuario").
		Values(idCadena, line.IDInsumo, line.Cantidad, usuario).
		Suffix(`ON CONFLICT (id_cadena, id_insumo)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, usuario = EXCLUDED.usuario
			RETURNING id_cadena, id_insumo, cantidad, usuario`)

	sql, args, err := q.ToSql()
	if err != nil {
		return catalog.CadenaInsumo{}, fmt.Errorf("build upsert: %w", err)
	}

	var saved catalog.CadenaInsumo
	if err := pgxscan.Get(ctx, r.Querier(ctx), &saved, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return catalog.CadenaInsumo{}, apperror.NewForeignKey("El insumo especificado no existe")
		}
		return catalog.CadenaInsumo{}, fmt.Errorf("upsert cadena insumo: %w", err)
	}

	return saved, nil
}

// ReplaceInsumos deletes every line of the bundle and inserts the new
// set; runs inside the caller's transaction.
func (r *CadenaRepo) ReplaceInsumos(ctx context.Context, idCadena int64, lines []catalog.CadenaBOMLine, usuario string) error {
	del := r.Builder().
		Delete("cadena_insumo").
		Where(squirrel.Eq{"id_cadena": idCadena})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete cadena insumos: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert("cadena_insumo").
		Columns("id_cadena", "id_insumo", "cantidad", "usuario")
	for _, line := range lines {
		ins = ins.Values(idCadena, line.IDInsumo, line.Cantidad, usuario)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewForeignKey("El insumo especificado no existe")
		}
		return fmt.Errorf("insert cadena insumos: %w", err)
	}

	return nil
}

// RemoveInsumo deletes one line by its composite key.
func (r *CadenaRepo) RemoveInsumo(ctx context.Context, idCadena, idInsumo int64) error {
	q := r.Builder().
		Delete("cadena_insumo").
		Where(squirrel.Eq{"id_cadena": idCadena, "id_insumo": idInsumo})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete cadena insumo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("Insumo no encontrado en la cadena")
	}

	return nil
}
