// Package catalog_repo provides PostgreSQL implementations for the
// entity repositories. Each repository embeds BaseCatalogRepo and adds
// entity-specific queries (joins, BOM maintenance, derived aggregates).
package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
	"abarrote/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo provides common CRUD operations for catalog entities.
// Embed this in specific repositories.
//
// Identifiers are generated by the database (BIGSERIAL); every write
// uses positional parameters built by squirrel, never interpolation.
type BaseCatalogRepo[T any] struct {
	txm         *postgres.TxManager
	table       string
	idCol       string
	nameCol     string
	selectCols  []string
	insertCols  []string
	notFoundMsg string
}

// NewBaseCatalogRepo creates a new base catalog repository.
// insertCols whitelists the columns Create is allowed to set; select
// columns that only exist as join aliases stay out of it.
func NewBaseCatalogRepo[T any](
	txm *postgres.TxManager,
	table, idCol, nameCol string,
	selectCols, insertCols []string,
	notFoundMsg string,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txm:         txm,
		table:       table,
		idCol:       idCol,
		nameCol:     nameCol,
		selectCols:  selectCols,
		insertCols:  insertCols,
		notFoundMsg: notFoundMsg,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholders.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the active transaction or the shared pool.
func (r *BaseCatalogRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// TxManager exposes the transaction manager for multi-statement flows.
func (r *BaseCatalogRepo[T]) TxManager() *postgres.TxManager {
	return r.txm
}

func (r *BaseCatalogRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.table)
}

func (r *BaseCatalogRepo[T]) returning() string {
	return "RETURNING " + strings.Join(r.selectCols, ", ")
}

// NotFound returns the repository's not-found error.
func (r *BaseCatalogRepo[T]) NotFound() error {
	return apperror.NewNotFound(r.notFoundMsg)
}

// List retrieves entities ordered alphabetically by display name, with
// optional status filter, substring search and pagination.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	q := r.baseSelect()

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{r.nameCol: "%" + filter.Search + "%"})
	}

	var total int64
	if filter.Limit > 0 {
		countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
		countSQL, countArgs, err := countQ.ToSql()
		if err != nil {
			return domain.ListResult[T]{}, fmt.Errorf("build count: %w", err)
		}
		if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return domain.ListResult[T]{}, fmt.Errorf("count %s: %w", r.table, err)
		}
	}

	q = q.OrderBy(r.nameCol + " ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return domain.ListResult[T]{}, fmt.Errorf("list %s: %w", r.table, err)
	}

	return domain.NewListResult(items, total, filter), nil
}

// GetByID retrieves an entity by its identifier.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	var entity T

	q := r.baseSelect().
		Where(squirrel.Eq{r.idCol: id}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), &entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, r.NotFound()
		}
		return entity, fmt.Errorf("get %s by id: %w", r.table, err)
	}

	return entity, nil
}

// FindByName retrieves an entity by exact display name. Used for
// uniqueness pre-checks; not-found is reported as the repo's 404 error.
func (r *BaseCatalogRepo[T]) FindByName(ctx context.Context, name string) (T, error) {
	return r.FindOne(ctx, r.baseSelect().Where(squirrel.Eq{r.nameCol: name}).Limit(1))
}

// FindOne executes a SELECT and returns a single entity.
func (r *BaseCatalogRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	var entity T

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), &entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, r.NotFound()
		}
		return entity, fmt.Errorf("find one %s: %w", r.table, err)
	}

	return entity, nil
}

// Create inserts a new row from the entity's "db" tags, restricted to
// the insert whitelist, and returns the persisted row including the
// generated id and timestamps.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) (T, error) {
	var created T

	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return created, fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.insertCols))
	for _, col := range r.insertCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.Builder().
		Insert(r.table).
		SetMap(filtered).
		Suffix(r.returning())

	sql, args, err := q.ToSql()
	if err != nil {
		return created, fmt.Errorf("build insert: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), &created, sql, args...); err != nil {
		return created, fmt.Errorf("insert %s: %w", r.table, err)
	}

	return created, nil
}

// UpdatePartial builds a dynamic SET clause from the non-nil fields of
// patch, always stamps the acting user and updated_at, and returns the
// updated row. An empty patch still stamps the acting user.
func (r *BaseCatalogRepo[T]) UpdatePartial(ctx context.Context, id int64, patch any, usuario string) (T, error) {
	var updated T

	q := r.Builder().
		Update(r.table).
		SetMap(postgres.PatchToMap(patch)).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{r.idCol: id}).
		Suffix(r.returning())

	sql, args, err := q.ToSql()
	if err != nil {
		return updated, fmt.Errorf("build update: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), &updated, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return updated, r.NotFound()
		}
		return updated, fmt.Errorf("update %s: %w", r.table, err)
	}

	return updated, nil
}

// SoftDelete flips the status to inactivo. Returns the repo's 404 error
// when no row matched.
func (r *BaseCatalogRepo[T]) SoftDelete(ctx context.Context, id int64, usuario string) error {
	q := r.Builder().
		Update(r.table).
		Set("status", domain.StatusInactivo).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{r.idCol: id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return r.NotFound()
	}

	return nil
}

// HardDelete physically removes the row.
func (r *BaseCatalogRepo[T]) HardDelete(ctx context.Context, id int64) error {
	q := r.Builder().
		Delete(r.table).
		Where(squirrel.Eq{r.idCol: id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return r.NotFound()
	}

	return nil
}
