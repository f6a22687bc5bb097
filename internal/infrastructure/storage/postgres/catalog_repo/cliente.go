package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// ClienteRepo persists clients.
type ClienteRepo struct {
	*BaseCatalogRepo[catalog.Cliente]
}

// NewClienteRepo creates a client repository.
func NewClienteRepo(txm *postgres.TxManager) *ClienteRepo {
	return &ClienteRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Cliente](
			txm,
			"cliente", "id_cliente", "nombre_cliente",
			[]string{"id_cliente", "nombre_cliente", "usuario", "created_at", "updated_at"},
			[]string{"nombre_cliente", "usuario"},
			"Cliente no encontrado",
		),
	}
}

// FindByName returns the client with the exact name, or nil when none
// exists. Backs the unique-name pre-check.
func (r *ClienteRepo) FindByName(ctx context.Context, nombre string) (*catalog.Cliente, error) {
	q := r.Builder().
		Select("id_cliente", "nombre_cliente", "usuario", "created_at", "updated_at").
		From("cliente").
		Where(squirrel.Eq{"nombre_cliente": nombre}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c catalog.Cliente
	if err := pgxscan.Get(ctx, r.Querier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cliente by name: %w", err)
	}

	return &c, nil
}

// Create inserts a client, translating the duplicate-name violation
// into the same conflict error the pre-check produces.
func (r *ClienteRepo) Create(ctx context.Context, c catalog.Cliente) (catalog.Cliente, error) {
	created, err := r.BaseCatalogRepo.Create(ctx, c)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return catalog.Cliente{}, apperror.NewDuplicate("El cliente ya existe")
		}
		return catalog.Cliente{}, err
	}
	return created, nil
}

// UpdatePartial applies the non-nil patch fields.
func (r *ClienteRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateCliente, usuario string) (catalog.Cliente, error) {
	updated, err := r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return catalog.Cliente{}, apperror.NewDuplicate("El cliente ya existe")
		}
		return catalog.Cliente{}, err
	}
	return updated, nil
}
