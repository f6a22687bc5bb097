// Package auth_repo provides PostgreSQL persistence for accounts.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain/auth"
	"abarrote/internal/infrastructure/storage/postgres"
)

// UserRepo persists accounts.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates an account repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// FindByUsername returns the account with the username, or nil when
// none exists.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	q := r.builder().
		Select("id_usuario", "username", "password", "nombre", "created_at").
		From("usuario").
		Where(squirrel.Eq{"username": username}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find usuario: %w", err)
	}

	return &u, nil
}

// Create inserts an account, translating the duplicate-username
// violation into the same conflict error the pre-check produces.
func (r *UserRepo) Create(ctx context.Context, u auth.User) (auth.User, error) {
	q := r.builder().
		Insert("usuario").
		Columns("username", "password", "nombre").
		Values(u.Username, u.PasswordHash, u.Nombre).
		Suffix("RETURNING id_usuario, username, password, nombre, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return auth.User{}, fmt.Errorf("build insert: %w", err)
	}

	var created auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &created, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return auth.User{}, apperror.NewDuplicate("El usuario ya existe")
		}
		return auth.User{}, fmt.Errorf("insert usuario: %w", err)
	}

	return created, nil
}
