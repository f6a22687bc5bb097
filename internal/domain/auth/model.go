// Package auth implements user registration, credential verification
// and token issuance.
package auth

import (
	"context"
	"time"
)

// User is an account able to authenticate against the API. The
// password hash never leaves this package.
type User struct {
	IDUsuario    int64     `db:"id_usuario" json:"id_usuario"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password" json:"-"`
	Nombre       string    `db:"nombre" json:"nombre"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Nombre   string `json:"nombre" binding:"required"`
}

// LoginInput carries the login credentials.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRepository is the persistence contract for accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u User) (User, error)
}
