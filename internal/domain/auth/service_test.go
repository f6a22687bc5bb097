package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"abarrote/internal/core/apperror"
)

type fakeUserRepo struct {
	users map[string]User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]User)}
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u User) (User, error) {
	u.IDUsuario = int64(len(r.users) + 1)
	r.users[u.Username] = u
	return u, nil
}

func newTestService(repo UserRepository) *Service {
	return NewService(repo, NewTokenService("test-secret", time.Hour))
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "admin",
		Password: "hunter22",
		Nombre:   "Administrador",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "admin", Password: "hunter22", Nombre: "A"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "admin", Password: "other123", Nombre: "B"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "El usuario ya existe", appErr.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "admin", Password: "hunter22", Nombre: "A"})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, user.IDUsuario, claims.UserID())
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "admin", Password: "hunter22", Nombre: "A"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   LoginInput
	}{
		{"unknown user", LoginInput{Username: "nobody", Password: "hunter22"}},
		{"wrong password", LoginInput{Username: "admin", Password: "wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.in)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
			assert.Equal(t, "Credenciales inválidas", appErr.Message)
		})
	}
}
