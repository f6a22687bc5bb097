package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"abarrote/internal/core/apperror"
)

// Service implements registration and login.
type Service struct {
	repo   UserRepository
	tokens *TokenService
}

// NewService creates an auth service.
func NewService(repo UserRepository, tokens *TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account with a bcrypt-hashed password. The
// username must be unused; the repository backstops this lookup with
// the database unique constraint.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	existing, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, apperror.NewDuplicate("El usuario ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperror.NewInternal(err)
	}

	return s.repo.Create(ctx, User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
	})
}

// Login verifies the credentials and issues a token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (User, string, error) {
	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return User{}, "", err
	}
	if user == nil {
		return User{}, "", apperror.NewUnauthorized("Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return User{}, "", apperror.NewUnauthorized("Credenciales inválidas")
	}

	token, err := s.tokens.Generate(*user)
	if err != nil {
		return User{}, "", apperror.NewInternal(err)
	}

	return *user, token, nil
}

// VerifyToken delegates to the token service; the HTTP auth gate uses
// it per request.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}
