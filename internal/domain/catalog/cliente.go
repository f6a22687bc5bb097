package catalog

import (
	"context"
	"time"

	"abarrote/internal/core/apperror"
	"abarrote/internal/core/appctx"
	"abarrote/internal/domain"
)

// Cliente is a customer. The name is the business key and must be
// unique.
type Cliente struct {
	IDCliente     int64     `db:"id_cliente" json:"id_cliente"`
	NombreCliente string    `db:"nombre_cliente" json:"nombre_cliente"`
	Usuario       *string   `db:"usuario" json:"usuario,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CreateCliente carries the fields accepted on creation.
type CreateCliente struct {
	NombreCliente string `json:"nombre_cliente" binding:"required"`
}

// UpdateCliente is the partial-update patch.
type UpdateCliente struct {
	NombreCliente *string `db:"nombre_cliente" json:"nombre_cliente"`
}

// ClienteRepository is the persistence contract for clients.
type ClienteRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Cliente], error)
	GetByID(ctx context.Context, id int64) (Cliente, error)
	FindByName(ctx context.Context, nombre string) (*Cliente, error)
	Create(ctx context.Context, c Cliente) (Cliente, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateCliente, usuario string) (Cliente, error)
}

// ClienteService implements the client use cases, including the
// unique-name rule.
type ClienteService struct {
	repo ClienteRepository
}

// NewClienteService creates a client service.
func NewClienteService(repo ClienteRepository) *ClienteService {
	return &ClienteService{repo: repo}
}

func (s *ClienteService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Cliente], error) {
	return s.repo.List(ctx, filter)
}

func (s *ClienteService) Get(ctx context.Context, id int64) (Cliente, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a client after checking the name is unused. The
// repository backstops the racy lookup by translating the database
// unique violation into the same error.
func (s *ClienteService) Create(ctx context.Context, in CreateCliente) (Cliente, error) {
	existing, err := s.repo.FindByName(ctx, in.NombreCliente)
	if err != nil {
		return Cliente{}, err
	}
	if existing != nil {
		return Cliente{}, apperror.NewDuplicate("El cliente ya existe")
	}

	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Cliente{
		NombreCliente: in.NombreCliente,
		Usuario:       &usuario,
	})
}

// Update renames a client, enforcing name uniqueness against other
// ids.
func (s *ClienteService) Update(ctx context.Context, id int64, patch UpdateCliente) (Cliente, error) {
	if patch.NombreCliente != nil {
		existing, err := s.repo.FindByName(ctx, *patch.NombreCliente)
		if err != nil {
			return Cliente{}, err
		}
		if existing != nil && existing.IDCliente != id {
			return Cliente{}, apperror.NewDuplicate("El cliente ya existe")
		}
	}
	return s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx))
}
