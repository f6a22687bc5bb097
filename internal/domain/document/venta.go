// Package document holds the transactional records of the back
// office: sales and product cost configurations.
package document

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
)

// Venta is one sale, referencing a platform and a client. Listings
// join both names and order by sale date descending.
type Venta struct {
	IDVenta       int64           `db:"id_venta" json:"id_venta"`
	IDPlataforma  int64           `db:"id_plataforma" json:"id_plataforma"`
	IDCliente     int64           `db:"id_cliente" json:"id_cliente"`
	CostoDespacho decimal.Decimal `db:"costo_despacho" json:"costo_despacho"`
	FechaVenta    time.Time       `db:"fecha_venta" json:"fecha_venta"`
	Usuario       *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	NombrePlataforma *string `db:"nombre_plataforma" json:"nombre_plataforma,omitempty"`
	NombreCliente    *string `db:"nombre_cliente" json:"nombre_cliente,omitempty"`
}

// CreateVenta carries the fields accepted on creation.
type CreateVenta struct {
	IDPlataforma  int64           `json:"id_plataforma" binding:"required"`
	IDCliente     int64           `json:"id_cliente" binding:"required"`
	CostoDespacho decimal.Decimal `json:"costo_despacho"`
	FechaVenta    time.Time       `json:"fecha_venta" binding:"required"`
}

// UpdateVenta is the partial-update patch.
type UpdateVenta struct {
	IDPlataforma  *int64           `db:"id_plataforma" json:"id_plataforma"`
	IDCliente     *int64           `db:"id_cliente" json:"id_cliente"`
	CostoDespacho *decimal.Decimal `db:"costo_despacho" json:"costo_despacho"`
	FechaVenta    *time.Time       `db:"fecha_venta" json:"fecha_venta"`
}

// VentaRepository is the persistence contract for sales. Writes that
// reference a missing platform or client surface as a client-input
// error, translated from the database foreign-key violation.
type VentaRepository interface {
	ListAll(ctx context.Context) ([]Venta, error)
	GetByID(ctx context.Context, id int64) (Venta, error)
	Create(ctx context.Context, v Venta) (Venta, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateVenta, usuario string) (Venta, error)
}

// VentaService implements the sale use cases.
type VentaService struct {
	repo VentaRepository
}

// NewVentaService creates a sale service.
func NewVentaService(repo VentaRepository) *VentaService {
	return &VentaService{repo: repo}
}

// List returns every sale with platform and client names, newest
// first.
func (s *VentaService) List(ctx context.Context) ([]Venta, error) {
	return s.repo.ListAll(ctx)
}

// Get returns a single sale.
func (s *VentaService) Get(ctx context.Context, id int64) (Venta, error) {
	return s.repo.GetByID(ctx, id)
}

// Create records a sale.
func (s *VentaService) Create(ctx context.Context, in CreateVenta) (Venta, error) {
	usuario := appctx.ActingUser(ctx)
	return s.repo.Create(ctx, Venta{
		IDPlataforma:  in.IDPlataforma,
		IDCliente:     in.IDCliente,
		CostoDespacho: in.CostoDespacho,
		FechaVenta:    in.FechaVenta,
		Usuario:       &usuario,
	})
}

// Update applies a partial update to a sale.
func (s *VentaService) Update(ctx context.Context, id int64, patch UpdateVenta) (Venta, error) {
	return s.repo.UpdatePartial(ctx, id, patch, appctx.ActingUser(ctx))
}
