package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abarrote/internal/core/appctx"
	"abarrote/internal/core/tx"
	"abarrote/internal/domain"
)

// Cadena is a packaging bundle. Its price is never stored: every read
// derives it as Σ (supply unit price × line quantity) over the current
// lines, so repricing a supply reprices every bundle using it.
type Cadena struct {
	IDCadena     int64           `db:"id_cadena" json:"id_cadena"`
	NombreCadena string          `db:"nombre_cadena" json:"nombre_cadena"`
	Precio       decimal.Decimal `db:"precio" json:"precio"`
	Status       string          `db:"status" json:"status"`
	Usuario      *string         `db:"usuario" json:"usuario,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// CadenaInsumo is one supply line of a bundle, keyed on the
// (bundle, supply) pair.
type CadenaInsumo struct {
	IDCadena int64           `db:"id_cadena" json:"id_cadena"`
	IDInsumo int64           `db:"id_insumo" json:"id_insumo"`
	Cantidad decimal.Decimal `db:"cantidad" json:"cantidad"`
	Usuario  *string         `db:"usuario" json:"usuario,omitempty"`

	NombreInsumo *string          `db:"nombre_insumo" json:"nombre_insumo,omitempty"`
	PrecioInsumo *decimal.Decimal `db:"precio_insumo" json:"precio_insumo,omitempty"`
}

// CreateCadena carries the fields accepted on creation. Insumos is
// optional; when present the bundle is born with that line set.
type CreateCadena struct {
	NombreCadena string          `json:"nombre_cadena" binding:"required"`
	Insumos      []CadenaBOMLine `json:"insumos"`
}

// UpdateCadena is the partial-update patch. A non-nil Insumos replaces
// the whole line set.
type UpdateCadena struct {
	NombreCadena *string `db:"nombre_cadena" json:"nombre_cadena"`
	Status       *string `db:"status" json:"status"`

	Insumos *[]CadenaBOMLine `db:"-" json:"insumos"`
}

// CadenaBOMLine is one incoming bundle line.
type CadenaBOMLine struct {
	IDInsumo int64           `json:"id_insumo" binding:"required"`
	Cantidad decimal.Decimal `json:"cantidad" binding:"required"`
}

// CadenaRepository is the persistence contract for bundles.
type CadenaRepository interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Cadena], error)
	GetByID(ctx context.Context, id int64) (Cadena, error)
	Create(ctx context.Context, c Cadena) (Cadena, error)
	UpdatePartial(ctx context.Context, id int64, patch UpdateCadena, usuario string) (Cadena, error)
	SoftDelete(ctx context.Context, id int64, usuario string) error

	ListInsumos(ctx context.Context, idCadena int64) ([]CadenaInsumo, error)
	UpsertInsumo(ctx context.Context, idCadena int64, line CadenaBOMLine, usuario string) (CadenaInsumo, error)
	ReplaceInsumos(ctx context.Context, idCadena int64, lines []CadenaBOMLine, usuario string) error
	RemoveInsumo(ctx context.Context, idCadena, idInsumo int64) error
}

// CadenaService implements the bundle use cases.
type CadenaService struct {
	repo CadenaRepository
	txm  tx.Manager
}

// NewCadenaService creates a bundle service.
func NewCadenaService(repo CadenaRepository, txm tx.Manager) *CadenaService {
	return &CadenaService{repo: repo, txm: txm}
}

// List returns bundles with their derived prices.
func (s *CadenaService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[Cadena], error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single bundle with its derived price.
func (s *CadenaService) Get(ctx context.Context, id int64) (Cadena, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a bundle and, when the request carries lines, its
// initial line set inside the same transaction. The re-read returns
// the derived price; without lines it starts at zero.
func (s *CadenaService) Create(ctx context.Context, in CreateCadena) (Cadena, error) {
	usuario := appctx.ActingUser(ctx)

	var created Cadena
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, Cadena{
			NombreCadena: in.NombreCadena,
			Usuario:      &usuario,
		})
		if err != nil {
			return err
		}

		if len(in.Insumos) > 0 {
			return s.repo.ReplaceInsumos(txCtx, created.IDCadena, in.Insumos, usuario)
		}
		return nil
	})
	if err != nil {
		return Cadena{}, err
	}

	return s.repo.GetByID(ctx, created.IDCadena)
}

// Update applies a partial update, replacing the line set when the
// patch carries one.
func (s *CadenaService) Update(ctx context.Context, id int64, patch UpdateCadena) (Cadena, error) {
	usuario := appctx.ActingUser(ctx)

	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.UpdatePartial(txCtx, id, patch, usuario); err != nil {
			return err
		}
		if patch.Insumos != nil {
			return s.repo.ReplaceInsumos(txCtx, id, *patch.Insumos, usuario)
		}
		return nil
	})
	if err != nil {
		return Cadena{}, err
	}

	// Re-read outside the patch so the derived price reflects the new
	// line set.
	return s.repo.GetByID(ctx, id)
}

// Delete marks the bundle inactive, keeping its lines.
func (s *CadenaService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id, appctx.ActingUser(ctx))
}

// ListInsumos returns the bundle's lines with supply names and prices.
func (s *CadenaService) ListInsumos(ctx context.Context, idCadena int64) ([]CadenaInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCadena); err != nil {
		return nil, err
	}
	return s.repo.ListInsumos(ctx, idCadena)
}

// AddInsumo upserts one bundle line keyed on the (bundle, supply)
// pair.
func (s *CadenaService) AddInsumo(ctx context.Context, idCadena int64, line CadenaBOMLine) (CadenaInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCadena); err != nil {
		return CadenaInsumo{}, err
	}
	return s.repo.UpsertInsumo(ctx, idCadena, line, appctx.ActingUser(ctx))
}

// ReplaceInsumos swaps the whole line set transactionally.
func (s *CadenaService) ReplaceInsumos(ctx context.Context, idCadena int64, lines []CadenaBOMLine) ([]CadenaInsumo, error) {
	if _, err := s.repo.GetByID(ctx, idCadena); err != nil {
		return nil, err
	}

	usuario := appctx.ActingUser(ctx)
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceInsumos(txCtx, idCadena, lines, usuario)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.ListInsumos(ctx, idCadena)
}

// RemoveInsumo deletes one bundle line.
func (s *CadenaService) RemoveInsumo(ctx context.Context, idCadena, idInsumo int64) error {
	return s.repo.RemoveInsumo(ctx, idCadena, idInsumo)
}
