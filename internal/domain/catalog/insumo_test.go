package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
	"abarrote/internal/domain/register"
)

type fakeInsumoRepo struct {
	insumos map[int64]Insumo
	nextID  int64
}

func newFakeInsumoRepo() *fakeInsumoRepo {
	return &fakeInsumoRepo{insumos: make(map[int64]Insumo), nextID: 1}
}

func (r *fakeInsumoRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[Insumo], error) {
	var items []Insumo
	for _, i := range r.insumos {
		items = append(items, i)
	}
	return domain.NewListResult(items, int64(len(items)), filter), nil
}

func (r *fakeInsumoRepo) GetByID(_ context.Context, id int64) (Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return Insumo{}, apperror.NewNotFound("Insumo no encontrado")
	}
	return i, nil
}

func (r *fakeInsumoRepo) Create(_ context.Context, ins Insumo) (Insumo, error) {
	ins.IDInsumo = r.nextID
	r.nextID++
	ins.Status = domain.StatusActivo
	r.insumos[ins.IDInsumo] = ins
	return ins, nil
}

func (r *fakeInsumoRepo) UpdatePartial(_ context.Context, id int64, patch UpdateInsumo, usuario string) (Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return Insumo{}, apperror.NewNotFound("Insumo no encontrado")
	}
	if patch.NombreInsumo != nil {
		i.NombreInsumo = *patch.NombreInsumo
	}
	if patch.PrecioInsumo != nil {
		i.PrecioInsumo = patch.PrecioInsumo
	}
	i.Usuario = &usuario
	r.insumos[id] = i
	return i, nil
}

func (r *fakeInsumoRepo) SoftDelete(_ context.Context, id int64, usuario string) error {
	i, ok := r.insumos[id]
	if !ok {
		return apperror.NewNotFound("Insumo no encontrado")
	}
	i.Status = domain.StatusInactivo
	i.Usuario = &usuario
	r.insumos[id] = i
	return nil
}

type fakeStockInsumoRepo struct {
	rows      map[int64]register.StockInsumo
	upsertErr error
}

func newFakeStockInsumoRepo() *fakeStockInsumoRepo {
	return &fakeStockInsumoRepo{rows: make(map[int64]register.StockInsumo)}
}

func (r *fakeStockInsumoRepo) ListAll(_ context.Context) ([]register.StockInsumo, error) {
	var rows []register.StockInsumo
	for _, s := range r.rows {
		rows = append(rows, s)
	}
	return rows, nil
}

func (r *fakeStockInsumoRepo) GetByInsumoID(_ context.Context, idInsumo int64) (register.StockInsumo, error) {
	s, ok := r.rows[idInsumo]
	if !ok {
		return register.StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
	}
	return s, nil
}

func (r *fakeStockInsumoRepo) Upsert(_ context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (register.StockInsumo, error) {
	if r.upsertErr != nil {
		return register.StockInsumo{}, r.upsertErr
	}
	s := register.StockInsumo{IDStock: idInsumo, IDInsumo: idInsumo, Cantidad: cantidad, Usuario: &usuario}
	r.rows[idInsumo] = s
	return s, nil
}

func (r *fakeStockInsumoRepo) UpdateCantidad(_ context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (register.StockInsumo, error) {
	s, ok := r.rows[idInsumo]
	if !ok {
		return register.StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
	}
	s.Cantidad = cantidad
	s.Usuario = &usuario
	r.rows[idInsumo] = s
	return s, nil
}

func TestInsumoCreateSeedsStockRow(t *testing.T) {
	repo := newFakeInsumoRepo()
	stock := newFakeStockInsumoRepo()
	svc := NewInsumoService(repo, stock, &passthroughTxManager{})

	ins, err := svc.Create(userCtx("ana"), CreateInsumo{NombreInsumo: "Harina"})
	require.NoError(t, err)

	row, ok := stock.rows[ins.IDInsumo]
	require.True(t, ok)
	assert.True(t, row.Cantidad.IsZero())
	require.NotNil(t, row.Usuario)
	assert.Equal(t, "ana", *row.Usuario)
}

func TestInsumoCreateFailedStockSeedSurfaces(t *testing.T) {
	repo := newFakeInsumoRepo()
	stock := newFakeStockInsumoRepo()
	stock.upsertErr = errors.New("insert stock: connection reset")
	svc := NewInsumoService(repo, stock, &passthroughTxManager{})

	_, err := svc.Create(userCtx("ana"), CreateInsumo{NombreInsumo: "Harina"})
	require.Error(t, err)
	assert.ErrorIs(t, err, stock.upsertErr)
}

func TestInsumoUpdateRereadsRow(t *testing.T) {
	repo := newFakeInsumoRepo()
	svc := NewInsumoService(repo, newFakeStockInsumoRepo(), &passthroughTxManager{})
	ctx := userCtx("ana")

	ins, err := svc.Create(ctx, CreateInsumo{NombreInsumo: "Harina"})
	require.NoError(t, err)

	nombre := "Harina integral"
	updated, err := svc.Update(ctx, ins.IDInsumo, UpdateInsumo{NombreInsumo: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Harina integral", updated.NombreInsumo)
}

func TestInsumoDeleteKeepsStockRow(t *testing.T) {
	repo := newFakeInsumoRepo()
	stock := newFakeStockInsumoRepo()
	svc := NewInsumoService(repo, stock, &passthroughTxManager{})
	ctx := userCtx("ana")

	ins, err := svc.Create(ctx, CreateInsumo{NombreInsumo: "Harina"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ins.IDInsumo))
	assert.Equal(t, domain.StatusInactivo, repo.insumos[ins.IDInsumo].Status)
	assert.Contains(t, stock.rows, ins.IDInsumo)
}
