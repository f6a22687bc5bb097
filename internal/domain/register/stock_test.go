package register

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrote/internal/core/apperror"
	"abarrote/internal/core/appctx"
)

type fakeStockInsumos struct {
	rows map[int64]StockInsumo
}

func (r *fakeStockInsumos) ListAll(_ context.Context) ([]StockInsumo, error) {
	var rows []StockInsumo
	for _, s := range r.rows {
		rows = append(rows, s)
	}
	return rows, nil
}

func (r *fakeStockInsumos) GetByInsumoID(_ context.Context, idInsumo int64) (StockInsumo, error) {
	s, ok := r.rows[idInsumo]
	if !ok {
		return StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
	}
	return s, nil
}

func (r *fakeStockInsumos) Upsert(_ context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (StockInsumo, error) {
	s := StockInsumo{IDStock: idInsumo, IDInsumo: idInsumo, Cantidad: cantidad, Usuario: &usuario}
	r.rows[idInsumo] = s
	return s, nil
}

func (r *fakeStockInsumos) UpdateCantidad(_ context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (StockInsumo, error) {
	s, ok := r.rows[idInsumo]
	if !ok {
		return StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
	}
	s.Cantidad = cantidad
	s.Usuario = &usuario
	r.rows[idInsumo] = s
	return s, nil
}

type fakeStockProductos struct {
	rows map[int64]StockProducto
}

func (r *fakeStockProductos) ListAll(_ context.Context) ([]StockProducto, error) {
	var rows []StockProducto
	for _, s := range r.rows {
		rows = append(rows, s)
	}
	return rows, nil
}

func (r *fakeStockProductos) GetByProductoID(_ context.Context, idProducto int64) (StockProducto, error) {
	s, ok := r.rows[idProducto]
	if !ok {
		return StockProducto{}, apperror.NewNotFound("Stock de producto no encontrado")
	}
	return s, nil
}

func (r *fakeStockProductos) Upsert(_ context.Context, idProducto int64, cantidad decimal.Decimal, usuario string) (StockProducto, error) {
	s := StockProducto{IDStock: idProducto, IDProducto: idProducto, Cantidad: cantidad, Usuario: &usuario}
	r.rows[idProducto] = s
	return s, nil
}

func (r *fakeStockProductos) UpdateCantidad(_ context.Context, idProducto int64, delta decimal.Decimal, usuario string) (StockProducto, error) {
	s, ok := r.rows[idProducto]
	if !ok {
		return StockProducto{}, apperror.NewNotFound("Stock de producto no encontrado")
	}
	s.Cantidad = s.Cantidad.Add(delta)
	s.Usuario = &usuario
	r.rows[idProducto] = s
	return s, nil
}

func newStockFixture() (*StockService, *fakeStockInsumos, *fakeStockProductos) {
	insumos := &fakeStockInsumos{rows: make(map[int64]StockInsumo)}
	productos := &fakeStockProductos{rows: make(map[int64]StockProducto)}
	return NewStockService(insumos, productos), insumos, productos
}

func stockCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: 1, Username: "ana"})
}

func TestSetInsumoCantidadOverwrites(t *testing.T) {
	svc, _, _ := newStockFixture()
	ctx := stockCtx()

	_, err := svc.UpsertInsumo(ctx, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	row, err := svc.SetInsumoCantidad(ctx, 1, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, row.Cantidad.Equal(decimal.NewFromInt(3)))

	row, err = svc.SetInsumoCantidad(ctx, 1, decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, row.Cantidad.Equal(decimal.NewFromInt(7)))
}

func TestAddProductoCantidadAccumulates(t *testing.T) {
	svc, _, _ := newStockFixture()
	ctx := stockCtx()

	_, err := svc.UpsertProducto(ctx, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	row, err := svc.AddProductoCantidad(ctx, 1, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, row.Cantidad.Equal(decimal.NewFromInt(15)))

	row, err = svc.AddProductoCantidad(ctx, 1, decimal.NewFromInt(-4))
	require.NoError(t, err)
	assert.True(t, row.Cantidad.Equal(decimal.NewFromInt(11)))
}

func TestStockMissingRows(t *testing.T) {
	svc, _, _ := newStockFixture()
	ctx := stockCtx()

	_, err := svc.GetInsumo(ctx, 99)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.SetInsumoCantidad(ctx, 99, decimal.NewFromInt(1))
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.AddProductoCantidad(ctx, 99, decimal.NewFromInt(1))
	assert.True(t, apperror.IsNotFound(err))
}

func TestStockMutationsStampActingUser(t *testing.T) {
	svc, insumos, _ := newStockFixture()

	_, err := svc.UpsertInsumo(stockCtx(), 1, decimal.NewFromInt(2))
	require.NoError(t, err)

	row := insumos.rows[1]
	require.NotNil(t, row.Usuario)
	assert.Equal(t, "ana", *row.Usuario)

	_, err = svc.UpsertInsumo(context.Background(), 2, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, appctx.SystemUser, *insumos.rows[2].Usuario)
}
