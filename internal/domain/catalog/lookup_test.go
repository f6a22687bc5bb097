package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
)

type fakeCategoriaRepo struct {
	categorias  map[int64]Categoria
	nextID      int64
	updateCalls int
}

func newFakeCategoriaRepo() *fakeCategoriaRepo {
	return &fakeCategoriaRepo{categorias: make(map[int64]Categoria), nextID: 1}
}

func (r *fakeCategoriaRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[Categoria], error) {
	var items []Categoria
	for _, c := range r.categorias {
		items = append(items, c)
	}
	return domain.NewListResult(items, int64(len(items)), filter), nil
}

func (r *fakeCategoriaRepo) GetByID(_ context.Context, id int64) (Categoria, error) {
	c, ok := r.categorias[id]
	if !ok {
		return Categoria{}, apperror.NewNotFound("Categoría no encontrada")
	}
	return c, nil
}

func (r *fakeCategoriaRepo) Create(_ context.Context, c Categoria) (Categoria, error) {
	c.IDCategoria = r.nextID
	r.nextID++
	r.categorias[c.IDCategoria] = c
	return c, nil
}

func (r *fakeCategoriaRepo) UpdatePartial(_ context.Context, id int64, patch UpdateCategoria) (Categoria, error) {
	r.updateCalls++
	c, ok := r.categorias[id]
	if !ok {
		return Categoria{}, apperror.NewNotFound("Categoría no encontrada")
	}
	if patch.NombreCategoria != nil {
		c.NombreCategoria = *patch.NombreCategoria
	}
	r.categorias[id] = c
	return c, nil
}

func TestCategoriaUpdateEmptyPatchIsNoop(t *testing.T) {
	repo := newFakeCategoriaRepo()
	svc := NewCategoriaService(repo)
	ctx := context.Background()

	cat, err := svc.Create(ctx, CreateCategoria{NombreCategoria: "Lácteos"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, cat.IDCategoria, UpdateCategoria{})
	require.NoError(t, err)
	assert.Equal(t, cat, got)
	assert.Zero(t, repo.updateCalls)
}

func TestCategoriaUpdateEmptyPatchMissingID(t *testing.T) {
	svc := NewCategoriaService(newFakeCategoriaRepo())

	_, err := svc.Update(context.Background(), 99, UpdateCategoria{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCategoriaUpdateRenames(t *testing.T) {
	repo := newFakeCategoriaRepo()
	svc := NewCategoriaService(repo)
	ctx := context.Background()

	cat, err := svc.Create(ctx, CreateCategoria{NombreCategoria: "Lácteos"})
	require.NoError(t, err)

	nombre := "Abarrotes"
	got, err := svc.Update(ctx, cat.IDCategoria, UpdateCategoria{NombreCategoria: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Abarrotes", got.NombreCategoria)
	assert.Equal(t, 1, repo.updateCalls)
}

type fakeTipoProductoRepo struct {
	tipos       map[int64]TipoProducto
	nextID      int64
	updateCalls int
}

func newFakeTipoProductoRepo() *fakeTipoProductoRepo {
	return &fakeTipoProductoRepo{tipos: make(map[int64]TipoProducto), nextID: 1}
}

func (r *fakeTipoProductoRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[TipoProducto], error) {
	var items []TipoProducto
	for _, tp := range r.tipos {
		items = append(items, tp)
	}
	return domain.NewListResult(items, int64(len(items)), filter), nil
}

func (r *fakeTipoProductoRepo) GetByID(_ context.Context, id int64) (TipoProducto, error) {
	tp, ok := r.tipos[id]
	if !ok {
		return TipoProducto{}, apperror.NewNotFound("Tipo de producto no encontrado")
	}
	return tp, nil
}

func (r *fakeTipoProductoRepo) Create(_ context.Context, tp TipoProducto) (TipoProducto, error) {
	tp.IDTipo = r.nextID
	r.nextID++
	r.tipos[tp.IDTipo] = tp
	return tp, nil
}

func (r *fakeTipoProductoRepo) UpdatePartial(_ context.Context, id int64, patch UpdateTipoProducto) (TipoProducto, error) {
	r.updateCalls++
	tp, ok := r.tipos[id]
	if !ok {
		return TipoProducto{}, apperror.NewNotFound("Tipo de producto no encontrado")
	}
	if patch.NombreTipoProducto != nil {
		tp.NombreTipoProducto = *patch.NombreTipoProducto
	}
	r.tipos[id] = tp
	return tp, nil
}

func TestTipoProductoUpdateEmptyPatchIsNoop(t *testing.T) {
	repo := newFakeTipoProductoRepo()
	svc := NewTipoProductoService(repo)
	ctx := context.Background()

	tp, err := svc.Create(ctx, CreateTipoProducto{NombreTipoProducto: "Empaquetado"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, tp.IDTipo, UpdateTipoProducto{})
	require.NoError(t, err)
	assert.Equal(t, tp, got)
	assert.Zero(t, repo.updateCalls)
}

func TestTipoProductoUpdateRenames(t *testing.T) {
	repo := newFakeTipoProductoRepo()
	svc := NewTipoProductoService(repo)
	ctx := context.Background()

	tp, err := svc.Create(ctx, CreateTipoProducto{NombreTipoProducto: "Empaquetado"})
	require.NoError(t, err)

	nombre := "Granel"
	got, err := svc.Update(ctx, tp.IDTipo, UpdateTipoProducto{NombreTipoProducto: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Granel", got.NombreTipoProducto)
	assert.Equal(t, 1, repo.updateCalls)
}
