package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrote/internal/core/apperror"
	"abarrote/internal/core/appctx"
	"abarrote/internal/domain"
)

// passthroughTxManager runs the function directly; services only care
// that the same context flows through.
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeProductoRepo struct {
	productos map[int64]Producto
	lines     map[int64][]ProductoInsumo
	nextID    int64

	replaceCalls int
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{
		productos: make(map[int64]Producto),
		lines:     make(map[int64][]ProductoInsumo),
		nextID:    1,
	}
}

func (r *fakeProductoRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[Producto], error) {
	var items []Producto
	for _, p := range r.productos {
		items = append(items, p)
	}
	return domain.NewListResult(items, int64(len(items)), filter), nil
}

func (r *fakeProductoRepo) GetByID(_ context.Context, id int64) (Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return Producto{}, apperror.NewNotFound("Producto no encontrado")
	}
	return p, nil
}

func (r *fakeProductoRepo) FindBySKU(_ context.Context, sku string) (*Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeProductoRepo) Create(_ context.Context, p Producto) (Producto, error) {
	p.IDProducto = r.nextID
	r.nextID++
	if p.PublicadoML == "" {
		p.PublicadoML = PublicadoNo
	}
	p.Status = domain.StatusActivo
	r.productos[p.IDProducto] = p
	return p, nil
}

func (r *fakeProductoRepo) UpdatePartial(_ context.Context, id int64, patch UpdateProducto, usuario string) (Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return Producto{}, apperror.NewNotFound("Producto no encontrado")
	}
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.NombreProducto != nil {
		p.NombreProducto = *patch.NombreProducto
	}
	if patch.PrecioVenta != nil {
		p.PrecioVenta = *patch.PrecioVenta
	}
	p.Usuario = &usuario
	r.productos[id] = p
	return p, nil
}

func (r *fakeProductoRepo) SetPublicadoML(_ context.Context, id int64, publicado string, usuario string) (Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return Producto{}, apperror.NewNotFound("Producto no encontrado")
	}
	p.PublicadoML = publicado
	p.Usuario = &usuario
	r.productos[id] = p
	return p, nil
}

func (r *fakeProductoRepo) TogglePublicadoML(_ context.Context, id int64, usuario string) (Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return Producto{}, apperror.NewNotFound("Producto no encontrado")
	}
	if p.PublicadoML == PublicadoSi {
		p.PublicadoML = PublicadoNo
	} else {
		p.PublicadoML = PublicadoSi
	}
	p.Usuario = &usuario
	r.productos[id] = p
	return p, nil
}

func (r *fakeProductoRepo) SoftDelete(_ context.Context, id int64, usuario string) error {
	p, ok := r.productos[id]
	if !ok {
		return apperror.NewNotFound("Producto no encontrado")
	}
	p.Status = domain.StatusInactivo
	p.Usuario = &usuario
	r.productos[id] = p
	return nil
}

func (r *fakeProductoRepo) ListInsumos(_ context.Context, idProducto int64) ([]ProductoInsumo, error) {
	return r.lines[idProducto], nil
}

func (r *fakeProductoRepo) UpsertInsumo(_ context.Context, idProducto int64, line BOMLine, usuario string) (ProductoInsumo, error) {
	pi := ProductoInsumo{
		IDProducto: idProducto,
		IDInsumo:   line.IDInsumo,
		Cantidad:   line.Cantidad,
		Neto:       line.Neto,
		IVA:        line.IVA,
		Total:      line.Total,
		Usuario:    &usuario,
	}
	for i, existing := range r.lines[idProducto] {
		if existing.IDInsumo == line.IDInsumo {
			r.lines[idProducto][i] = pi
			return pi, nil
		}
	}
	r.lines[idProducto] = append(r.lines[idProducto], pi)
	return pi, nil
}

func (r *fakeProductoRepo) ReplaceInsumos(_ context.Context, idProducto int64, lines []BOMLine, usuario string) error {
	r.replaceCalls++
	r.lines[idProducto] = nil
	for _, l := range lines {
		if _, err := r.UpsertInsumo(context.Background(), idProducto, l, usuario); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProductoRepo) RemoveInsumo(_ context.Context, idProducto, idInsumo int64) error {
	for i, existing := range r.lines[idProducto] {
		if existing.IDInsumo == idInsumo {
			r.lines[idProducto] = append(r.lines[idProducto][:i], r.lines[idProducto][i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("Insumo no encontrado en el producto")
}

func newProductoFixture(t *testing.T) (*ProductoService, *fakeProductoRepo, *passthroughTxManager) {
	t.Helper()
	repo := newFakeProductoRepo()
	txm := &passthroughTxManager{}
	return NewProductoService(repo, txm), repo, txm
}

func userCtx(username string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{UserID: 1, Username: username})
}

func TestProductoCreateRejectsDuplicateSKU(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	_, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Otro pan", PrecioVenta: decimal.NewFromInt(25)})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "El SKU ya existe", appErr.Message)
}

func TestProductoCreateStampsActingUser(t *testing.T) {
	svc, repo, _ := newProductoFixture(t)

	p, err := svc.Create(userCtx("ana"), CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)
	require.NotNil(t, p.Usuario)
	assert.Equal(t, "ana", *p.Usuario)

	stored := repo.productos[p.IDProducto]
	assert.Equal(t, domain.StatusActivo, stored.Status)
}

func TestProductoCreateWithoutPrincipalUsesSystem(t *testing.T) {
	svc, _, _ := newProductoFixture(t)

	p, err := svc.Create(context.Background(), CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)
	require.NotNil(t, p.Usuario)
	assert.Equal(t, appctx.SystemUser, *p.Usuario)
}

func TestProductoUpdateRejectsSKUOfAnotherProduct(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	first, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateProducto{SKU: "PAN-002", NombreProducto: "Bolillo", PrecioVenta: decimal.NewFromInt(15)})
	require.NoError(t, err)

	sku := first.SKU
	_, err = svc.Update(ctx, second.IDProducto, UpdateProducto{SKU: &sku})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "El SKU ya existe en otro producto", appErr.Message)
}

func TestProductoUpdateKeepingOwnSKU(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	sku := p.SKU
	nombre := "Pan blanco"
	updated, err := svc.Update(ctx, p.IDProducto, UpdateProducto{SKU: &sku, NombreProducto: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Pan blanco", updated.NombreProducto)
}

func TestProductoUpdateReplacesBOMInTransaction(t *testing.T) {
	svc, repo, txm := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	lines := []BOMLine{
		{IDInsumo: 10, Cantidad: decimal.NewFromFloat(0.5)},
		{IDInsumo: 11, Cantidad: decimal.NewFromInt(2)},
	}
	_, err = svc.Update(ctx, p.IDProducto, UpdateProducto{Insumos: &lines})
	require.NoError(t, err)

	assert.Equal(t, 1, txm.calls)
	assert.Equal(t, 1, repo.replaceCalls)
	assert.Len(t, repo.lines[p.IDProducto], 2)
}

func TestProductoUpdateNilBOMLeavesLines(t *testing.T) {
	svc, repo, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.AddInsumo(ctx, p.IDProducto, BOMLine{IDInsumo: 10, Cantidad: decimal.NewFromInt(1)})
	require.NoError(t, err)

	nombre := "Pan dulce"
	_, err = svc.Update(ctx, p.IDProducto, UpdateProducto{NombreProducto: &nombre})
	require.NoError(t, err)

	assert.Zero(t, repo.replaceCalls)
	assert.Len(t, repo.lines[p.IDProducto], 1)
}

func TestProductoSetPublicadoMLValidatesValue(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.SetPublicadoML(ctx, p.IDProducto, "maybe")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	updated, err := svc.SetPublicadoML(ctx, p.IDProducto, PublicadoSi)
	require.NoError(t, err)
	assert.Equal(t, PublicadoSi, updated.PublicadoML)
}

func TestProductoToggleTwiceRestoresFlag(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)
	original := p.PublicadoML

	once, err := svc.TogglePublicadoML(ctx, p.IDProducto)
	require.NoError(t, err)
	assert.NotEqual(t, original, once.PublicadoML)

	twice, err := svc.TogglePublicadoML(ctx, p.IDProducto)
	require.NoError(t, err)
	assert.Equal(t, original, twice.PublicadoML)
}

func TestProductoReplaceInsumosEmptySetClearsBOM(t *testing.T) {
	svc, repo, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	_, err = svc.AddInsumo(ctx, p.IDProducto, BOMLine{IDInsumo: 10, Cantidad: decimal.NewFromInt(1)})
	require.NoError(t, err)

	lines, err := svc.ReplaceInsumos(ctx, p.IDProducto, []BOMLine{})
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Empty(t, repo.lines[p.IDProducto])
}

func TestProductoBOMOpsOnMissingProduct(t *testing.T) {
	svc, _, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	_, err := svc.ListInsumos(ctx, 99)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.AddInsumo(ctx, 99, BOMLine{IDInsumo: 1, Cantidad: decimal.NewFromInt(1)})
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.ReplaceInsumos(ctx, 99, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductoDeleteIsSoft(t *testing.T) {
	svc, repo, _ := newProductoFixture(t)
	ctx := userCtx("ana")

	p, err := svc.Create(ctx, CreateProducto{SKU: "PAN-001", NombreProducto: "Pan", PrecioVenta: decimal.NewFromInt(20)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.IDProducto))
	assert.Equal(t, domain.StatusInactivo, repo.productos[p.IDProducto].Status)
}
