package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain"
	"abarrote/internal/domain/catalog"
	"abarrote/internal/infrastructure/storage/postgres"
)

// ProductoRepo persists products and their bill of materials.
type ProductoRepo struct {
	*BaseCatalogRepo[catalog.Producto]
}

// NewProductoRepo creates a product repository.
func NewProductoRepo(txm *postgres.TxManager) *ProductoRepo {
	return &ProductoRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[catalog.Producto](
			txm,
			"producto", "id_producto", "nombre_producto",
			[]string{"id_producto", "sku", "nombre_producto", "descripcion", "precio_venta", "tipo_producto", "publicado_ml", "status", "usuario", "created_at", "updated_at"},
			[]string{"sku", "nombre_producto", "descripcion", "precio_venta", "tipo_producto", "usuario"},
			"Producto no encontrado",
		),
	}
}

// List retrieves products filtered by status, search substring and
// product type.
func (r *ProductoRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[catalog.Producto], error) {
	if filter.TipoProducto == nil {
		return r.BaseCatalogRepo.List(ctx, filter)
	}

	sub := filter
	sub.TipoProducto = nil

	// Same shape as the base listing plus the type restriction.
	q := r.Builder().
		Select("id_producto", "sku", "nombre_producto", "descripcion", "precio_venta", "tipo_producto", "publicado_ml", "status", "usuario", "created_at", "updated_at").
		From("producto").
		Where(squirrel.Eq{"tipo_producto": *filter.TipoProducto})

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"nombre_producto": "%" + filter.Search + "%"})
	}

	var total int64
	if filter.Limit > 0 {
		countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
		countSQL, countArgs, err := countQ.ToSql()
		if err != nil {
			return domain.ListResult[catalog.Producto]{}, fmt.Errorf("build count: %w", err)
		}
		if err := r.Querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return domain.ListResult[catalog.Producto]{}, fmt.Errorf("count productos: %w", err)
		}
	}

	q = q.OrderBy("nombre_producto ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[catalog.Producto]{}, fmt.Errorf("build query: %w", err)
	}

	var items []catalog.Producto
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return domain.ListResult[catalog.Producto]{}, fmt.Errorf("list productos: %w", err)
	}

	return domain.NewListResult(items, total, filter), nil
}

// FindBySKU returns the product carrying the SKU, or nil when none
// does.
func (r *ProductoRepo) FindBySKU(ctx context.Context, sku string) (*catalog.Producto, error) {
	q := r.Builder().
		Select("id_producto", "sku", "nombre_producto", "descripcion", "precio_venta", "tipo_producto", "publicado_ml", "status", "usuario", "created_at", "updated_at").
		From("producto").
		Where(squirrel.Eq{"sku": sku}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p catalog.Producto
	if err := pgxscan.Get(ctx, r.Querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find producto by sku: %w", err)
	}

	return &p, nil
}

// Create inserts a product, translating a duplicate SKU into the same
// conflict error the pre-check produces.
func (r *ProductoRepo) Create(ctx context.Context, p catalog.Producto) (catalog.Producto, error) {
	created, err := r.BaseCatalogRepo.Create(ctx, p)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return catalog.Producto{}, apperror.NewDuplicate("El SKU ya existe")
		}
		return catalog.Producto{}, err
	}
	return created, nil
}

// UpdatePartial applies the non-nil patch fields, with the same
// duplicate-SKU translation as Create.
func (r *ProductoRepo) UpdatePartial(ctx context.Context, id int64, patch catalog.UpdateProducto, usuario string) (catalog.Producto, error) {
	updated, err := r.BaseCatalogRepo.UpdatePartial(ctx, id, patch, usuario)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return catalog.Producto{}, apperror.NewDuplicate("El SKU ya existe en otro producto")
		}
		return catalog.Producto{}, err
	}
	return updated, nil
}

// SetPublicadoML sets the marketplace flag to an explicit value.
func (r *ProductoRepo) SetPublicadoML(ctx context.Context, id int64, publicado string, usuario string) (catalog.Producto, error) {
	q := r.Builder().
		Update("producto").
		Set("publicado_ml", publicado).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_producto": id}).
		Suffix("RETURNING id_producto, sku, nombre_producto, descripcion, precio_venta, tipo_producto, publicado_ml, status, usuario, created_at, updated_at")

	return r.execReturning(ctx, q)
}

// TogglePublicadoML flips the marketplace flag in one statement, so
// concurrent toggles never read a stale value.
func (r *ProductoRepo) TogglePublicadoML(ctx context.Context, id int64, usuario string) (catalog.Producto, error) {
	q := r.Builder().
		Update("producto").
		Set("publicado_ml", squirrel.Expr("CASE WHEN publicado_ml = 'si' THEN 'no' ELSE 'si' END")).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_producto": id}).
		Suffix("RETURNING id_producto, sku, nombre_producto, descripcion, precio_venta, tipo_producto, publicado_ml, status, usuario, created_at, updated_at")

	return r.execReturning(ctx, q)
}

func (r *ProductoRepo) execReturning(ctx context.Context, q squirrel.UpdateBuilder) (catalog.Producto, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return catalog.Producto{}, fmt.Errorf("build update: %w", err)
	}

	var p catalog.Producto
	if err := pgxscan.Get(ctx, r.Querier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return catalog.Producto{}, r.NotFound()
		}
		return catalog.Producto{}, fmt.Errorf("update producto: %w", err)
	}

	return p, nil
}

// --- Bill of materials ---

// ListInsumos returns the product's lines joined with the current
// supply name and price.
func (r *ProductoRepo) ListInsumos(ctx context.Context, idProducto int64) ([]catalog.ProductoInsumo, error) {
	q := r.Builder().
		Select("pi.id_producto", "pi.id_insumo", "pi.cantidad", "pi.neto", "pi.iva", "pi.total", "pi.usuario", "i.nombre_insumo", "i.precio_insumo").
		From("producto_insumo pi").
		InnerJoin("insumo i ON pi.id_insumo = i.id_insumo").
		Where(squirrel.Eq{"pi.id_producto": idProducto}).
		OrderBy("i.nombre_insumo ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []catalog.ProductoInsumo
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list producto insumos: %w", err)
	}

	return lines, nil
}

// UpsertInsumo inserts a line or, when the (product, supply) pair
// already exists, overwrites its quantity, cost breakdown and acting
// user in place.
func (r *ProductoRepo) UpsertInsumo(ctx context.Context, idProducto int64, line catalog.BOMLine, usuario string) (catalog.ProductoInsumo, error) {
	q := r.Builder().
		Insert("producto_insumo").
		Columns("id_producto", "id_insumo", "cantidad", "neto", "iva", "total", "usuario").
		Values(idProducto, line.IDInsumo, line.Cantidad, line.Neto, line.IVA, line.Total, usuario).
		Suffix(`ON CONFLICT (id_producto, id_insumo)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, neto = EXCLUDED.neto, iva = EXCLUDED.iva, total = EXCLUDED.total, usuario = EXCLUDED.usuario
			RETURNING id_producto, id_insumo, cantidad, neto, iva, total, usuario`)

	sql, args, err := q.ToSql()
	if err != nil {
		return catalog.ProductoInsumo{}, fmt.Errorf("build upsert: %w", err)
	}

	var saved catalog.ProductoInsumo
	if err := pgxscan.Get(ctx, r.Querier(ctx), &saved, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return catalog.ProductoInsumo{}, apperror.NewForeignKey("El insumo especificado no existe")
		}
		return catalog.ProductoInsumo{}, fmt.Errorf("upsert producto insumo: %w", err)
	}

	return saved, nil
}

// ReplaceInsumos deletes every line of the product and inserts the new
// set. Callers wrap it in a transaction; any failure rolls the whole
// swap back, keeping the prior set intact.
func (r *ProductoRepo) ReplaceInsumos(ctx context.Context, idProducto int64, lines []catalog.BOMLine, usuario string) error {
	del := r.Builder().
		Delete("producto_insumo").
		Where(squirrel.Eq{"id_producto": idProducto})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete producto insumos: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert("producto_insumo").
		Columns("id_producto", "id_insumo", "cantidad", "neto", "iva", "total", "usuario")
	for _, line := range lines {
		ins = ins.Values(idProducto, line.IDInsumo, line.Cantidad, line.Neto, line.IVA, line.Total, usuario)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewForeignKey("El insumo especificado no existe")
		}
		return fmt.Errorf("insert producto insumos: %w", err)
	}

	return nil
}

// RemoveInsumo deletes one line by its composite key.
func (r *ProductoRepo) RemoveInsumo(ctx context.Context, idProducto, idInsumo int64) error {
	q := r.Builder().
		Delete("producto_insumo").
		Where(squirrel.Eq{"id_producto": idProducto, "id_insumo": idInsumo})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete producto insumo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("Insumo no encontrado en el producto")
	}

	return nil
}
