// Package register_repo provides PostgreSQL persistence for the stock
// registers.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain/register"
	"abarrote/internal/infrastructure/storage/postgres"
)

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// StockInsumoRepo persists supply stock rows, one per supply.
type StockInsumoRepo struct {
	txm *postgres.TxManager
}

// NewStockInsumoRepo creates a supply stock repository.
func NewStockInsumoRepo(txm *postgres.TxManager) *StockInsumoRepo {
	return &StockInsumoRepo{txm: txm}
}

// ListAll returns every supply stock row joined with the supply name.
func (r *StockInsumoRepo) ListAll(ctx context.Context) ([]register.StockInsumo, error) {
	q := builder().
		Select("s.id_stock", "s.id_insumo", "s.cantidad", "s.usuario", "s.created_at", "s.updated_at", "i.nombre_insumo").
		From("stock_insumo s").
		InnerJoin("insumo i ON s.id_insumo = i.id_insumo").
		OrderBy("i.nombre_insumo ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []register.StockInsumo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock insumos: %w", err)
	}

	return rows, nil
}

// GetByInsumoID returns the stock row of one supply.
func (r *StockInsumoRepo) GetByInsumoID(ctx context.Context, idInsumo int64) (register.StockInsumo, error) {
	q := builder().
		Select("id_stock", "id_insumo", "cantidad", "usuario", "created_at", "updated_at").
		From("stock_insumo").
		Where(squirrel.Eq{"id_insumo": idInsumo})

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockInsumo{}, fmt.Errorf("build query: %w", err)
	}

	var s register.StockInsumo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return register.StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
		}
		return register.StockInsumo{}, fmt.Errorf("get stock insumo: %w", err)
	}

	return s, nil
}

// Upsert creates the stock row or overwrites its quantity, keyed on
// the supply id.
func (r *StockInsumoRepo) Upsert(ctx context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (register.StockInsumo, error) {
	q := builder().
		Insert("stock_insumo").
		Columns("id_insumo", "cantidad", "usuario").
		Values(idInsumo, cantidad, usuario).
		Suffix(`ON CONFLICT (id_insumo)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, usuario = EXCLUDED.usuario, updated_at = NOW()
			RETURNING id_stock, id_insumo, cantidad, usuario, created_at, updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockInsumo{}, fmt.Errorf("build upsert: %w", err)
	}

	var s register.StockInsumo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return register.StockInsumo{}, apperror.NewForeignKey("El insumo especificado no existe")
		}
		return register.StockInsumo{}, fmt.Errorf("upsert stock insumo: %w", err)
	}

	return s, nil
}

// UpdateCantidad overwrites the stored quantity of an existing row.
func (r *StockInsumoRepo) UpdateCantidad(ctx context.Context, idInsumo int64, cantidad decimal.Decimal, usuario string) (register.StockInsumo, error) {
	q := builder().
		Update("stock_insumo").
		Set("cantidad", cantidad).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_insumo": idInsumo}).
		Suffix("RETURNING id_stock, id_insumo, cantidad, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockInsumo{}, fmt.Errorf("build update: %w", err)
	}

	var s register.StockInsumo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return register.StockInsumo{}, apperror.NewNotFound("Stock de insumo no encontrado")
		}
		return register.StockInsumo{}, fmt.Errorf("update stock insumo: %w", err)
	}

	return s, nil
}

// StockProductoRepo persists product stock rows. Its UpdateCantidad
// adds to the stored quantity instead of overwriting it; the two
// registers intentionally diverge here.
type StockProductoRepo struct {
	txm *postgres.TxManager
}

// NewStockProductoRepo creates a product stock repository.
func NewStockProductoRepo(txm *postgres.TxManager) *StockProductoRepo {
	return &StockProductoRepo{txm: txm}
}

// ListAll returns every product stock row joined with name and SKU.
func (r *StockProductoRepo) ListAll(ctx context.Context) ([]register.StockProducto, error) {
	q := builder().
		Select("s.id_stock", "s.id_producto", "s.cantidad", "s.usuario", "s.created_at", "s.updated_at", "p.nombre_producto", "p.sku").
		From("stock_producto s").
		InnerJoin("producto p ON s.id_producto = p.id_producto").
		OrderBy("p.nombre_producto ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []register.StockProducto
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock productos: %w", err)
	}

	return rows, nil
}

// GetByProductoID returns the stock row of one product.
func (r *StockProductoRepo) GetByProductoID(ctx context.Context, idProducto int64) (register.StockProducto, error) {
	q := builder().
		Select("id_stock", "id_producto", "cantidad", "usuario", "created_at", "updated_at").
		From("stock_producto").
		Where(squirrel.Eq{"id_producto": idProducto})

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockProducto{}, fmt.Errorf("build query: %w", err)
	}

	var s register.StockProducto
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return register.StockProducto{}, apperror.NewNotFound("Stock de producto no encontrado")
		}
		return register.StockProducto{}, fmt.Errorf("get stock producto: %w", err)
	}

	return s, nil
}

// Upsert creates the stock row or overwrites its quantity, keyed on
// the product id.
func (r *StockProductoRepo) Upsert(ctx context.Context, idProducto int64, cantidad decimal.Decimal, usuario string) (register.StockProducto, error) {
	q := builder().
		Insert("stock_producto").
		Columns("id_producto", "cantidad", "usuario").
		Values(idProducto, cantidad, usuario).
		Suffix(`ON CONFLICT (id_producto)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, usuario = EXCLUDED.usuario, updated_at = NOW()
			RETURNING id_stock, id_producto, cantidad, usuario, created_at, updated_at`)

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockProducto{}, fmt.Errorf("build upsert: %w", err)
	}

	var s register.StockProducto
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return register.StockProducto{}, apperror.NewForeignKey("El producto especificado no existe")
		}
		return register.StockProducto{}, fmt.Errorf("upsert stock producto: %w", err)
	}

	return s, nil
}

// UpdateCantidad increments the stored quantity by delta.
func (r *StockProductoRepo) UpdateCantidad(ctx context.Context, idProducto int64, delta decimal.Decimal, usuario string) (register.StockProducto, error) {
	q := builder().
		Update("stock_producto").
		Set("cantidad", squirrel.Expr("cantidad + ?", delta)).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_producto": idProducto}).
		Suffix("RETURNING id_stock, id_producto, cantidad, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return register.StockProducto{}, fmt.Errorf("build update: %w", err)
	}

	var s register.StockProducto
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return register.StockProducto{}, apperror.NewNotFound("Stock de producto no encontrado")
		}
		return register.StockProducto{}, fmt.Errorf("update stock producto: %w", err)
	}

	return s, nil
}
