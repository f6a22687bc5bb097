// Package document_repo provides PostgreSQL persistence for the
// transactional records: sales and cost configurations.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"abarrote/internal/core/apperror"
	"abarrote/internal/domain/document"
	"abarrote/internal/infrastructure/storage/postgres"
)

var ventaJoinCols = []string{
	"v.id_venta",
	"v.id_plataforma",
	"v.id_cliente",
	"v.costo_despacho",
	"v.fecha_venta",
	"v.usuario",
	"v.created_at",
	"v.updated_at",
	"p.nombre_plataforma",
	"c.nombre_cliente",
}

// VentaRepo persists sales. Writes referencing a missing platform or
// client come back as a client-input error rather than a server
// failure.
type VentaRepo struct {
	txm *postgres.TxManager
}

// NewVentaRepo creates a sale repository.
func NewVentaRepo(txm *postgres.TxManager) *VentaRepo {
	return &VentaRepo{txm: txm}
}

func (r *VentaRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *VentaRepo) joinSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(ventaJoinCols...).
		From("venta v").
		InnerJoin("plataforma_venta p ON v.id_plataforma = p.id_plataforma").
		InnerJoin("cliente c ON v.id_cliente = c.id_cliente")
}

// ListAll returns every sale with platform and client names, newest
// sale first.
func (r *VentaRepo) ListAll(ctx context.Context) ([]document.Venta, error) {
	q := r.joinSelect().OrderBy("v.fecha_venta DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ventas []document.Venta
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &ventas, sql, args...); err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}

	return ventas, nil
}

// GetByID returns a single sale with its joined names.
func (r *VentaRepo) GetByID(ctx context.Context, id int64) (document.Venta, error) {
	q := r.joinSelect().Where(squirrel.Eq{"v.id_venta": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Venta{}, fmt.Errorf("build query: %w", err)
	}

	var v document.Venta
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &v, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return document.Venta{}, apperror.NewNotFound("Venta no encontrada")
		}
		return document.Venta{}, fmt.Errorf("get venta: %w", err)
	}

	return v, nil
}

// Create records a sale.
func (r *VentaRepo) Create(ctx context.Context, v document.Venta) (document.Venta, error) {
	q := r.builder().
		Insert("venta").
		Columns("id_plataforma", "id_cliente", "costo_despacho", "fecha_venta", "usuario").
		Values(v.IDPlataforma, v.IDCliente, v.CostoDespacho, v.FechaVenta, v.Usuario).
		Suffix("RETURNING id_venta, id_plataforma, id_cliente, costo_despacho, fecha_venta, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Venta{}, fmt.Errorf("build insert: %w", err)
	}

	var created document.Venta
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &created, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return document.Venta{}, apperror.NewForeignKey("La plataforma o cliente especificado no existe")
		}
		return document.Venta{}, fmt.Errorf("insert venta: %w", err)
	}

	return created, nil
}

// UpdatePartial applies the non-nil patch fields and stamps the acting
// user.
func (r *VentaRepo) UpdatePartial(ctx context.Context, id int64, patch document.UpdateVenta, usuario string) (document.Venta, error) {
	q := r.builder().
		Update("venta").
		SetMap(postgres.PatchToMap(patch)).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_venta": id}).
		Suffix("RETURNING id_venta, id_plataforma, id_cliente, costo_despacho, fecha_venta, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Venta{}, fmt.Errorf("build update: %w", err)
	}

	var updated document.Venta
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &updated, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return document.Venta{}, apperror.NewNotFound("Venta no encontrada")
		}
		if postgres.IsForeignKeyViolation(err) {
			return document.Venta{}, apperror.NewForeignKey("La plataforma o cliente especificado no existe")
		}
		return document.Venta{}, fmt.Errorf("update venta: %w", err)
	}

	return updated, nil
}
