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

var costoJoinCols = []string{
	"cp.id_costo",
	"cp.id_producto",
	"cp.id_caja",
	"cp.id_cadena",
	"cp.id_plataforma",
	"cp.neto",
	"cp.iva",
	"cp.total",
	"cp.usuario",
	"cp.created_at",
	"cp.updated_at",
	"p.nombre_producto",
	"p.sku",
	"ca.nombre_caja",
	"cd.nombre_cadena",
	"pv.nombre_plataforma",
}

// CostoRepo persists cost configurations and their supply lines. Cost
// records are hard-deleted; the lines cascade.
type CostoRepo struct {
	txm *postgres.TxManager
}

// NewCostoRepo creates a cost record repository.
func NewCostoRepo(txm *postgres.TxManager) *CostoRepo {
	return &CostoRepo{txm: txm}
}

func (r *CostoRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *CostoRepo) joinSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(costoJoinCols...).
		From("costo_producto cp").
		InnerJoin("producto p ON cp.id_producto = p.id_producto").
		InnerJoin("caja ca ON cp.id_caja = ca.id_caja").
		InnerJoin("cadena cd ON cp.id_cadena = cd.id_cadena").
		InnerJoin("plataforma_venta pv ON cp.id_plataforma = pv.id_plataforma")
}

// ListAll returns every cost record ordered by product name.
func (r *CostoRepo) ListAll(ctx context.Context) ([]document.Costo, error) {
	q := r.joinSelect().OrderBy("p.nombre_producto ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var costos []document.Costo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &costos, sql, args...); err != nil {
		return nil, fmt.Errorf("list costos: %w", err)
	}

	return costos, nil
}

// GetByID returns a single cost record with joined display names.
func (r *CostoRepo) GetByID(ctx context.Context, id int64) (document.Costo, error) {
	q := r.joinSelect().Where(squirrel.Eq{"cp.id_costo": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Costo{}, fmt.Errorf("build query: %w", err)
	}

	var c document.Costo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return document.Costo{}, apperror.NewNotFound("Costo no encontrado")
		}
		return document.Costo{}, fmt.Errorf("get costo: %w", err)
	}

	return c, nil
}

// ListByProductoID returns the cost records of one product.
func (r *CostoRepo) ListByProductoID(ctx context.Context, idProducto int64) ([]document.Costo, error) {
	q := r.builder().
		Select("cp.id_costo", "cp.id_producto", "cp.id_caja", "cp.id_cadena", "cp.id_plataforma",
			"cp.neto", "cp.iva", "cp.total", "cp.usuario", "cp.created_at", "cp.updated_at",
			"ca.nombre_caja", "cd.nombre_cadena", "pv.nombre_plataforma").
		From("costo_producto cp").
		InnerJoin("caja ca ON cp.id_caja = ca.id_caja").
		InnerJoin("cadena cd ON cp.id_cadena = cd.id_cadena").
		InnerJoin("plataforma_venta pv ON cp.id_plataforma = pv.id_plataforma").
		Where(squirrel.Eq{"cp.id_producto": idProducto})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var costos []document.Costo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &costos, sql, args...); err != nil {
		return nil, fmt.Errorf("list costos by producto: %w", err)
	}

	return costos, nil
}

// Create inserts a cost record.
func (r *CostoRepo) Create(ctx context.Context, c document.Costo) (document.Costo, error) {
	q := r.builder().
		Insert("costo_producto").
		Columns("id_producto", "id_caja", "id_cadena", "id_plataforma", "neto", "iva", "total", "usuario").
		Values(c.IDProducto, c.IDCaja, c.IDCadena, c.IDPlataforma, c.Neto, c.IVA, c.Total, c.Usuario).
		Suffix("RETURNING id_costo, id_producto, id_caja, id_cadena, id_plataforma, neto, iva, total, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Costo{}, fmt.Errorf("build insert: %w", err)
	}

	var created document.Costo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &created, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return document.Costo{}, apperror.NewForeignKey("El producto, caja, cadena o plataforma especificada no existe")
		}
		return document.Costo{}, fmt.Errorf("insert costo: %w", err)
	}

	return created, nil
}

// UpdatePartial applies the non-nil patch fields and stamps the acting
// user.
func (r *CostoRepo) UpdatePartial(ctx context.Context, id int64, patch document.UpdateCosto, usuario string) (document.Costo, error) {
	q := r.builder().
		Update("costo_producto").
		SetMap(postgres.PatchToMap(patch)).
		Set("usuario", usuario).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id_costo": id}).
		Suffix("RETURNING id_costo, id_producto, id_caja, id_cadena, id_plataforma, neto, iva, total, usuario, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return document.Costo{}, fmt.Errorf("build update: %w", err)
	}

	var updated document.Costo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &updated, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return document.Costo{}, apperror.NewNotFound("Costo no encontrado")
		}
		if postgres.IsForeignKeyViolation(err) {
			return document.Costo{}, apperror.NewForeignKey("La caja, cadena o plataforma especificada no existe")
		}
		return document.Costo{}, fmt.Errorf("update costo: %w", err)
	}

	return updated, nil
}

// HardDelete removes the cost record.
func (r *CostoRepo) HardDelete(ctx context.Context, id int64) error {
	q := r.builder().
		Delete("costo_producto").
		Where(squirrel.Eq{"id_costo": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete costo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("Costo no encontrado")
	}

	return nil
}

// --- Lines ---

// ListInsumos returns the record's lines with supply names and
// prices.
func (r *CostoRepo) ListInsumos(ctx context.Context, idCosto int64) ([]document.CostoInsumo, error) {
	q := r.builder().
		Select("ic.id_costo", "ic.id_insumo", "ic.cantidad", "ic.usuario", "i.nombre_insumo", "i.precio_insumo").
		From("insumo_costo ic").
		InnerJoin("insumo i ON ic.id_insumo = i.id_insumo").
		Where(squirrel.Eq{"ic.id_costo": idCosto}).
		OrderBy("i.nombre_insumo ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []document.CostoInsumo
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list costo insumos: %w", err)
	}

	return lines, nil
}

// UpsertInsumo inserts a line or overwrites the existing one for the
// (cost, supply) pair.
func (r *CostoRepo) UpsertInsumo(ctx context.Context, idCosto int64, line document.CostoBOMLine, usuario string) (document.CostoInsumo, error) {
	q := r.builder().
		Insert("insumo_costo").
		Columns("id_insumo", "id_costo", "cantidad", "usuario").
		Values(line.IDInsumo, idCosto, line.Cantidad, usuario).
		Suffix(`ON CONFLICT (id_insumo, id_costo)
			DO UPDATE SET cantidad = EXCLUDED.cantidad, usuario = EXCLUDED.usuario
			RETURNING id_costo, id_insumo, cantidad, usuario`)

	sql, args, err := q.ToSql()
	if err != nil {
		return document.CostoInsumo{}, fmt.Errorf("build upsert: %w", err)
	}

	var saved document.CostoInsumo
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &saved, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return document.CostoInsumo{}, apperror.NewForeignKey("El insumo especificado no existe")
		}
		return document.CostoInsumo{}, fmt.Errorf("upsert costo insumo: %w", err)
	}

	return saved, nil
}

// ReplaceInsumos deletes every line of the record and inserts the new
// set; runs inside the caller's transaction.
func (r *CostoRepo) ReplaceInsumos(ctx context.Context, idCosto int64, lines []document.CostoBOMLine, usuario string) error {
	del := r.builder().
		Delete("insumo_costo").
		Where(squirrel.Eq{"id_costo": idCosto})

	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete costo insumos: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.builder().
		Insert("insumo_costo").
		Columns("id_insumo", "id_costo", "cantidad", "usuario")
	for _, line := range lines {
		ins = ins.Values(line.IDInsumo, idCosto, line.Cantidad, usuario)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewForeignKey("El insumo especificado no existe")
		}
		return fmt.Errorf("insert costo insumos: %w", err)
	}

	return nil
}

// RemoveInsumo deletes one line by its composite key.
func (r *CostoRepo) RemoveInsumo(ctx context.Context, idCosto, idInsumo int64) error {
	q := r.builder().
		Delete("insumo_costo").
		Where(squirrel.Eq{"id_costo": idCosto, "id_insumo": idInsumo})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete costo insumo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("Insumo no encontrado en el costo")
	}

	return nil
}
