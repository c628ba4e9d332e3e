package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

const cotizacionColumns = `id, folio, partner_id, COALESCE(cliente_id, ''), usuario_id,
	estado, COALESCE(observaciones, ''), subtotal, total, fecha, updated_at`

// CotizacionRepo persistencia de cotizaciones sobre PostgreSQL (usable con pool o tx).
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

// Create persiste la cabecera de una cotización.
func (r *CotizacionRepo) Create(ctx context.Context, c *entity.Cotizacion) error {
	const query = `
		INSERT INTO cotizaciones
			(id, folio, partner_id, cliente_id, usuario_id, estado, observaciones, subtotal, total, fecha, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Folio, c.PartnerID, c.ClienteID, c.UsuarioID, c.Estado,
		c.Observaciones, c.Subtotal, c.Total, c.Fecha, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de cotización.
func (r *CotizacionRepo) CreateDetail(ctx context.Context, d *entity.DetalleCotizacion) error {
	const query = `
		INSERT INTO cotizacion_detalles
			(id, cotizacion_id, producto_id, codigo, cantidad, precio_unitario, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CotizacionID, d.ProductoID, d.Codigo, d.Cantidad, d.PrecioUnit, d.Total,
	)
	if err != nil {
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera. Devuelve nil sin error si no existe.
func (r *CotizacionRepo) GetByID(ctx context.Context, id string) (*entity.Cotizacion, error) {
	query := `SELECT ` + cotizacionColumns + ` FROM cotizaciones WHERE id = $1`
	c, err := scanCotizacion(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion by id: %w", err)
	}
	return c, nil
}

// GetDetails devuelve las líneas de una cotización en el orden en que se insertaron.
func (r *CotizacionRepo) GetDetails(ctx context.Context, cotizacionID string) ([]*entity.DetalleCotizacion, error) {
	const query = `
		SELECT id, cotizacion_id, producto_id, COALESCE(codigo, ''), cantidad, precio_unitario, total
		FROM cotizacion_detalles WHERE cotizacion_id = $1 ORDER BY orden`
	rows, err := r.q.Query(ctx, query, cotizacionID)
	if err != nil {
		return nil, fmt.Errorf("get detalles: %w", err)
	}
	defer rows.Close()

	var detalles []*entity.DetalleCotizacion
	for rows.Next() {
		var d entity.DetalleCotizacion
		if err := rows.Scan(&d.ID, &d.CotizacionID, &d.ProductoID, &d.Codigo,
			&d.Cantidad, &d.PrecioUnit, &d.Total); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		detalles = append(detalles, &d)
	}
	return detalles, rows.Err()
}

// List devuelve cotizaciones paginadas, más recientes primero, con el total.
func (r *CotizacionRepo) List(ctx context.Context, filter repository.CotizacionFilter) ([]*entity.Cotizacion, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause, value string) {
		n++
		where += fmt.Sprintf(clause, n)
		args = append(args, value)
	}
	if filter.PartnerID != "" {
		add(` AND partner_id = $%d`, filter.PartnerID)
	}
	if filter.UsuarioID != "" {
		add(` AND usuario_id = $%d`, filter.UsuarioID)
	}
	if filter.ClienteID != "" {
		add(` AND cliente_id = $%d`, filter.ClienteID)
	}
	if filter.Estado != "" {
		add(` AND estado = $%d`, filter.Estado)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cotizaciones`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cotizaciones: %w", err)
	}

	query := `SELECT ` + cotizacionColumns + ` FROM cotizaciones` + where +
		fmt.Sprintf(` ORDER BY fecha DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()

	var cots []*entity.Cotizacion
	for rows.Next() {
		c, err := scanCotizacion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cotizacion: %w", err)
		}
		cots = append(cots, c)
	}
	return cots, total, rows.Err()
}

// Update persiste los campos editables de la cabecera.
func (r *CotizacionRepo) Update(ctx context.Context, c *entity.Cotizacion) error {
	const query = `
		UPDATE cotizaciones SET
			estado = $2, observaciones = $3, subtotal = $4, total = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Estado, c.Observaciones, c.Subtotal, c.Total, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cotizacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteDetails elimina todas las líneas de una cotización.
func (r *CotizacionRepo) DeleteDetails(ctx context.Context, cotizacionID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM cotizacion_detalles WHERE cotizacion_id = $1`, cotizacionID)
	if err != nil {
		return fmt.Errorf("delete detalles: %w", err)
	}
	return nil
}

// Delete elimina la cotización con sus líneas (ON DELETE CASCADE en detalles).
func (r *CotizacionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cotizaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cotizacion: %w", err)
	}
	return nil
}

func scanCotizacion(row pgx.Row) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	err := row.Scan(
		&c.ID, &c.Folio, &c.PartnerID, &c.ClienteID, &c.UsuarioID,
		&c.Estado, &c.Observaciones, &c.Subtotal, &c.Total, &c.Fecha, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
