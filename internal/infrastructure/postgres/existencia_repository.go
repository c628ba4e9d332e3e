package postgres

import (
	"context"
	"fmt"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

var _ repository.ExistenciaRepository = (*ExistenciaRepo)(nil)

// ExistenciaRepo lectura de existencias por almacén. Cada almacén tiene asignada una
// zona regional (1..4); la agregación por zona la hace la capa de aplicación.
type ExistenciaRepo struct {
	q Querier
}

// NewExistenciaRepository construye el adaptador de existencias.
func NewExistenciaRepository(q Querier) *ExistenciaRepo {
	return &ExistenciaRepo{q: q}
}

// Query devuelve las filas crudas producto × almacén que cumplen el filtro de medida.
func (r *ExistenciaRepo) Query(ctx context.Context, filter repository.ExistenciaFilter) ([]*entity.Existencia, error) {
	query := `
		SELECT p.id, p.name, COALESCE(w.id, ''), COALESCE(w.name, ''), COALESCE(w.zona, 0), e.cantidad
		FROM existencias e
		JOIN products p ON p.id = e.producto_id
		LEFT JOIN warehouses w ON w.id = e.warehouse_id
		WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Piso != "" {
		n++
		query += fmt.Sprintf(` AND p.piso = $%d`, n)
		args = append(args, filter.Piso)
	}
	if filter.Serie != "" {
		n++
		query += fmt.Sprintf(` AND p.serie = $%d`, n)
		args = append(args, filter.Serie)
	}
	if filter.Rin != "" {
		n++
		query += fmt.Sprintf(` AND p.rin = $%d`, n)
		args = append(args, filter.Rin)
	}
	query += ` ORDER BY p.name, w.name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query existencias: %w", err)
	}
	defer rows.Close()

	var out []*entity.Existencia
	for rows.Next() {
		var e entity.Existencia
		if err := rows.Scan(&e.ProductoID, &e.ProductoNom, &e.WarehouseID,
			&e.Warehouse, &e.Zona, &e.Cantidad); err != nil {
			return nil, fmt.Errorf("scan existencia: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
