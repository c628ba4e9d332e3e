package repository

import (
	"context"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

// ExistenciaFilter filtros de la consulta de inventario por medida de llanta.
// Todos opcionales; vacíos = todo el inventario.
type ExistenciaFilter struct {
	Piso  string
	Serie string
	Rin   string
}

// ExistenciaRepository puerto de lectura de existencias por almacén/zona.
type ExistenciaRepository interface {
	Query(ctx context.Context, filter ExistenciaFilter) ([]*entity.Existencia, error)
}
