package repository

import (
	"context"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

// CotizacionFilter filtros del listado de cotizaciones. El alcance por rol se expresa
// con exactamente uno de PartnerID/UsuarioID/ClienteID (o ninguno para admin/sistemas).
type CotizacionFilter struct {
	PartnerID string
	UsuarioID string
	ClienteID string
	Estado    string
	Limit     int
	Offset    int
}

// CotizacionRepository puerto de persistencia de cotizaciones (cabecera + detalles).
type CotizacionRepository interface {
	Create(ctx context.Context, c *entity.Cotizacion) error
	CreateDetail(ctx context.Context, d *entity.DetalleCotizacion) error
	GetByID(ctx context.Context, id string) (*entity.Cotizacion, error)
	GetDetails(ctx context.Context, cotizacionID string) ([]*entity.DetalleCotizacion, error)
	List(ctx context.Context, filter CotizacionFilter) ([]*entity.Cotizacion, int, error)
	Update(ctx context.Context, c *entity.Cotizacion) error
	// DeleteDetails elimina todos los detalles de una cotización (el reemplazo atómico
	// de líneas en la edición es borrar + reinsertar dentro de la misma transacción).
	DeleteDetails(ctx context.Context, cotizacionID string) error
	Delete(ctx context.Context, id string) error
}
