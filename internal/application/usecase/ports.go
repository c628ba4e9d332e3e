package usecase

import (
	"context"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// CotizacionTxRunner ejecuta un callback con un repositorio de cotizaciones atado a una
// transacción (Commit al retornar nil, Rollback ante error). Lo usan la creación y el
// reemplazo de detalles para que cabecera y líneas se escriban de forma atómica.
type CotizacionTxRunner interface {
	RunCotizacion(ctx context.Context, fn func(repo repository.CotizacionRepository) error) error
}

// CotizacionPDFGenerator genera la representación imprimible de una cotización.
type CotizacionPDFGenerator interface {
	GenerateCotizacionPDF(ctx context.Context, cot *dto.CotizacionResponse, partnerName string) ([]byte, error)
}

// ExistenciaExporter exporta la consulta de existencias a un libro descargable.
type ExistenciaExporter interface {
	ExportExistencias(productos []dto.ProductoExistencia) ([]byte, error)
}
