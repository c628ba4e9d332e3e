package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una cotización.
const (
	EstadoNueva     = "nueva"
	EstadoVista     = "vista"
	EstadoAceptada  = "aceptada"
	EstadoRechazada = "rechazada"
	EstadoEnProceso = "en_proceso"
	EstadoPagada    = "pagada"
	EstadoCerrada   = "cerrada"
	EstadoCancelada = "cancelada"
)

// EstadoValido verifica que el estado pertenezca al ciclo de vida conocido.
func EstadoValido(estado string) bool {
	switch estado {
	case EstadoNueva, EstadoVista, EstadoAceptada, EstadoRechazada,
		EstadoEnProceso, EstadoPagada, EstadoCerrada, EstadoCancelada:
		return true
	}
	return false
}

// Cotizacion representa la cabecera de una cotización persistida.
// Subtotal y Total se guardan tal como los produjo el ledger al momento de enviar;
// el servidor verifica que coincidan con las líneas antes de aceptar la escritura.
type Cotizacion struct {
	ID            string
	Folio         string // consecutivo legible (ej. COT-1693526400)
	PartnerID     string
	ClienteID     string
	UsuarioID     string // usuario que capturó la cotización
	Estado        string
	Observaciones string
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	Fecha         time.Time
	UpdatedAt     time.Time
}

// DetalleCotizacion una línea de la cotización.
type DetalleCotizacion struct {
	ID           string
	CotizacionID string
	ProductoID   string
	Codigo       string // SKU; la clave secundaria de identidad de línea
	Cantidad     int
	PrecioUnit   decimal.Decimal
	Total        decimal.Decimal
}
