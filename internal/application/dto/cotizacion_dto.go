package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleRequest una línea del payload de envío. Campos con nombre de wire del
// frontend: "codigo" es el SKU, "producto_id" la clave primaria del producto.
type DetalleRequest struct {
	ProductoID string          `json:"producto_id"`
	Codigo     string          `json:"codigo,omitempty"`
	Cantidad   int             `json:"cantidad"`
	PrecioUnit decimal.Decimal `json:"precio_unitario"`
}

// CreateCotizacionRequest payload de "Generar Cotización". Subtotal y Total vienen del
// ledger del cliente; el servidor verifica que coincidan con lo que derivan las líneas
// (misma fórmula: IVA = subtotal × 0.16). Si llegan en cero se calculan aquí.
type CreateCotizacionRequest struct {
	ClienteID     string           `json:"cliente_id,omitempty"`
	PartnerID     string           `json:"partner_id,omitempty"`
	Observaciones string           `json:"observaciones,omitempty"`
	Detalles      []DetalleRequest `json:"detalles"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Total         decimal.Decimal  `json:"total"`
}

// UpdateCotizacionRequest edición de una cotización existente. Punteros = "no tocar".
// Si Detalles viene, reemplaza todas las líneas (borrado + reinserción atómicos).
type UpdateCotizacionRequest struct {
	Estado        *string          `json:"estado,omitempty"`
	Observaciones *string          `json:"observaciones,omitempty"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Detalles      []DetalleRequest `json:"detalles,omitempty"`
}

// DetalleResponse línea persistida, con datos del producto para despliegue.
type DetalleResponse struct {
	ID         string          `json:"id"`
	ProductoID string          `json:"producto_id"`
	Codigo     string          `json:"codigo,omitempty"`
	Nombre     string          `json:"nombre,omitempty"`
	Cantidad   int             `json:"cantidad"`
	PrecioUnit decimal.Decimal `json:"precio_unitario"`
	Total      decimal.Decimal `json:"total"`
}

// CotizacionResponse cabecera + detalles. Los montos van sin redondear; el formateo a
// dos decimales es cosa del cliente.
type CotizacionResponse struct {
	ID            string            `json:"id"`
	Folio         string            `json:"id_cotizacion"`
	PartnerID     string            `json:"partner_id,omitempty"`
	ClienteID     string            `json:"cliente_id,omitempty"`
	UsuarioID     string            `json:"usuario_id,omitempty"`
	Estado        string            `json:"estado"`
	Observaciones string            `json:"observaciones,omitempty"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	IVA           decimal.Decimal   `json:"iva"`
	Total         decimal.Decimal   `json:"total"`
	Fecha         time.Time         `json:"fecha"`
	Detalles      []DetalleResponse `json:"detalle_cotizacion"`
}

// CotizacionListResponse listado paginado.
type CotizacionListResponse struct {
	Data       []CotizacionResponse `json:"data"`
	Pagination PageResponse         `json:"pagination"`
}
