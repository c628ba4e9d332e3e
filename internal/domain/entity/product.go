package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (llanta o servicio).
// Las medidas de llanta (Piso/Serie/Rin) son atributos descriptivos; el precio de venta
// vive aparte en PrecioProducto y se une por SKU al momento de buscar.
type Product struct {
	ID             string
	SKU            string
	Name           string
	Marca          string
	Modelo         string
	Piso           string // ancho del neumático (ej. 205)
	Serie          string // perfil (ej. 65)
	Rin            string // diámetro (ej. R15)
	CargaVelocidad string // índice de carga/velocidad (ej. 94V)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Medidas devuelve la medida compuesta para mostrar (ej. "205/65 R15"), vacío si falta algún dato.
func (p *Product) Medidas() string {
	if p.Piso == "" || p.Serie == "" || p.Rin == "" {
		return ""
	}
	return p.Piso + "/" + p.Serie + " R" + p.Rin
}

// PrecioProducto precio de lista vigente por SKU (cargado desde el archivo de precios).
type PrecioProducto struct {
	SKU       string
	Price     decimal.Decimal
	UpdatedAt time.Time
}
