package ledger

import "github.com/shopspring/decimal"

// TasaIVA es la tasa de impuesto fija (IVA México 16%). No es configurable: el cliente
// y el servidor deben coincidir en la fórmula para que los totales del payload cuadren.
var TasaIVA = decimal.RequireFromString("0.16")

// Totals son los agregados derivados de las líneas. Nunca se almacenan: se recomputan
// en cada lectura. Sin redondeo interno; el formateo a 2 decimales es asunto de la capa
// de presentación.
type Totals struct {
	Subtotal decimal.Decimal
	IVA      decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals deriva subtotal/IVA/total a partir de las líneas. Suma el campo Total
// de cada línea confiando en el invariante del ledger; esta capa no toca cantidad ni
// precio unitario a propósito.
func CalculateTotals(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total)
	}
	iva := subtotal.Mul(TasaIVA)
	return Totals{
		Subtotal: subtotal,
		IVA:      iva,
		Total:    subtotal.Add(iva),
	}
}

// Totals recomputa los agregados del ledger.
func (l *Ledger) Totals() Totals {
	return CalculateTotals(l.lines)
}
