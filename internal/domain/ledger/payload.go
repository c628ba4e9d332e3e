package ledger

import "github.com/shopspring/decimal"

// PayloadLine línea tal como viaja al backend al confirmar.
type PayloadLine struct {
	ProductID string          `json:"producto_id"`
	Codigo    string          `json:"codigo,omitempty"` // SKU
	Cantidad  int             `json:"cantidad"`
	PrecioU   decimal.Decimal `json:"precio_unitario"`
}

// Payload es el cuerpo de envío de la cotización completa. Subtotal y Total DEBEN ser
// exactamente lo que CalculateTotals deriva de las líneas al momento del envío: aquí se
// computan en el mismo acto de serializar, así que la igualdad vale por construcción.
// El servidor verifica la misma fórmula al recibir.
type Payload struct {
	PartnerID string          `json:"partner_id"`
	Detalles  []PayloadLine   `json:"detalles"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

// Payload serializa el ledger para el envío.
func (l *Ledger) Payload() Payload {
	detalles := make([]PayloadLine, 0, len(l.lines))
	for _, line := range l.lines {
		detalles = append(detalles, PayloadLine{
			ProductID: line.ProductID,
			Codigo:    line.SKU,
			Cantidad:  line.Quantity,
			PrecioU:   line.UnitPrice,
		})
	}
	totals := l.Totals()
	return Payload{
		PartnerID: l.PartnerID,
		Detalles:  detalles,
		Subtotal:  totals.Subtotal,
		Total:     totals.Total,
	}
}
