package ledger

// Condiciones de validación que controlan el envío. Se recomputan en cada lectura,
// O(líneas), sin efectos secundarios.
//
// La asimetría entre vistas es una regla de producto deliberada: la vista de creación
// solo exige cantidades positivas; la de edición exige además precios positivos.
// No unificar.

// HasNonPositiveQuantity indica si alguna línea tiene cantidad 0 o negativa.
func (l *Ledger) HasNonPositiveQuantity() bool {
	for _, line := range l.lines {
		if line.Quantity <= 0 {
			return true
		}
	}
	return false
}

// HasNonPositivePrice indica si alguna línea tiene precio unitario 0 o negativo.
func (l *Ledger) HasNonPositivePrice() bool {
	for _, line := range l.lines {
		if line.UnitPrice.Sign() <= 0 {
			return true
		}
	}
	return false
}

// CanGenerate es el gate de la vista de creación: partner seleccionado, al menos una
// línea y ninguna cantidad no positiva.
func (l *Ledger) CanGenerate() bool {
	return l.PartnerID != "" && len(l.lines) > 0 && !l.HasNonPositiveQuantity()
}

// CanSave es el gate de la vista de edición: lo de CanGenerate más precios positivos.
func (l *Ledger) CanSave() bool {
	return l.CanGenerate() && !l.HasNonPositivePrice()
}
