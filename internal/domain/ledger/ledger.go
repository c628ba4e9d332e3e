// Package ledger implementa el libro de líneas de una cotización en curso: la colección
// ordenada de líneas con fusión por identidad de producto, los totales derivados
// (subtotal, IVA, total) y las condiciones de validación para enviar.
//
// El paquete es puro: sin I/O, sin estado global. El dinero se maneja con
// shopspring/decimal de punta a punta para que Total == Cantidad × PrecioUnitario
// se cumpla de forma exacta, sin deriva de flotantes.
package ledger

import "github.com/shopspring/decimal"

// Line es una línea de la cotización. Total es un campo derivado: solo se asigna
// dentro de las mutaciones de este paquete, nunca directamente.
type Line struct {
	ProductID string
	SKU       string // clave secundaria de identidad; cuando ambas partes la traen, manda sobre ProductID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal

	// Atributos solo de despliegue; no participan en ningún invariante.
	Marca          string
	Modelo         string
	Piso           string
	Serie          string
	Rin            string
	CargaVelocidad string
}

// Product es el descriptor que llega desde la búsqueda de productos.
// Price en cero equivale a "sin precio": la línea nueva arranca con total 0.
type Product struct {
	ID             string
	SKU            string
	Name           string
	Price          decimal.Decimal
	Marca          string
	Modelo         string
	Piso           string
	Serie          string
	Rin            string
	CargaVelocidad string
}

// Ledger mantiene las líneas de una cotización en memoria. El orden de inserción es el
// orden de despliegue. Una instancia por vista montada; las mutaciones se serializan en
// el hilo de eventos de la UI, por lo que el tipo no necesita sincronización propia.
type Ledger struct {
	PartnerID string
	lines     []Line
}

// New crea un ledger vacío para el partner dado (puede estar vacío y fijarse después).
func New(partnerID string) *Ledger {
	return &Ledger{PartnerID: partnerID}
}

// NewWithLines crea un ledger pre-sembrado (deep link con productos, edición de una
// cotización existente, o reconstrucción a partir de un payload). Restablece ambos
// invariantes: recalcula el Total de cada línea y fusiona duplicados por identidad
// sumando cantidades y conservando el precio de la primera aparición.
func NewWithLines(partnerID string, lines []Line) *Ledger {
	l := &Ledger{PartnerID: partnerID, lines: make([]Line, 0, len(lines))}
seed:
	for _, in := range lines {
		for i := range l.lines {
			if sameIdentity(l.lines[i], Product{ID: in.ProductID, SKU: in.SKU}) {
				l.lines[i].Quantity += in.Quantity
				l.lines[i].Total = lineTotal(l.lines[i].Quantity, l.lines[i].UnitPrice)
				continue seed
			}
		}
		in.Total = lineTotal(in.Quantity, in.UnitPrice)
		l.lines = append(l.lines, in)
	}
	return l
}

func lineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// sameIdentity decide si una línea existente y un candidato son el mismo producto:
// por SKU cuando ambos lo traen, si no por ID de producto.
func sameIdentity(line Line, p Product) bool {
	if line.SKU != "" && p.SKU != "" {
		return line.SKU == p.SKU
	}
	return line.ProductID == p.ID
}

// AddLine agrega el producto con cantidad implícita 1. Si ya existe una línea con la
// misma identidad, incrementa su cantidad y recalcula el total conservando el precio
// unitario ya capturado (el precio del candidato NO sobreescribe al existente).
// Devuelve true cuando hubo fusión, para que la capa de sesión emita el aviso
// transitorio de "cantidad actualizada" y limpie el estado de búsqueda.
func (l *Ledger) AddLine(p Product) (merged bool) {
	for i := range l.lines {
		if sameIdentity(l.lines[i], p) {
			l.lines[i].Quantity++
			l.lines[i].Total = lineTotal(l.lines[i].Quantity, l.lines[i].UnitPrice)
			return true
		}
	}
	l.lines = append(l.lines, Line{
		ProductID:      p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Quantity:       1,
		UnitPrice:      p.Price,
		Total:          p.Price,
		Marca:          p.Marca,
		Modelo:         p.Modelo,
		Piso:           p.Piso,
		Serie:          p.Serie,
		Rin:            p.Rin,
		CargaVelocidad: p.CargaVelocidad,
	})
	return false
}

// SetQuantity fija la cantidad de la línea i y recalcula su total.
// Índice fuera de rango: no-op silencioso (contrato observado; el gate se encarga de
// marcar cantidades no positivas, aquí no se rechazan).
func (l *Ledger) SetQuantity(i, quantity int) {
	if i < 0 || i >= len(l.lines) {
		return
	}
	l.lines[i].Quantity = quantity
	l.lines[i].Total = lineTotal(quantity, l.lines[i].UnitPrice)
}

// SetUnitPrice fija el precio unitario de la línea i y recalcula su total con la
// cantidad existente. Índice fuera de rango: no-op silencioso.
func (l *Ledger) SetUnitPrice(i int, price decimal.Decimal) {
	if i < 0 || i >= len(l.lines) {
		return
	}
	l.lines[i].UnitPrice = price
	l.lines[i].Total = lineTotal(l.lines[i].Quantity, price)
}

// Field identifica un campo descriptivo editable de una línea.
type Field int

const (
	FieldName Field = iota
	FieldMarca
	FieldModelo
	FieldPiso
	FieldSerie
	FieldRin
	FieldCargaVelocidad
)

// SetField fija un campo descriptivo de la línea i tal cual; el total no cambia porque
// no deriva de campos no numéricos. Campo desconocido o índice inválido: no-op.
func (l *Ledger) SetField(i int, field Field, value string) {
	if i < 0 || i >= len(l.lines) {
		return
	}
	switch field {
	case FieldName:
		l.lines[i].Name = value
	case FieldMarca:
		l.lines[i].Marca = value
	case FieldModelo:
		l.lines[i].Modelo = value
	case FieldPiso:
		l.lines[i].Piso = value
	case FieldSerie:
		l.lines[i].Serie = value
	case FieldRin:
		l.lines[i].Rin = value
	case FieldCargaVelocidad:
		l.lines[i].CargaVelocidad = value
	}
}

// RemoveLine elimina la línea i; las restantes conservan su orden relativo. Los índices
// de las líneas posteriores se recorren: quien llama no debe cachear índices a través
// de un remove.
func (l *Ledger) RemoveLine(i int) {
	if i < 0 || i >= len(l.lines) {
		return
	}
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

// Clear descarta todas las líneas (envío exitoso o navegación fuera de la vista).
func (l *Ledger) Clear() {
	l.lines = nil
}

// Len devuelve el número de líneas.
func (l *Ledger) Len() int { return len(l.lines) }

// Line devuelve una copia de la línea i.
func (l *Ledger) Line(i int) (Line, bool) {
	if i < 0 || i >= len(l.lines) {
		return Line{}, false
	}
	return l.lines[i], true
}

// Lines devuelve una copia del slice de líneas en orden de despliegue.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}
