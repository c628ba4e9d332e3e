package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodaplus/cotizador-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func producto(id, sku, precio string) ledger.Product {
	return ledger.Product{ID: id, SKU: sku, Name: "Producto " + id, Price: dec(precio)}
}

// assertInvariant verifica que cada línea cumple Total == Cantidad × PrecioUnitario.
func assertInvariant(t *testing.T, l *ledger.Ledger) {
	t.Helper()
	for i, line := range l.Lines() {
		esperado := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		assert.True(t, line.Total.Equal(esperado),
			"línea %d: Total %s no coincide con Cantidad×PrecioUnitario %s", i, line.Total, esperado)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddLine — alta y fusión por identidad
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: ledger vacío + producto P1 a 100 → una línea con
// cantidad 1, total 100, subtotal 100, IVA 16, total 116.
func TestAddLine_PrimeraLinea(t *testing.T) {
	l := ledger.New("partner-1")

	merged := l.AddLine(producto("P1", "", "100"))

	assert.False(t, merged, "la primera alta no debe reportar fusión")
	require.Equal(t, 1, l.Len())
	line, ok := l.Line(0)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.Total.Equal(dec("100")))

	tot := l.Totals()
	assert.True(t, tot.Subtotal.Equal(dec("100")), "subtotal debe ser 100")
	assert.True(t, tot.IVA.Equal(dec("16")), "IVA debe ser 16")
	assert.True(t, tot.Total.Equal(dec("116")), "total debe ser 116")
}

// Agregar el mismo SKU dos veces incrementa cantidad y conserva el precio unitario ya
// capturado: el precio del candidato (999) NO sobreescribe al existente (50).
func TestAddLine_FusionPorSKU_ConservaPrecio(t *testing.T) {
	l := ledger.New("partner-1")

	l.AddLine(ledger.Product{ID: "A", SKU: "X", Name: "Llanta X", Price: dec("50")})
	merged := l.AddLine(ledger.Product{ID: "B", SKU: "X", Name: "Llanta X", Price: dec("999")})

	assert.True(t, merged, "mismo SKU debe fusionar")
	require.Equal(t, 1, l.Len(), "misma identidad no debe crear segunda fila")
	line, _ := l.Line(0)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(dec("50")), "el precio existente debe conservarse")
	assert.True(t, line.Total.Equal(dec("100")))
}

// Sin SKU en alguna de las partes, la identidad cae al ID de producto.
func TestAddLine_FusionPorProductID_SinSKU(t *testing.T) {
	l := ledger.New("partner-1")

	l.AddLine(producto("P1", "", "80"))
	merged := l.AddLine(producto("P1", "", "80"))

	assert.True(t, merged)
	require.Equal(t, 1, l.Len())
	line, _ := l.Line(0)
	assert.Equal(t, 2, line.Quantity)
}

// Propiedad de idempotencia de fusión: N altas del mismo producto, intercaladas con
// altas de productos distintos, dejan exactamente una línea con cantidad N.
func TestAddLine_FusionIdempotente_Intercalada(t *testing.T) {
	l := ledger.New("partner-1")
	const n = 7

	for i := 0; i < n; i++ {
		l.AddLine(producto("REP", "SKU-REP", "120"))
		if i%2 == 0 {
			l.AddLine(producto("otro", "SKU-"+string(rune('a'+i)), "10"))
		}
	}

	repetida := 0
	for _, line := range l.Lines() {
		if line.SKU == "SKU-REP" {
			repetida++
			assert.Equal(t, n, line.Quantity, "la línea repetida debe acumular cantidad %d", n)
		}
	}
	assert.Equal(t, 1, repetida, "debe haber exactamente una línea para la identidad repetida")
	assertInvariant(t, l)
}

// Producto sin precio: la línea arranca con precio y total 0 (el gate de edición la
// marcará, no se rechaza en el alta).
func TestAddLine_SinPrecio_TotalCero(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(ledger.Product{ID: "P9", Name: "Servicio sin precio"})

	line, _ := l.Line(0)
	assert.True(t, line.UnitPrice.IsZero())
	assert.True(t, line.Total.IsZero())
}

// Los atributos descriptivos del candidato se copian a la línea para despliegue.
func TestAddLine_CopiaAtributosDescriptivos(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(ledger.Product{
		ID: "P1", SKU: "S1", Name: "Llanta", Price: dec("1500"),
		Marca: "Michelin", Modelo: "Primacy 4", Piso: "205", Serie: "55", Rin: "16",
	})

	line, _ := l.Line(0)
	assert.Equal(t, "Michelin", line.Marca)
	assert.Equal(t, "205", line.Piso)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity / SetUnitPrice / SetField
// ──────────────────────────────────────────────────────────────────────────────

func TestSetQuantity_RecalculaTotal(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("P1", "", "100"))

	l.SetQuantity(0, 4)

	line, _ := l.Line(0)
	assert.Equal(t, 4, line.Quantity)
	assert.True(t, line.Total.Equal(dec("400")))
	assertInvariant(t, l)
}

func TestSetUnitPrice_RecalculaTotalConCantidadExistente(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("P1", "", "100"))
	l.SetQuantity(0, 3)

	l.SetUnitPrice(0, dec("250.50"))

	line, _ := l.Line(0)
	assert.True(t, line.UnitPrice.Equal(dec("250.50")))
	assert.True(t, line.Total.Equal(dec("751.50")))
}

// Cantidad cero o negativa se acepta sin rechazo; el modelo no la recorta y el gate la
// marca como inválida.
func TestSetQuantity_NoPositiva_NoSeRecorta(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("P1", "", "100"))

	l.SetQuantity(0, 0)
	line, _ := l.Line(0)
	assert.Equal(t, 0, line.Quantity)
	assert.True(t, line.Total.IsZero())

	l.SetQuantity(0, -2)
	line, _ = l.Line(0)
	assert.Equal(t, -2, line.Quantity)
	assert.True(t, line.Total.Equal(dec("-200")))
	assertInvariant(t, l)
}

// Índice fuera de rango: no-op silencioso, el ledger no cambia.
func TestMutaciones_IndiceFueraDeRango_NoOp(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("P1", "", "100"))
	antes := l.Lines()

	l.SetQuantity(5, 99)
	l.SetQuantity(-1, 99)
	l.SetUnitPrice(5, dec("1"))
	l.SetField(5, ledger.FieldMarca, "x")
	l.RemoveLine(5)
	l.RemoveLine(-1)

	assert.Equal(t, antes, l.Lines(), "ninguna operación fuera de rango debe mutar el ledger")
}

// SetField sobre campos descriptivos no toca el total.
func TestSetField_NoTocaTotal(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("P1", "", "100"))
	l.SetQuantity(0, 2)

	l.SetField(0, ledger.FieldMarca, "Pirelli")
	l.SetField(0, ledger.FieldModelo, "P7")
	l.SetField(0, ledger.Field(99), "ignorado") // campo desconocido: no-op

	line, _ := l.Line(0)
	assert.Equal(t, "Pirelli", line.Marca)
	assert.Equal(t, "P7", line.Modelo)
	assert.True(t, line.Total.Equal(dec("200")), "el total no debe cambiar por campos descriptivos")
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveLine — re-direccionamiento de índices
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: remover el índice 1 de un ledger de 3 líneas deja la
// 1a y la 3a originales, en ese orden, con longitud 2.
func TestRemoveLine_ConservaOrdenRelativo(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("A", "SA", "10"))
	l.AddLine(producto("B", "SB", "20"))
	l.AddLine(producto("C", "SC", "30"))

	l.RemoveLine(1)

	require.Equal(t, 2, l.Len())
	lines := l.Lines()
	assert.Equal(t, "A", lines[0].ProductID)
	assert.Equal(t, "C", lines[1].ProductID)
}

func TestRemoveLine_HastaVacio(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("A", "", "10"))
	l.RemoveLine(0)

	assert.Equal(t, 0, l.Len())
	assert.True(t, l.Totals().Subtotal.IsZero(), "ledger vacío debe tener subtotal 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// NewWithLines — pre-siembra y restablecimiento del invariante
// ──────────────────────────────────────────────────────────────────────────────

// Al cargar líneas persistidas sin total (o con total desfasado), el constructor lo
// recalcula para restablecer el invariante antes de cualquier mutación.
func TestNewWithLines_RestableceInvariante(t *testing.T) {
	lines := []ledger.Line{
		{ProductID: "A", Quantity: 2, UnitPrice: dec("100")},                     // sin total
		{ProductID: "B", Quantity: 3, UnitPrice: dec("50"), Total: dec("9999")}, // total corrupto
	}

	l := ledger.NewWithLines("partner-1", lines)

	got := l.Lines()
	assert.True(t, got[0].Total.Equal(dec("200")))
	assert.True(t, got[1].Total.Equal(dec("150")))
	assertInvariant(t, l)
}

// Las líneas duplicadas de la pre-siembra se fusionan igual que en AddLine: suma de
// cantidades, precio de la primera aparición.
func TestNewWithLines_FusionaDuplicados(t *testing.T) {
	lines := []ledger.Line{
		{ProductID: "A", SKU: "SA", Quantity: 2, UnitPrice: dec("100")},
		{ProductID: "B", SKU: "SB", Quantity: 1, UnitPrice: dec("50")},
		{ProductID: "A", SKU: "SA", Quantity: 3, UnitPrice: dec("999")},
	}

	l := ledger.NewWithLines("partner-1", lines)

	got := l.Lines()
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Quantity)
	assert.True(t, got[0].UnitPrice.Equal(dec("100")), "el precio del duplicado no sobreescribe")
	assertInvariant(t, l)
}

// Propiedad general: cualquier secuencia de operaciones mantiene el invariante por
// línea y la aditividad del subtotal.
func TestInvariante_SecuenciaMixta(t *testing.T) {
	l := ledger.New("partner-1")
	l.AddLine(producto("A", "SA", "199.99"))
	l.AddLine(producto("B", "SB", "85"))
	l.AddLine(producto("A", "SA", "1")) // fusión, conserva 199.99
	l.SetQuantity(1, 6)
	l.SetUnitPrice(0, dec("210.10"))
	l.RemoveLine(1)
	l.AddLine(producto("C", "SC", "42.42"))

	assertInvariant(t, l)

	suma := decimal.Zero
	for _, line := range l.Lines() {
		suma = suma.Add(line.Total)
	}
	assert.True(t, l.Totals().Subtotal.Equal(suma), "subtotal debe ser la suma exacta de los totales de línea")
}
