// Package pdf genera la representación imprimible de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Rodaplus │ Folio + Fecha + Estado                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DISTRIBUIDOR: nombre / empresa                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Código | P.Unit | Importe          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA (16%) / TOTAL                       │
//	│  OBSERVACIONES + leyenda de vigencia                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
)

var _ usecase.CotizacionPDFGenerator = (*MarotoCotizacionGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCotizacionGenerator implementa usecase.CotizacionPDFGenerator usando Maroto v2.
type MarotoCotizacionGenerator struct {
	companyName string
}

// NewMarotoCotizacionGenerator construye el generador con el nombre de la empresa
// emisora para el encabezado.
func NewMarotoCotizacionGenerator(companyName string) *MarotoCotizacionGenerator {
	return &MarotoCotizacionGenerator{companyName: companyName}
}

// GenerateCotizacionPDF genera el PDF y devuelve sus bytes.
func (g *MarotoCotizacionGenerator) GenerateCotizacionPDF(
	_ context.Context,
	cot *dto.CotizacionResponse,
	partnerName string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+cot.Folio, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(cot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partnerRow(partnerName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(cot.Detalles) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cot))

	for _, r := range footerRows(cot) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y folio + fecha + estado (der).
func (g *MarotoCotizacionGenerator) headerRow(cot *dto.CotizacionResponse) core.Row {
	fecha := cot.Fecha.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cotización de llantas al mayoreo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(cot.Folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   %s", fecha, strings.ToUpper(cot.Estado)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partnerRow: a quién se cotiza.
func partnerRow(partnerName string) core.Row {
	if partnerName == "" {
		partnerName = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DISTRIBUIDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(partnerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Código", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea de la cotización.
func tableDetailRows(detalles []dto.DetalleResponse) []core.Row {
	result := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		nombre := d.Nombre
		if nombre == "" {
			nombre = d.ProductoID
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", d.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.Codigo,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(d.PrecioUnit.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(d.Total.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(cot *dto.CotizacionResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA (16%):"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(cot.Subtotal.StringFixed(2))),
			value("$"+formatMoney(cot.IVA.StringFixed(2))),
			grandValue("$"+formatMoney(cot.Total.StringFixed(2))),
		),
		col.New(3),
	)
}

// footerRows: observaciones y leyenda de vigencia.
func footerRows(cot *dto.CotizacionResponse) []core.Row {
	rows := []core.Row{row.New(3)}
	if cot.Observaciones != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("Observaciones:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(cot.Observaciones, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)),
		)
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Precios en pesos mexicanos, IVA incluido en el total. "+
				"Cotización sujeta a existencias al momento de la confirmación.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta comas de miles en un string numérico con decimales.
// Ej: "25000.00" → "25,000.00"
func formatMoney(s string) string {
	entero, dec, found := strings.Cut(s, ".")
	n := len(entero)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(entero) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, c)
		}
		entero = string(buf)
	}
	if found {
		return entero + "." + dec
	}
	return entero
}
