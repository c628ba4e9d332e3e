// Package excel exporta la consulta de existencias a un libro xlsx con una columna
// por zona regional.
package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

var _ usecase.ExistenciaExporter = (*ExistenciaExporter)(nil)

// ExistenciaExporter genera el libro de existencias.
type ExistenciaExporter struct{}

// NewExistenciaExporter construye el exportador.
func NewExistenciaExporter() *ExistenciaExporter {
	return &ExistenciaExporter{}
}

// ExportExistencias escribe una fila por producto: nombre, precio, total por zona y
// total general. El desglose por almacén va en una segunda hoja.
func (e *ExistenciaExporter) ExportExistencias(productos []dto.ProductoExistencia) ([]byte, error) {
	f := excelize.NewFile()
	resumen := "existencias"
	detalle := "almacenes"
	if err := f.SetSheetName("Sheet1", resumen); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(detalle); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	headers := []any{"Producto", "Precio"}
	for i := 1; i <= entity.NumZonas; i++ {
		headers = append(headers, fmt.Sprintf("Zona %d", i))
	}
	headers = append(headers, "Total")
	if err := f.SetSheetRow(resumen, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}

	for i, p := range productos {
		row := []any{p.Nombre}
		if p.Precio != nil {
			precio, _ := p.Precio.Float64()
			row = append(row, precio)
		} else {
			row = append(row, "N/A")
		}
		for z := 1; z <= entity.NumZonas; z++ {
			row = append(row, p.Zonas[fmt.Sprintf("zona%d", z)].Total)
		}
		row = append(row, p.Total)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(resumen, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	detHeaders := []any{"Producto", "Zona", "Almacén", "Cantidad"}
	if err := f.SetSheetRow(detalle, "A1", &detHeaders); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados detalle: %w", err)
	}
	fila := 2
	for _, p := range productos {
		for z := 1; z <= entity.NumZonas; z++ {
			zonaKey := fmt.Sprintf("zona%d", z)
			almacenes := p.Zonas[zonaKey].Almacenes
			ids := make([]string, 0, len(almacenes))
			for id := range almacenes {
				ids = append(ids, id)
			}
			sort.Strings(ids) // orden estable entre exportaciones
			for _, id := range ids {
				alm := almacenes[id]
				row := []any{p.Nombre, zonaKey, alm.Nombre, alm.Cantidad}
				if err := f.SetSheetRow(detalle, fmt.Sprintf("A%d", fila), &row); err != nil {
					return nil, fmt.Errorf("xlsx: fila detalle %d: %w", fila, err)
				}
				fila++
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
