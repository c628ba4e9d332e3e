package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/infrastructure/excel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Exportador de existencias: hoja resumen y desglose por almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestExportExistencias_DetalleConOrdenEstable(t *testing.T) {
	precio := decimal.RequireFromString("1850.50")
	productos := []dto.ProductoExistencia{{
		ID:     "p-1",
		Nombre: "llanta michelin primacy 205/55R16",
		Precio: &precio,
		Zonas: map[string]dto.ZonaExistencia{
			"zona1": {
				Total: 22,
				Almacenes: map[string]dto.AlmacenExistencia{
					"w-03": {Nombre: "CEDIS Centro", Cantidad: 7},
					"w-01": {Nombre: "CEDIS Sur", Cantidad: 10},
					"w-02": {Nombre: "CEDIS Norte", Cantidad: 5},
				},
			},
		},
		Total: 22,
	}}

	libro, err := excel.NewExistenciaExporter().ExportExistencias(productos)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(libro))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("almacenes")
	require.NoError(t, err)
	require.Len(t, rows, 4) // encabezado + tres almacenes

	// las filas van por id de almacén, no por el orden de iteración del mapa
	assert.Equal(t, "CEDIS Sur", rows[1][2])
	assert.Equal(t, "CEDIS Norte", rows[2][2])
	assert.Equal(t, "CEDIS Centro", rows[3][2])

	resumen, err := f.GetRows("existencias")
	require.NoError(t, err)
	require.Len(t, resumen, 2)
	assert.Equal(t, "llanta michelin primacy 205/55R16", resumen[1][0])
	assert.Equal(t, "22", resumen[1][2], "total de zona1")
}

func TestExportExistencias_SinPrecioDeLista(t *testing.T) {
	productos := []dto.ProductoExistencia{{
		ID:     "p-2",
		Nombre: "llanta bfgoodrich 31x10.5R15",
		Zonas:  map[string]dto.ZonaExistencia{},
	}}

	libro, err := excel.NewExistenciaExporter().ExportExistencias(productos)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(libro))
	require.NoError(t, err)
	defer f.Close()

	resumen, err := f.GetRows("existencias")
	require.NoError(t, err)
	require.Len(t, resumen, 2)
	assert.Equal(t, "N/A", resumen[1][1])
}
