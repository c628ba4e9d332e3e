package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// ExistenciaUseCase consulta de inventario agrupada por producto y zona regional
// (zona1..zona4) con desglose por almacén, más precio de lista si el SKU lo tiene.
type ExistenciaUseCase struct {
	existRepo   repository.ExistenciaRepository
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	exporter    ExistenciaExporter
}

// NewExistenciaUseCase construye el caso de uso.
func NewExistenciaUseCase(existRepo repository.ExistenciaRepository, productRepo repository.ProductRepository, priceRepo repository.PriceRepository, exporter ExistenciaExporter) *ExistenciaUseCase {
	return &ExistenciaUseCase{existRepo: existRepo, productRepo: productRepo, priceRepo: priceRepo, exporter: exporter}
}

// Consultar agrega las filas crudas de existencias en la estructura de zonas que
// consume la tabla de inventario. El rin llega como "R15" o "15"; se normaliza.
func (uc *ExistenciaUseCase) Consultar(ctx context.Context, in dto.ExistenciaSearchRequest) ([]dto.ProductoExistencia, error) {
	filter := repository.ExistenciaFilter{
		Piso:  strings.TrimSpace(in.Piso),
		Serie: strings.TrimSpace(in.Serie),
		Rin:   strings.TrimSpace(strings.ToUpper(in.Rin)),
	}
	filter.Rin = strings.TrimPrefix(filter.Rin, "R")

	rows, err := uc.existRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*dto.ProductoExistencia)
	var order []string
	for _, row := range rows {
		pe, ok := grouped[row.ProductoID]
		if !ok {
			pe = &dto.ProductoExistencia{
				ID:     row.ProductoID,
				Nombre: row.ProductoNom,
				Zonas:  emptyZonas(),
			}
			grouped[row.ProductoID] = pe
			order = append(order, row.ProductoID)
		}
		if row.Zona < 1 || row.Zona > entity.NumZonas || row.WarehouseID == "" {
			continue // ubicación sin zona asignada: no suma a ninguna zona
		}
		zonaKey := fmt.Sprintf("zona%d", row.Zona)
		zona := pe.Zonas[zonaKey]
		zona.Total += row.Cantidad
		alm := zona.Almacenes[row.WarehouseID]
		alm.Nombre = row.Warehouse
		alm.Cantidad += row.Cantidad
		zona.Almacenes[row.WarehouseID] = alm
		pe.Zonas[zonaKey] = zona
		pe.Total += row.Cantidad
	}

	uc.attachPrecios(ctx, grouped)

	sort.Strings(order)
	out := make([]dto.ProductoExistencia, 0, len(order))
	for _, id := range order {
		out = append(out, *grouped[id])
	}
	return out, nil
}

// Exportar corre la misma consulta y la entrega como libro xlsx.
func (uc *ExistenciaUseCase) Exportar(ctx context.Context, in dto.ExistenciaSearchRequest) ([]byte, error) {
	productos, err := uc.Consultar(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportExistencias(productos)
}

func emptyZonas() map[string]dto.ZonaExistencia {
	zonas := make(map[string]dto.ZonaExistencia, entity.NumZonas)
	for i := 1; i <= entity.NumZonas; i++ {
		zonas[fmt.Sprintf("zona%d", i)] = dto.ZonaExistencia{
			Almacenes: make(map[string]dto.AlmacenExistencia),
		}
	}
	return zonas
}

// attachPrecios une el precio de lista por SKU del producto. Productos sin SKU o sin
// precio quedan con Precio nil ("N/A" en la tabla).
func (uc *ExistenciaUseCase) attachPrecios(ctx context.Context, grouped map[string]*dto.ProductoExistencia) {
	skuByID := make(map[string]string, len(grouped))
	var skus []string
	for id := range grouped {
		p, err := uc.productRepo.GetByID(ctx, id)
		if err != nil || p == nil || p.SKU == "" {
			continue
		}
		skuByID[id] = p.SKU
		skus = append(skus, p.SKU)
	}
	if len(skus) == 0 {
		return
	}
	precios, err := uc.priceRepo.GetBySKUs(ctx, skus)
	if err != nil {
		return // el precio es informativo; la consulta de existencias no falla por él
	}
	for id, sku := range skuByID {
		if precio, ok := precios[sku]; ok {
			p := precio
			grouped[id].Precio = &p
		}
	}
}
