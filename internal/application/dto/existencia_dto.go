package dto

import "github.com/shopspring/decimal"

// AlmacenExistencia cantidad de un producto en un almacén concreto.
type AlmacenExistencia struct {
	Nombre   string `json:"name"`
	Cantidad int    `json:"quantity"`
}

// ZonaExistencia total de una zona regional con desglose por almacén.
type ZonaExistencia struct {
	Total     int                          `json:"total"`
	Almacenes map[string]AlmacenExistencia `json:"almacenes"` // clave: warehouse_id
}

// ProductoExistencia inventario agregado de un producto: zonas zona1..zona4 y precio
// de lista si existe.
type ProductoExistencia struct {
	ID     string                    `json:"id"`
	Nombre string                    `json:"name"`
	Precio *decimal.Decimal          `json:"price,omitempty"` // nil = sin precio de lista
	Zonas  map[string]ZonaExistencia `json:"zonas"`           // "zona1".."zona4"
	Total  int                       `json:"total"`           // suma de todas las zonas
}

// ExistenciaSearchRequest filtros por medida (piso/serie/rin).
type ExistenciaSearchRequest struct {
	Piso  string `query:"piso"`
	Serie string `query:"serie"`
	Rin   string `query:"rin"`
}
