package dto

import "github.com/shopspring/decimal"

// ProductoResult resultado de la búsqueda de productos. El precio llega normalizado a
// UN solo nombre de campo ("precio") sin importar de qué tabla salió: la normalización
// vive aquí, en el adaptador de frontera, no dentro del ledger.
type ProductoResult struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku,omitempty"`
	Nombre         string          `json:"name"`
	Precio         decimal.Decimal `json:"precio"`
	Marca          string          `json:"marca,omitempty"`
	Modelo         string          `json:"modelo,omitempty"`
	Piso           string          `json:"piso,omitempty"`
	Serie          string          `json:"serie,omitempty"`
	Rin            string          `json:"rin,omitempty"`
	CargaVelocidad string          `json:"carga_velocidad,omitempty"`
}

// ProductoSearchResponse resultados paginados de búsqueda de productos.
type ProductoSearchResponse struct {
	Data       []ProductoResult `json:"data"`
	Pagination PageResponse     `json:"pagination"`
}

// PartnerResult resultado de la búsqueda de clientes/partners para la cotización.
type PartnerResult struct {
	ID      string `json:"id"`
	Nombre  string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"empresa,omitempty"`
	Role    string `json:"rol,omitempty"`
}

// PartnerSearchResponse resultados paginados de búsqueda de clientes.
type PartnerSearchResponse struct {
	Data       []PartnerResult `json:"data"`
	Pagination PageResponse    `json:"pagination"`
}
