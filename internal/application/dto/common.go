package dto

import "github.com/shopspring/decimal"

// PageRequest paginación para listados (page/per_page como los maneja el frontend).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// DefaultPage aplica valores por defecto y topes.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
}

// Offset convierte page/per_page al offset SQL.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse arma los metadatos a partir del total de filas.
func NewPageResponse(page, perPage, total int) PageResponse {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return PageResponse{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CoerceDecimal normaliza entrada numérica de la UI en la frontera: un valor que no
// parsea como número se trata como 0, de manera uniforme para cantidad y precio (el
// gate de validación marcará el 0 resultante; nunca se propaga un valor inválido al
// ledger).
func CoerceDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
