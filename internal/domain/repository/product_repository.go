package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Search busca por SKU o nombre (ilike, sin acentos) con paginación. Devuelve
	// también el total de coincidencias para armar la paginación de la respuesta.
	Search(ctx context.Context, term string, limit, offset int) ([]*entity.Product, int, error)
}

// PriceRepository puerto de lectura de precios de lista por SKU.
type PriceRepository interface {
	GetBySKUs(ctx context.Context, skus []string) (map[string]decimal.Decimal, error)
}
