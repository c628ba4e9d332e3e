package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, COALESCE(sku, ''), name, COALESCE(marca, ''), COALESCE(modelo, ''),
	COALESCE(piso, ''), COALESCE(serie, ''), COALESCE(rin, ''), COALESCE(carga_velocidad, '')`

// ProductRepo catálogo de productos sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product by id")
}

// GetBySKU obtiene un producto por SKU. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get product by sku")
}

// Search busca por SKU o nombre. La columna name_norm está precalculada sin acentos y
// en minúsculas, a juego con la normalización que aplica la capa de búsqueda.
func (r *ProductRepo) Search(ctx context.Context, term string, limit, offset int) ([]*entity.Product, int, error) {
	const where = ` WHERE lower(sku) LIKE $1 OR name_norm LIKE $1`
	pattern := likePattern(term)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		productos = append(productos, p)
	}
	return productos, total, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Marca, &p.Modelo,
		&p.Piso, &p.Serie, &p.Rin, &p.CargaVelocidad,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo lista de precios por SKU sobre PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de precios.
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// GetBySKUs devuelve el precio de lista de cada SKU que lo tenga. SKUs sin precio
// simplemente no aparecen en el mapa.
func (r *PriceRepo) GetBySKUs(ctx context.Context, skus []string) (map[string]decimal.Decimal, error) {
	precios := make(map[string]decimal.Decimal, len(skus))
	if len(skus) == 0 {
		return precios, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT sku, precio FROM precios WHERE sku = ANY($1)`, skus)
	if err != nil {
		return nil, fmt.Errorf("get precios: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sku string
		var precio decimal.Decimal
		if err := rows.Scan(&sku, &precio); err != nil {
			return nil, fmt.Errorf("scan precio: %w", err)
		}
		precios[sku] = precio
	}
	return precios, rows.Err()
}
