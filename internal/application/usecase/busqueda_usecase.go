package usecase

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// MinQueryLen longitud mínima del término de búsqueda. Por debajo no se consulta nada:
// el cliente limpia resultados de inmediato y esta capa rechaza con ErrQueryTooShort.
const MinQueryLen = 3

// BusquedaUseCase búsqueda de productos (con precio unido por SKU) y de clientes para
// armar cotizaciones.
type BusquedaUseCase struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	userRepo    repository.UserRepository
}

// NewBusquedaUseCase construye el caso de uso.
func NewBusquedaUseCase(productRepo repository.ProductRepository, priceRepo repository.PriceRepository, userRepo repository.UserRepository) *BusquedaUseCase {
	return &BusquedaUseCase{productRepo: productRepo, priceRepo: priceRepo, userRepo: userRepo}
}

// Normalize pliega acentos y pasa a minúsculas para que "Michelín" encuentre
// "michelin". Se aplica al término antes de tocar el repositorio.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// BuscarProductos busca por SKU o nombre y une el precio de lista por SKU. El precio
// sale normalizado a un solo campo ("precio") sin importar su tabla de origen.
func (uc *BusquedaUseCase) BuscarProductos(ctx context.Context, term string, page dto.PageRequest) (*dto.ProductoSearchResponse, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinQueryLen {
		return nil, domain.ErrQueryTooShort
	}
	page.DefaultPage()

	productos, total, err := uc.productRepo.Search(ctx, Normalize(term), page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}

	skus := make([]string, 0, len(productos))
	for _, p := range productos {
		if p.SKU != "" {
			skus = append(skus, p.SKU)
		}
	}
	precios, err := uc.priceRepo.GetBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	out := &dto.ProductoSearchResponse{
		Data:       make([]dto.ProductoResult, 0, len(productos)),
		Pagination: dto.NewPageResponse(page.Page, page.PerPage, total),
	}
	for _, p := range productos {
		r := dto.ProductoResult{
			ID:             p.ID,
			SKU:            p.SKU,
			Nombre:         p.Name,
			Marca:          p.Marca,
			Modelo:         p.Modelo,
			Piso:           p.Piso,
			Serie:          p.Serie,
			Rin:            p.Rin,
			CargaVelocidad: p.CargaVelocidad,
		}
		if precio, ok := precios[p.SKU]; ok {
			r.Precio = precio
		}
		out.Data = append(out.Data, r)
	}
	return out, nil
}

// BuscarUsuarios busca clientes por nombre o correo. Un vendedor solo ve su cartera
// (clientes cuyo parent_partner_id es él); los demás roles de staff ven todo.
func (uc *BusquedaUseCase) BuscarUsuarios(ctx context.Context, actor *entity.User, term, role string, page dto.PageRequest) (*dto.PartnerSearchResponse, error) {
	page.DefaultPage()

	filter := repository.UserFilter{
		Search: strings.TrimSpace(term),
		Role:   role,
		Limit:  page.PerPage,
		Offset: page.Offset(),
	}
	if actor.Role == entity.RoleVendedor {
		filter.ParentPartnerID = actor.ID
	}

	usuarios, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.PartnerSearchResponse{
		Data:       make([]dto.PartnerResult, 0, len(usuarios)),
		Pagination: dto.NewPageResponse(page.Page, page.PerPage, total),
	}
	for _, u := range usuarios {
		out.Data = append(out.Data, dto.PartnerResult{
			ID:      u.ID,
			Nombre:  u.Name,
			Email:   u.Email,
			Phone:   u.Phone,
			Company: u.Company,
			Role:    u.Role,
		})
	}
	return out, nil
}
