package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los repositorios
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products []*entity.Product
	searchFn func(term string) []*entity.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Search(_ context.Context, term string, limit, offset int) ([]*entity.Product, int, error) {
	var hits []*entity.Product
	if f.searchFn != nil {
		hits = f.searchFn(term)
	} else {
		for _, p := range f.products {
			if strings.Contains(strings.ToLower(p.SKU), term) || strings.Contains(strings.ToLower(p.Name), term) {
				hits = append(hits, p)
			}
		}
	}
	total := len(hits)
	if offset > len(hits) {
		offset = len(hits)
	}
	hits = hits[offset:]
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, total, nil
}

type fakePriceRepo struct {
	precios map[string]decimal.Decimal
}

func (f *fakePriceRepo) GetBySKUs(_ context.Context, skus []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, sku := range skus {
		if p, ok := f.precios[sku]; ok {
			out[sku] = p
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, int, error) {
	var hits []*entity.User
	for _, u := range f.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.ParentPartnerID != "" && u.ParentPartnerID != filter.ParentPartnerID {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), s) && !strings.Contains(strings.ToLower(u.Email), s) {
				continue
			}
		}
		hits = append(hits, u)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Name < hits[j].Name })
	total := len(hits)
	if filter.Offset > len(hits) {
		filter.Offset = len(hits)
	}
	hits = hits[filter.Offset:]
	if filter.Limit > 0 && len(hits) > filter.Limit {
		hits = hits[:filter.Limit]
	}
	return hits, total, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

// fakeCotizacionRepo persistencia en memoria de cabeceras y detalles. También hace de
// TxRunner: la "transacción" es él mismo.
type fakeCotizacionRepo struct {
	cots     map[string]*entity.Cotizacion
	detalles map[string][]*entity.DetalleCotizacion
}

func newFakeCotizacionRepo() *fakeCotizacionRepo {
	return &fakeCotizacionRepo{
		cots:     make(map[string]*entity.Cotizacion),
		detalles: make(map[string][]*entity.DetalleCotizacion),
	}
}

func (f *fakeCotizacionRepo) RunCotizacion(ctx context.Context, fn func(repository.CotizacionRepository) error) error {
	return fn(f)
}

func (f *fakeCotizacionRepo) Create(_ context.Context, c *entity.Cotizacion) error {
	cp := *c
	f.cots[c.ID] = &cp
	return nil
}

func (f *fakeCotizacionRepo) CreateDetail(_ context.Context, d *entity.DetalleCotizacion) error {
	cp := *d
	f.detalles[d.CotizacionID] = append(f.detalles[d.CotizacionID], &cp)
	return nil
}

func (f *fakeCotizacionRepo) GetByID(_ context.Context, id string) (*entity.Cotizacion, error) {
	c, ok := f.cots[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCotizacionRepo) GetDetails(_ context.Context, cotizacionID string) ([]*entity.DetalleCotizacion, error) {
	return f.detalles[cotizacionID], nil
}

func (f *fakeCotizacionRepo) List(_ context.Context, filter repository.CotizacionFilter) ([]*entity.Cotizacion, int, error) {
	var hits []*entity.Cotizacion
	for _, c := range f.cots {
		if filter.PartnerID != "" && c.PartnerID != filter.PartnerID {
			continue
		}
		if filter.UsuarioID != "" && c.UsuarioID != filter.UsuarioID {
			continue
		}
		if filter.ClienteID != "" && c.ClienteID != filter.ClienteID {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		hits = append(hits, c)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Fecha.After(hits[j].Fecha) })
	total := len(hits)
	if filter.Offset > len(hits) {
		filter.Offset = len(hits)
	}
	hits = hits[filter.Offset:]
	if filter.Limit > 0 && len(hits) > filter.Limit {
		hits = hits[:filter.Limit]
	}
	return hits, total, nil
}

func (f *fakeCotizacionRepo) Update(_ context.Context, c *entity.Cotizacion) error {
	cp := *c
	f.cots[c.ID] = &cp
	return nil
}

func (f *fakeCotizacionRepo) DeleteDetails(_ context.Context, cotizacionID string) error {
	delete(f.detalles, cotizacionID)
	return nil
}

func (f *fakeCotizacionRepo) Delete(_ context.Context, id string) error {
	delete(f.cots, id)
	delete(f.detalles, id)
	return nil
}

type fakeExistenciaRepo struct {
	rows []*entity.Existencia
}

func (f *fakeExistenciaRepo) Query(_ context.Context, filter repository.ExistenciaFilter) ([]*entity.Existencia, error) {
	return f.rows, nil
}

type fakePDFGen struct {
	lastPartnerName string
}

func (f *fakePDFGen) GenerateCotizacionPDF(_ context.Context, _ *dto.CotizacionResponse, partnerName string) ([]byte, error) {
	f.lastPartnerName = partnerName
	return []byte("%PDF-1.7"), nil
}

type fakeExporter struct {
	exported []dto.ProductoExistencia
}

func (f *fakeExporter) ExportExistencias(productos []dto.ProductoExistencia) ([]byte, error) {
	f.exported = productos
	return []byte("PK"), nil
}
