package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
	"github.com/rodaplus/cotizador-api/internal/domain/ledger"
	"github.com/rodaplus/cotizador-api/internal/domain/repository"
)

// CotizacionUseCase crea, consulta y edita cotizaciones. El servidor reconstruye el
// ledger a partir de las líneas recibidas y verifica el contrato de totales (misma
// fórmula que el cliente: IVA = subtotal × 0.16) antes de persistir.
type CotizacionUseCase struct {
	txRunner    CotizacionTxRunner
	cotRepo     repository.CotizacionRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	pdfGen      CotizacionPDFGenerator
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(txRunner CotizacionTxRunner, cotRepo repository.CotizacionRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, pdfGen CotizacionPDFGenerator) *CotizacionUseCase {
	return &CotizacionUseCase{txRunner: txRunner, cotRepo: cotRepo, productRepo: productRepo, userRepo: userRepo, pdfGen: pdfGen}
}

// ledgerFromDetalles reconstruye un ledger con las líneas del payload. El constructor
// recalcula el total de cada línea, así que el invariante queda restablecido aunque el
// cliente no haya mandado totales por línea.
func ledgerFromDetalles(partnerID string, detalles []dto.DetalleRequest) *ledger.Ledger {
	lines := make([]ledger.Line, 0, len(detalles))
	for _, d := range detalles {
		lines = append(lines, ledger.Line{
			ProductID: d.ProductoID,
			SKU:       d.Codigo,
			Quantity:  d.Cantidad,
			UnitPrice: d.PrecioUnit,
		})
	}
	return ledger.NewWithLines(partnerID, lines)
}

// verifyTotals contrasta los totales enviados contra los derivados de las líneas y
// devuelve los derivados (la fuente de verdad). Totales en cero se interpretan como
// "no enviados" y solo se calculan, sin verificación.
func verifyTotals(l *ledger.Ledger, subtotal, total decimal.Decimal) (ledger.Totals, error) {
	derived := l.Totals()
	if !subtotal.IsZero() || !total.IsZero() {
		if !subtotal.Equal(derived.Subtotal) || !total.Equal(derived.Total) {
			return derived, domain.ErrTotalsMismatch
		}
	}
	return derived, nil
}

// Crear valida el gate de creación, verifica totales y persiste cabecera + detalles en
// una sola transacción. El partner de la cotización se resuelve por rol del actor:
// partner → él mismo, vendedor/cliente → su partner padre, staff → el del payload.
func (uc *CotizacionUseCase) Crear(ctx context.Context, actor *entity.User, in dto.CreateCotizacionRequest) (*dto.CotizacionResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}

	partnerID := in.PartnerID
	clienteID := in.ClienteID
	switch actor.Role {
	case entity.RolePartner:
		partnerID = actor.ID
	case entity.RoleVendedor:
		partnerID = actor.ParentPartnerID
	case entity.RoleCliente:
		partnerID = actor.ParentPartnerID
		clienteID = actor.ID
	}

	// Validar que cada línea refiera a un producto del catálogo (por ID o por SKU).
	for _, d := range in.Detalles {
		if err := uc.resolveProducto(ctx, d); err != nil {
			return nil, err
		}
	}

	l := ledgerFromDetalles(partnerID, in.Detalles)
	if !l.CanGenerate() {
		return nil, domain.ErrInvalidInput
	}

	derived, err := verifyTotals(l, in.Subtotal, in.Total)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cot := &entity.Cotizacion{
		ID:            uuid.New().String(),
		Folio:         fmt.Sprintf("COT-%d", now.Unix()),
		PartnerID:     partnerID,
		ClienteID:     clienteID,
		UsuarioID:     actor.ID,
		Estado:        entity.EstadoNueva,
		Observaciones: in.Observaciones,
		Subtotal:      derived.Subtotal,
		Total:         derived.Total,
		Fecha:         now,
		UpdatedAt:     now,
	}
	details := detallesFromLedger(cot.ID, l)

	err = uc.txRunner.RunCotizacion(ctx, func(repo repository.CotizacionRepository) error {
		if err := repo.Create(ctx, cot); err != nil {
			return err
		}
		for _, d := range details {
			if err := repo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, cot, details), nil
}

// resolveProducto verifica la existencia del producto de una línea: primero por ID,
// luego por SKU. Cantidad la juzga el gate, aquí solo identidad.
func (uc *CotizacionUseCase) resolveProducto(ctx context.Context, d dto.DetalleRequest) error {
	if d.ProductoID == "" && d.Codigo == "" {
		return domain.ErrInvalidInput
	}
	if d.ProductoID != "" {
		p, err := uc.productRepo.GetByID(ctx, d.ProductoID)
		if err != nil {
			return err
		}
		if p != nil {
			return nil
		}
	}
	if d.Codigo != "" {
		p, err := uc.productRepo.GetBySKU(ctx, d.Codigo)
		if err != nil {
			return err
		}
		if p != nil {
			return nil
		}
	}
	return domain.ErrNotFound
}

func detallesFromLedger(cotizacionID string, l *ledger.Ledger) []*entity.DetalleCotizacion {
	lines := l.Lines()
	out := make([]*entity.DetalleCotizacion, 0, len(lines))
	for _, line := range lines {
		out = append(out, &entity.DetalleCotizacion{
			ID:           uuid.New().String(),
			CotizacionID: cotizacionID,
			ProductoID:   line.ProductID,
			Codigo:       line.SKU,
			Cantidad:     line.Quantity,
			PrecioUnit:   line.UnitPrice,
			Total:        line.Total,
		})
	}
	return out
}

// Obtener devuelve una cotización con detalles, validando el acceso del actor.
func (uc *CotizacionUseCase) Obtener(ctx context.Context, actor *entity.User, id string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cot == nil {
		return nil, domain.ErrNotFound
	}
	if !canRead(actor, cot) {
		return nil, domain.ErrForbidden
	}
	details, err := uc.cotRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, cot, details), nil
}

// Listar aplica el alcance por rol: admin/sistemas ven todo; partner por partner_id;
// vendedor por usuario_id; cliente por cliente_id. Orden: fecha descendente.
func (uc *CotizacionUseCase) Listar(ctx context.Context, actor *entity.User, estado string, page dto.PageRequest) (*dto.CotizacionListResponse, error) {
	page.DefaultPage()
	filter := repository.CotizacionFilter{
		Estado: estado,
		Limit:  page.PerPage,
		Offset: page.Offset(),
	}
	switch {
	case actor.CanViewAllQuotations():
		// sin filtro de alcance
	case actor.Role == entity.RolePartner:
		filter.PartnerID = actor.ID
	case actor.Role == entity.RoleVendedor:
		filter.UsuarioID = actor.ID
	case actor.Role == entity.RoleCliente:
		filter.ClienteID = actor.ID
	default:
		return nil, domain.ErrForbidden
	}

	cots, total, err := uc.cotRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.CotizacionListResponse{
		Data:       make([]dto.CotizacionResponse, 0, len(cots)),
		Pagination: dto.NewPageResponse(page.Page, page.PerPage, total),
	}
	for _, c := range cots {
		details, err := uc.cotRepo.GetDetails(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out.Data = append(out.Data, *uc.toResponse(ctx, c, details))
	}
	return out, nil
}

// Actualizar aplica la matriz de permisos por rol y, si vienen detalles, los reemplaza
// de forma atómica validando el gate de edición (cantidad y precio positivos).
func (uc *CotizacionUseCase) Actualizar(ctx context.Context, actor *entity.User, id string, in dto.UpdateCotizacionRequest) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cot == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeUpdate(actor, cot, in); err != nil {
		return nil, err
	}

	if in.Estado != nil {
		if !entity.EstadoValido(*in.Estado) {
			return nil, domain.ErrInvalidInput
		}
		cot.Estado = *in.Estado
	}
	if in.Observaciones != nil {
		cot.Observaciones = *in.Observaciones
	}

	var newDetails []*entity.DetalleCotizacion
	if len(in.Detalles) > 0 {
		l := ledgerFromDetalles(cot.PartnerID, in.Detalles)
		if !l.CanSave() {
			return nil, domain.ErrInvalidInput
		}
		subtotal, total := decimal.Zero, decimal.Zero
		if in.Subtotal != nil {
			subtotal = *in.Subtotal
		}
		if in.Total != nil {
			total = *in.Total
		}
		derived, err := verifyTotals(l, subtotal, total)
		if err != nil {
			return nil, err
		}
		cot.Subtotal = derived.Subtotal
		cot.Total = derived.Total
		newDetails = detallesFromLedger(cot.ID, l)
	}
	cot.UpdatedAt = time.Now()

	err = uc.txRunner.RunCotizacion(ctx, func(repo repository.CotizacionRepository) error {
		if err := repo.Update(ctx, cot); err != nil {
			return err
		}
		if newDetails == nil {
			return nil
		}
		// Reemplazo completo de líneas: borrar + reinsertar dentro de la misma tx.
		if err := repo.DeleteDetails(ctx, cot.ID); err != nil {
			return err
		}
		for _, d := range newDetails {
			if err := repo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	details, err := uc.cotRepo.GetDetails(ctx, cot.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, cot, details), nil
}

// GenerarPDF arma el PDF imprimible de una cotización. Mismas reglas de lectura que
// Obtener.
func (uc *CotizacionUseCase) GenerarPDF(ctx context.Context, actor *entity.User, id string) ([]byte, error) {
	resp, err := uc.Obtener(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	partnerName := ""
	if partner, err := uc.userRepo.GetByID(ctx, resp.PartnerID); err == nil && partner != nil {
		partnerName = partner.Name
		if partner.Company != "" {
			partnerName = partner.Company
		}
	}
	return uc.pdfGen.GenerateCotizacionPDF(ctx, resp, partnerName)
}

// Eliminar borra una cotización. Solo admin/sistemas.
func (uc *CotizacionUseCase) Eliminar(ctx context.Context, actor *entity.User, id string) error {
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleSistemas {
		return domain.ErrForbidden
	}
	cot, err := uc.cotRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cot == nil {
		return domain.ErrNotFound
	}
	return uc.cotRepo.Delete(ctx, id)
}

// canRead reglas de visibilidad de una cotización individual.
func canRead(actor *entity.User, cot *entity.Cotizacion) bool {
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleSistemas, entity.RolePrecios:
		return true
	case entity.RolePartner:
		return cot.PartnerID == actor.ID
	case entity.RoleVendedor:
		return cot.UsuarioID == actor.ID || cot.PartnerID == actor.ParentPartnerID
	case entity.RoleCliente:
		return cot.ClienteID == actor.ID
	}
	return false
}

// authorizeUpdate matriz de permisos de edición, calcada de las reglas del producto:
//   - cliente: solo sus cotizaciones y solo para aceptar o rechazar (ningún otro campo).
//   - vendedor: si la capturó él o si el partner de la cotización es su partner padre.
//   - partner: solo las suyas.
//   - admin/sistemas: sin restricción.
func (uc *CotizacionUseCase) authorizeUpdate(actor *entity.User, cot *entity.Cotizacion, in dto.UpdateCotizacionRequest) error {
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleSistemas:
		return nil
	case entity.RoleCliente:
		if cot.ClienteID != actor.ID {
			return domain.ErrForbidden
		}
		if in.Estado == nil || (*in.Estado != entity.EstadoAceptada && *in.Estado != entity.EstadoRechazada) {
			return domain.ErrForbidden
		}
		if in.Observaciones != nil || len(in.Detalles) > 0 || in.Subtotal != nil || in.Total != nil {
			return domain.ErrForbidden
		}
		return nil
	case entity.RoleVendedor:
		if cot.UsuarioID == actor.ID || cot.PartnerID == actor.ParentPartnerID {
			return nil
		}
		return domain.ErrForbidden
	case entity.RolePartner:
		if cot.PartnerID == actor.ID {
			return nil
		}
		return domain.ErrForbidden
	}
	return domain.ErrForbidden
}

func (uc *CotizacionUseCase) toResponse(ctx context.Context, cot *entity.Cotizacion, details []*entity.DetalleCotizacion) *dto.CotizacionResponse {
	resp := &dto.CotizacionResponse{
		ID:            cot.ID,
		Folio:         cot.Folio,
		PartnerID:     cot.PartnerID,
		ClienteID:     cot.ClienteID,
		UsuarioID:     cot.UsuarioID,
		Estado:        cot.Estado,
		Observaciones: cot.Observaciones,
		Subtotal:      cot.Subtotal,
		IVA:           cot.Subtotal.Mul(ledger.TasaIVA),
		Total:         cot.Total,
		Fecha:         cot.Fecha,
		Detalles:      make([]dto.DetalleResponse, 0, len(details)),
	}
	for _, d := range details {
		nombre := ""
		if p, err := uc.productRepo.GetByID(ctx, d.ProductoID); err == nil && p != nil {
			nombre = p.Name
		}
		resp.Detalles = append(resp.Detalles, dto.DetalleResponse{
			ID:         d.ID,
			ProductoID: d.ProductoID,
			Codigo:     d.Codigo,
			Nombre:     nombre,
			Cantidad:   d.Cantidad,
			PrecioUnit: d.PrecioUnit,
			Total:      d.Total,
		})
	}
	return resp
}
