package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain"
	"github.com/rodaplus/cotizador-api/internal/observability/metrics"
)

// CotizacionHandler maneja el CRUD de cotizaciones y las búsquedas de la vista de
// captura (protegido).
type CotizacionHandler struct {
	uc         *usecase.CotizacionUseCase
	busquedaUC *usecase.BusquedaUseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(uc *usecase.CotizacionUseCase, busquedaUC *usecase.BusquedaUseCase) *CotizacionHandler {
	return &CotizacionHandler{uc: uc, busquedaUC: busquedaUC}
}

// Crear godoc
// @Summary      Generar cotización
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCotizacionRequest  true  "partner, líneas y totales del ledger"
// @Success      201   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones [post]
func (h *CotizacionHandler) Crear(c *fiber.Ctx) error {
	var in dto.CreateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := actorFromCtx(c)
	out, err := h.uc.Crear(c.UserContext(), actor, in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cotización incompleta: partner y líneas con cantidad positiva son requeridos"})
		case domain.ErrTotalsMismatch:
			metrics.TotalsMismatch()
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOTALS_MISMATCH", Message: "los totales enviados no coinciden con las líneas"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "alguna línea refiere a un producto inexistente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.CotizacionCreated(actor.Role)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Listar cotizaciones (alcance según rol)
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        estado    query  string  false  "filtrar por estado"
// @Param        page      query  int     false  "página"
// @Param        per_page  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.CotizacionListResponse
// @Router       /api/cotizaciones [get]
func (h *CotizacionHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.Listar(c.UserContext(), actorFromCtx(c), c.Query("estado"), page)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso al listado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener cotización por ID
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [get]
func (h *CotizacionHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), actorFromCtx(c), c.Params("id"))
	if err != nil {
		return cotizacionError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar cotización (estado, observaciones o reemplazo de líneas)
// @Tags         cotizaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la cotización"
// @Param        body  body  dto.UpdateCotizacionRequest  true  "campos a modificar"
// @Success      200  {object}  dto.CotizacionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [put]
func (h *CotizacionHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.UpdateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.UserContext(), actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrTotalsMismatch {
			metrics.TotalsMismatch()
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "TOTALS_MISMATCH", Message: "los totales enviados no coinciden con las líneas"})
		}
		return cotizacionError(c, err)
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Eliminar cotización
// @Tags         cotizaciones
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cotización"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id} [delete]
func (h *CotizacionHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.UserContext(), actorFromCtx(c), c.Params("id")); err != nil {
		return cotizacionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/pdf [get]
func (h *CotizacionHandler) PDF(c *fiber.Ctx) error {
	data, err := h.uc.GenerarPDF(c.UserContext(), actorFromCtx(c), c.Params("id"))
	if err != nil {
		return cotizacionError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cotizacion.pdf"`)
	return c.Send(data)
}

// BuscarProductos godoc
// @Summary      Buscar productos por SKU o nombre (mínimo 3 caracteres)
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  true   "término de búsqueda"
// @Param        page      query  int     false  "página"
// @Param        per_page  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ProductoSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/buscar-productos [get]
func (h *CotizacionHandler) BuscarProductos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.busquedaUC.BuscarProductos(c.UserContext(), c.Query("q"), page)
	if err != nil {
		if err == domain.ErrQueryTooShort {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "QUERY_TOO_SHORT", Message: "el término requiere al menos 3 caracteres"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.Busqueda("productos")
	return c.JSON(out)
}

// BuscarUsuarios godoc
// @Summary      Buscar clientes/partners para la cotización
// @Tags         cotizaciones
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "nombre o correo"
// @Param        rol       query  string  false  "filtrar por rol"
// @Param        page      query  int     false  "página"
// @Param        per_page  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.PartnerSearchResponse
// @Router       /api/cotizaciones/buscar-usuarios [get]
func (h *CotizacionHandler) BuscarUsuarios(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.busquedaUC.BuscarUsuarios(c.UserContext(), actorFromCtx(c), c.Query("q"), c.Query("rol"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.Busqueda("usuarios")
	return c.JSON(out)
}

// cotizacionError mapea errores de dominio del módulo a códigos HTTP.
func cotizacionError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso sobre esta cotización"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
