package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
)

// ExistenciaHandler consulta de inventario por zonas (protegido).
type ExistenciaHandler struct {
	uc *usecase.ExistenciaUseCase
}

// NewExistenciaHandler construye el handler.
func NewExistenciaHandler(uc *usecase.ExistenciaUseCase) *ExistenciaHandler {
	return &ExistenciaHandler{uc: uc}
}

// Consultar godoc
// @Summary      Consultar existencias por medida, agrupadas por zona
// @Tags         existencias
// @Security     Bearer
// @Produce      json
// @Param        piso   query  string  false  "ancho de sección"
// @Param        serie  query  string  false  "serie/perfil"
// @Param        rin    query  string  false  "rin (R15 o 15)"
// @Success      200  {array}  dto.ProductoExistencia
// @Router       /api/existencias [get]
func (h *ExistenciaHandler) Consultar(c *fiber.Ctx) error {
	var in dto.ExistenciaSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.uc.Consultar(c.UserContext(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Exportar godoc
// @Summary      Exportar la consulta de existencias a xlsx
// @Tags         existencias
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        piso   query  string  false  "ancho de sección"
// @Param        serie  query  string  false  "serie/perfil"
// @Param        rin    query  string  false  "rin (R15 o 15)"
// @Success      200  {file}  binary
// @Router       /api/existencias/export [get]
func (h *ExistenciaHandler) Exportar(c *fiber.Ctx) error {
	var in dto.ExistenciaSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	data, err := h.uc.Exportar(c.UserContext(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="existencias.xlsx"`)
	return c.Send(data)
}
