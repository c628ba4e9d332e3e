package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rodaplus/cotizador-api/internal/application/dto"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain"
)

// UsuarioHandler administración de usuarios (protegido; listado y edición solo staff).
type UsuarioHandler struct {
	uc *usecase.UserUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UserUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "nombre o correo"
// @Param        rol       query  string  false  "filtrar por rol"
// @Param        page      query  int     false  "página"
// @Param        per_page  query  int     false  "tamaño de página"
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.Listar(c.UserContext(), GetRole(c), c.Query("q"), c.Query("rol"), page)
	if err != nil {
		return usuarioError(c, err)
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener usuario por ID
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"))
	if err != nil {
		return usuarioError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar usuario (incluye validación de cuenta y cambio de rol)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a modificar"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.UserContext(), GetRole(c), c.Params("id"), in)
	if err != nil {
		return usuarioError(c, err)
	}
	return c.JSON(out)
}

// CambiarPassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/usuarios/password [put]
func (h *UsuarioHandler) CambiarPassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CambiarPassword(c.UserContext(), GetUserID(c), in); err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "WRONG_PASSWORD", Message: "la contraseña actual no coincide"})
		}
		return usuarioError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword godoc
// @Summary      Resetear contraseña de un usuario (administrativo)
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.ResetPasswordRequest  true  "contraseña nueva"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/password [put]
func (h *UsuarioHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ResetPassword(c.UserContext(), GetRole(c), c.Params("id"), in); err != nil {
		return usuarioError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Eliminar godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Security     Bearer
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.UserContext(), GetRole(c), c.Params("id")); err != nil {
		return usuarioError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func usuarioError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
