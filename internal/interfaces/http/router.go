package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rodaplus/cotizador-api/internal/application/auth"
	"github.com/rodaplus/cotizador-api/internal/application/usecase"
	"github.com/rodaplus/cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CotizacionUC *usecase.CotizacionUseCase
	BusquedaUC   *usecase.BusquedaUseCase
	ExistenciaUC *usecase.ExistenciaUseCase
	UserUC       *usecase.UserUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cotizaciones: captura, consulta y edición. Las búsquedas de la vista de captura
	// cuelgan del mismo grupo; van antes de /:id para que el router no las capture
	// como parámetro.
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC, deps.BusquedaUC)
	cotizaciones.Get("/buscar-productos", cotizacionHandler.BuscarProductos)
	cotizaciones.Get("/buscar-usuarios", cotizacionHandler.BuscarUsuarios)
	cotizaciones.Post("/", cotizacionHandler.Crear)
	cotizaciones.Get("/", cotizacionHandler.Listar)
	cotizaciones.Get("/:id", cotizacionHandler.Obtener)
	cotizaciones.Put("/:id", cotizacionHandler.Actualizar)
	cotizaciones.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleSistemas), cotizacionHandler.Eliminar)
	cotizaciones.Get("/:id/pdf", cotizacionHandler.PDF)

	// Existencias por zona
	existencias := protected.Group("/existencias")
	existenciaHandler := NewExistenciaHandler(deps.ExistenciaUC)
	existencias.Get("/", existenciaHandler.Consultar)
	existencias.Get("/export", existenciaHandler.Exportar)

	// Usuarios: el cambio de contraseña propia es para cualquier autenticado; el resto
	// lo filtra el caso de uso por rol.
	usuarios := protected.Group("/usuarios")
	usuarioHandler := NewUsuarioHandler(deps.UserUC)
	usuarios.Put("/password", usuarioHandler.CambiarPassword)
	usuarios.Get("/", usuarioHandler.Listar)
	usuarios.Get("/:id", usuarioHandler.Obtener)
	usuarios.Put("/:id", usuarioHandler.Actualizar)
	usuarios.Put("/:id/password", usuarioHandler.ResetPassword)
	usuarios.Delete("/:id", RequireRole(entity.RoleAdmin), usuarioHandler.Eliminar)
}
