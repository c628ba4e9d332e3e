package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rodaplus/cotizador-api/internal/observability/metrics"
)

// MetricsMiddleware registra contador y latencia de cada petición. Usa la ruta
// registrada (con :params) y no la URL cruda, para acotar la cardinalidad.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}
