package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain/guard"
)

// RequireRoute devuelve un middleware Fiber que evalúa la tabla de rutas contra el estado
// de auth del cliente. Debe usarse DESPUÉS de ClientMiddleware (usa GetAuth).
//
// Comportamiento:
//   - ruta desconocida → 302 a "/".
//   - Redirect → 302 con Location.
//   - Loading (el perfil aún se resuelve tras esperar initWait) → 202, Retry-After: 1.
func RequireRoute(routes guard.Table, initWait time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := routes.Lookup(c.Path())
		if !ok {
			return c.Redirect(guard.PathHome, fiber.StatusFound)
		}
		if kind == guard.Public {
			return c.Next()
		}

		ac := GetAuth(c)
		if ac == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "INTERNAL",
				Message: "contexto de autenticación no disponible",
			})
		}
		if !ac.Ready() && initWait > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), initWait)
			_ = ac.WaitReady(ctx)
			cancel()
		}

		d := guard.Evaluate(kind, ac.State())
		switch d.Outcome {
		case guard.Redirect:
			return c.Redirect(d.Target, fiber.StatusFound)
		case guard.Loading:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusAccepted).JSON(dto.LoadingResponse{Loading: true})
		}
		return c.Next()
	}
}
