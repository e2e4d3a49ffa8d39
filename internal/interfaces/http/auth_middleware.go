package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/fedrita-api/internal/application/authctx"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/guard"
)

// Identificación del cliente y locals keys en Fiber.
const (
	ClientCookie  = "fedrita_cid"
	ClientHeader  = "X-Client-ID"
	LocalClientID = "client_id"
	LocalAuth     = "auth_ctx"

	localContexts = "auth_contexts"

	clientCookieMaxAge = 365 * 24 * time.Hour
)

// ClientContexts registro de contextos de autenticación por cliente.
// Lo implementa *authctx.Registry.
type ClientContexts interface {
	Get(clientID string) *authctx.Context
}

// ClientMiddleware identifica al cliente (header X-Client-ID o cookie fedrita_cid). Sin
// identificador válido se emite uno nuevo en una cookie HttpOnly. El contexto de
// autenticación no se crea aquí sino en el primer GetAuth de la petición.
func ClientMiddleware(contexts ClientContexts, secureCookie bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipClient(c.Path()) {
			return c.Next()
		}

		clientID := c.Get(ClientHeader)
		if !validClientID(clientID) {
			clientID = c.Cookies(ClientCookie)
			if !validClientID(clientID) {
				clientID = uuid.NewString()
				c.Cookie(&fiber.Cookie{
					Name:     ClientCookie,
					Value:    clientID,
					Path:     "/",
					Expires:  time.Now().Add(clientCookieMaxAge),
					Secure:   secureCookie,
					HTTPOnly: true,
					SameSite: fiber.CookieSameSiteLaxMode,
				})
			}
		}
		c.Set(ClientHeader, clientID)

		c.Locals(LocalClientID, clientID)
		c.Locals(localContexts, contexts)
		return c.Next()
	}
}

// GetClientID devuelve el id del cliente (después de ClientMiddleware).
func GetClientID(c *fiber.Ctx) string {
	v := c.Locals(LocalClientID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAuth devuelve el contexto de autenticación del cliente (después de ClientMiddleware).
// La primera llamada de la petición lo obtiene del registro, creándolo si hace falta.
func GetAuth(c *fiber.Ctx) *authctx.Context {
	if ac, ok := c.Locals(LocalAuth).(*authctx.Context); ok {
		return ac
	}
	contexts, _ := c.Locals(localContexts).(ClientContexts)
	clientID := GetClientID(c)
	if contexts == nil || clientID == "" {
		return nil
	}
	ac := contexts.Get(clientID)
	c.Locals(LocalAuth, ac)
	return ac
}

// actorOf actor autenticado de la petición; ErrUnauthorized sin identidad.
func actorOf(c *fiber.Ctx) (usecase.Actor, error) {
	ac := GetAuth(c)
	if ac == nil {
		return usecase.Actor{}, domain.ErrUnauthorized
	}
	return usecase.ActorFrom(ac.State())
}

func validClientID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// skipClient rutas de archivos, documentación y salud: no abren contexto de auth.
func skipClient(path string) bool {
	for _, p := range []string{guard.PathStorage, guard.PathDocs, guard.PathHealth} {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
