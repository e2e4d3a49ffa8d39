package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/auth"
	"github.com/jhoicas/fedrita-api/internal/application/authctx"
	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/guard"
)

// AuthHandler maneja login, registro, logout y la instantánea de sesión del cliente.
type AuthHandler struct{}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	ac := GetAuth(c)
	if _, err := ac.Login(c.UserContext(), in.Email, in.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionWithNext(ac.State()))
}

// Register godoc
// @Summary      Crear cuenta
// @Description  Crea la identidad y abre su sesión; el siguiente paso es registrar la empresa.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, confirmación y términos"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateRegister(in); err != nil {
		return writeError(c, err)
	}
	ac := GetAuth(c)
	if _, err := ac.Register(c.UserContext(), in.Email, in.Password); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionWithNext(ac.State()))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// El estado local ya quedó limpio aunque la revocación remota falle.
	if err := GetAuth(c).Logout(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Session godoc
// @Summary      Estado de autenticación del cliente
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(usecase.ToSessionResponse(GetAuth(c).State()))
}

// Refresh godoc
// @Summary      Volver a resolver el perfil
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /session/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	ac := GetAuth(c)
	if err := refreshProfile(c, ac); err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionWithNext(ac.State()))
}

// refreshProfile vuelve a resolver el perfil de la identidad actual del cliente.
func refreshProfile(c *fiber.Ctx, ac *authctx.Context) error {
	state := ac.State()
	if state.Identity == nil {
		return domain.ErrUnauthorized
	}
	return ac.RefreshProfile(c.UserContext(), state.Identity.ID)
}

// sessionWithNext instantánea más la ruta a la que debe navegar el cliente.
func sessionWithNext(state entity.AuthState) dto.SessionResponse {
	out := usecase.ToSessionResponse(state)
	out.Next = nextPath(state)
	return out
}

func nextPath(state entity.AuthState) string {
	d := guard.Dispatch(guard.PathDashboard, state)
	switch d.Outcome {
	case guard.Allow:
		return guard.PathDashboard
	case guard.Redirect:
		return d.Target
	}
	return ""
}

func validateRegister(in dto.RegisterRequest) error {
	if strings.TrimSpace(in.Email) == "" {
		return domain.Invalid("email", "el email es requerido")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return domain.Invalid("password", "la contraseña debe tener al menos 6 caracteres")
	}
	if in.Password != in.ConfirmPassword {
		return domain.Invalid("confirm_password", "las contraseñas no coinciden")
	}
	if !in.AcceptTerms {
		return domain.Invalid("accept_terms", "debes aceptar los términos y condiciones")
	}
	return nil
}
