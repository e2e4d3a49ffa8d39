package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/guard"
)

// CompanyHandler registro de empresa y enlace de WhatsApp.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// SetupForm godoc
// @Summary      Valores iniciales del registro de empresa
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.CompanySetupDefaults
// @Failure      302  "sin sesión o con empresa ya registrada"
// @Router       /registro-empresa [get]
func (h *CompanyHandler) SetupForm(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CompanySetupDefaults{ContactEmail: actor.Email})
}

// Register godoc
// @Summary      Registrar empresa
// @Description  Formulario multipart; "logo" es opcional. Al terminar el perfil se vuelve a resolver.
// @Tags         companies
// @Accept       mpfd
// @Produce      json
// @Param        name           formData  string  true   "Nombre"
// @Param        phone          formData  string  false  "Teléfono"
// @Param        contact_email  formData  string  false  "Email de contacto"
// @Param        whatsapp_url   formData  string  false  "Enlace de WhatsApp"
// @Param        logo           formData  file    false  "Logo"
// @Success      201  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /registro-empresa [post]
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RegisterCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}

	var logo *dto.Upload
	fh, err := c.FormFile("logo")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el logo"})
		}
		defer f.Close()
		logo = &dto.Upload{Filename: fh.Filename, Body: f}
	case !errors.Is(err, fasthttp.ErrMissingFile) && !errors.Is(err, fasthttp.ErrNoMultipartForm):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}

	out, err := h.uc.Register(c.UserContext(), actor.IdentityID, in, logo)
	if err != nil {
		return writeError(c, err)
	}
	if err := refreshProfile(c, GetAuth(c)); err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		return writeError(c, err)
	}
	c.Location(guard.PathDashboard)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// WhatsApp godoc
// @Summary      Enlace de WhatsApp de la empresa
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.WhatsAppResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /conectar-whatsapp [get]
func (h *CompanyHandler) WhatsApp(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.WhatsApp(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateWhatsApp godoc
// @Summary      Conectar o desconectar WhatsApp
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WhatsAppRequest  true  "whatsapp_url (vacío lo elimina)"
// @Success      200   {object}  dto.WhatsAppResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /conectar-whatsapp [put]
func (h *CompanyHandler) UpdateWhatsApp(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.WhatsAppRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateWhatsApp(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	// La empresa del perfil lleva el enlace: se vuelve a resolver.
	if err := refreshProfile(c, GetAuth(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
