package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
)

// SalonHandler alta, listado y baja de salones.
type SalonHandler struct {
	uc *usecase.SalonUseCase
}

// NewSalonHandler construye el handler.
func NewSalonHandler(uc *usecase.SalonUseCase) *SalonHandler {
	return &SalonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear salón
// @Tags         salons
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalonRequest  true  "Datos del salón"
// @Success      201   {object}  dto.SalonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /crear-salon [post]
func (h *SalonHandler) Create(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateSalonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Salones de la empresa
// @Tags         salons
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.SalonResponse]
// @Router       /mis-salones [get]
func (h *SalonHandler) List(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Options godoc
// @Summary      Salones seleccionables para crear un empleado
// @Tags         salons
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.SalonOption]
// @Router       /crear-empleado [get]
func (h *SalonHandler) Options(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Options(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Delete godoc
// @Summary      Eliminar salón
// @Tags         salons
// @Produce      json
// @Param        id   path  string  true  "ID del salón"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mis-salones/{id} [delete]
func (h *SalonHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "salón eliminado"})
}
