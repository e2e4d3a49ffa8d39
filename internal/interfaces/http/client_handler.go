package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
)

// ClientHandler clientes del owner.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// List godoc
// @Summary      Clientes con su número de citas
// @Tags         clients
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ClientResponse]
// @Router       /mis-clientes [get]
// @Router       /clientes-salon [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
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

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         clients
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mis-clientes/{id} [delete]
// @Router       /clientes-salon/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}
