package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
)

// EmployeeHandler alta, listado y baja de empleados.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empleado
// @Description  Con is_manager y email, designa a esa identidad como manager del salón en la misma transacción.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.CreateEmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "MANAGER_NOT_FOUND"
// @Router       /crear-empleado [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateEmployeeRequest
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
// @Summary      Empleados visibles (owner para admin, salón para manager)
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.EmployeeResponse]
// @Router       /mis-empleados [get]
// @Router       /empleados-salon [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
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
// @Summary      Eliminar empleado
// @Tags         employees
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mis-empleados/{id} [delete]
// @Router       /empleados-salon/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "empleado eliminado"})
}
