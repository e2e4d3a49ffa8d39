package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/usecase"
)

// DashboardHandler paneles del admin y del manager.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Admin devuelve el panel del dueño: salones, empleados, citas y las 3 próximas citas.
// GET /dashboard
//
// @Summary      Panel del admin
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardDTO
// @Success      202  {object}  dto.LoadingResponse
// @Failure      302  "manager → /dashboard-manager, sin empresa → /registro-empresa"
// @Router       /dashboard [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Admin(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Manager devuelve el panel del salón gestionado, incluido el monto reservado.
// GET /dashboard-manager
//
// @Summary      Panel del manager
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ManagerDashboardDTO
// @Success      202  {object}  dto.LoadingResponse
// @Router       /dashboard-manager [get]
func (h *DashboardHandler) Manager(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Manager(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
