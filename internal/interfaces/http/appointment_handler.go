package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
)

// AppointmentHandler reservas, citas y agenda diaria.
type AppointmentHandler struct {
	appointments *usecase.AppointmentUseCase
	salons       *usecase.SalonUseCase
	employees    *usecase.EmployeeUseCase
	clients      *usecase.ClientUseCase
	agenda       *usecase.AgendaUseCase
	now          func() time.Time
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(
	appointments *usecase.AppointmentUseCase,
	salons *usecase.SalonUseCase,
	employees *usecase.EmployeeUseCase,
	clients *usecase.ClientUseCase,
	agenda *usecase.AgendaUseCase,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		salons:       salons,
		employees:    employees,
		clients:      clients,
		agenda:       agenda,
		now:          time.Now,
	}
}

// BookingOptions godoc
// @Summary      Opciones del formulario de reserva
// @Description  Salones seleccionables y, con salon_id (o siendo manager), los empleados del salón.
// @Tags         appointments
// @Produce      json
// @Param        salon_id  query  string  false  "ID del salón"
// @Success      200  {object}  dto.BookingOptions
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /crear-reserva [get]
func (h *AppointmentHandler) BookingOptions(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	salons, err := h.salons.Options(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.BookingOptions{Salons: salons}

	salonID := c.Query("salon_id")
	if salonID != "" || actor.IsManager() {
		employees, err := h.employees.Options(c.UserContext(), actor, salonID)
		if err != nil {
			return writeError(c, err)
		}
		out.Employees = employees
	}
	return c.JSON(out)
}

// LookupClient godoc
// @Summary      Buscar cliente existente
// @Tags         appointments
// @Produce      json
// @Param        email  query  string  false  "Email (preferido)"
// @Param        phone  query  string  false  "Teléfono"
// @Success      200  {object}  dto.ClientLookupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /crear-reserva/cliente [get]
func (h *AppointmentHandler) LookupClient(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.clients.Lookup(c.UserContext(), actor, c.Query("email"), c.Query("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear reserva
// @Description  Inserta la cita y, si el cliente no existe para el owner, también el cliente.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "Datos de la cita"
// @Success      201   {object}  dto.CreateAppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /crear-reserva [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.appointments.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Citas visibles (owner para admin, salón para manager)
// @Tags         appointments
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.AppointmentResponse]
// @Router       /mis-citas [get]
// @Router       /citas-salon [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.appointments.List(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Detalle de una cita
// @Tags         appointments
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mis-citas/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.appointments.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cita
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la cita"
// @Param        body  body  dto.UpdateAppointmentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /mis-citas/{id} [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.appointments.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cita
// @Tags         appointments
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mis-citas/{id} [delete]
// @Router       /citas-salon/{id} [delete]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.appointments.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cita eliminada"})
}

// AgendaPDF godoc
// @Summary      Agenda del día en PDF
// @Tags         appointments
// @Produce      application/pdf
// @Param        date  query  string  false  "Día AAAA-MM-DD (por defecto hoy)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /citas-salon/agenda.pdf [get]
func (h *AppointmentHandler) AgendaPDF(c *fiber.Ctx) error {
	actor, err := actorOf(c)
	if err != nil {
		return writeError(c, err)
	}
	day, err := h.agenda.ParseDay(c.Query("date"), h.now())
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.agenda.DayPDF(c.UserContext(), actor, day)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
