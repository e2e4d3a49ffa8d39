package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// AppointmentUseCase reservas: alta (con alta de cliente), edición, listado y baja.
type AppointmentUseCase struct {
	tx           repository.TxRunner
	salons       repository.SalonRepository
	employees    repository.EmployeeRepository
	appointments repository.AppointmentRepository
	now          func() time.Time
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(
	tx repository.TxRunner,
	salons repository.SalonRepository,
	employees repository.EmployeeRepository,
	appointments repository.AppointmentRepository,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		tx:           tx,
		salons:       salons,
		employees:    employees,
		appointments: appointments,
		now:          time.Now,
	}
}

// Create agenda una cita. Si trae email o teléfono y el owner no tiene un cliente con
// ese contacto, el cliente se crea en la misma transacción con la cita como primera.
func (uc *AppointmentUseCase) Create(ctx context.Context, actor Actor, in dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	clientName := textnorm.Name(in.ClientName)
	if clientName == "" {
		return nil, domain.Invalid("client_name", "el nombre del cliente es obligatorio")
	}
	service := strings.TrimSpace(in.Service)
	if service == "" {
		return nil, domain.Invalid("service", "el servicio es obligatorio")
	}
	if in.AppointmentTime.IsZero() {
		return nil, domain.Invalid("appointment_time", "la fecha y hora son obligatorias")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price", "el precio no puede ser negativo")
	}
	email := textnorm.Email(in.ClientEmail)
	if err := validateClientEmail(email); err != nil {
		return nil, err
	}
	phone := textnorm.Phone(in.ClientPhone)

	salon, err := accessibleSalon(ctx, uc.salons, actor, in.SalonID)
	if err != nil {
		return nil, err
	}
	employeeID, employeeName, err := uc.employeeOf(ctx, salon.ID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	ownerID := actor.OwnerID()
	appt := &entity.Appointment{
		ID:              uuid.New().String(),
		SalonID:         salon.ID,
		EmployeeID:      employeeID,
		OwnerID:         ownerID,
		ClientName:      clientName,
		ClientEmail:     email,
		ClientPhone:     phone,
		Service:         service,
		Price:           in.Price.Round(2),
		AppointmentTime: in.AppointmentTime.UTC(),
		CreatedAt:       now,
		SalonName:       salon.Name,
		EmployeeName:    employeeName,
	}

	clientCreated := false
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		var existing *entity.Client
		if email != "" || phone != "" {
			var err error
			existing, err = r.Clients.FindByContact(ctx, ownerID, email, phone)
			if err != nil {
				return err
			}
		}
		if err := r.Appointments.Create(ctx, appt); err != nil {
			return err
		}
		if existing != nil || (email == "" && phone == "") {
			return nil
		}
		clientCreated = true
		return r.Clients.Create(ctx, &entity.Client{
			ID:                 uuid.New().String(),
			OwnerID:            ownerID,
			Name:               clientName,
			Email:              email,
			Phone:              phone,
			FirstAppointmentID: &appt.ID,
			CreatedAt:          now,
		})
	})
	if err != nil {
		return nil, domain.Lookup("crear reserva", err)
	}
	return &dto.CreateAppointmentResponse{Appointment: toAppointmentResponse(appt), ClientCreated: clientCreated}, nil
}

// Get cita visible para el actor.
func (uc *AppointmentUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.AppointmentResponse, error) {
	appt, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toAppointmentResponse(appt)
	return &out, nil
}

// Update edita datos del cliente, servicio, precio u hora de una cita del admin.
func (uc *AppointmentUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	appt, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.ClientName != nil {
		appt.ClientName = textnorm.Name(*in.ClientName)
		if appt.ClientName == "" {
			return nil, domain.Invalid("client_name", "el nombre del cliente es obligatorio")
		}
	}
	if in.ClientEmail != nil {
		appt.ClientEmail = textnorm.Email(*in.ClientEmail)
		if err := validateClientEmail(appt.ClientEmail); err != nil {
			return nil, err
		}
	}
	if in.ClientPhone != nil {
		appt.ClientPhone = textnorm.Phone(*in.ClientPhone)
	}
	if in.Service != nil {
		appt.Service = strings.TrimSpace(*in.Service)
		if appt.Service == "" {
			return nil, domain.Invalid("service", "el servicio es obligatorio")
		}
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("price", "el precio no puede ser negativo")
		}
		appt.Price = in.Price.Round(2)
	}
	if in.AppointmentTime != nil {
		if in.AppointmentTime.IsZero() {
			return nil, domain.Invalid("appointment_time", "la fecha y hora son obligatorias")
		}
		appt.AppointmentTime = in.AppointmentTime.UTC()
	}
	if err := uc.appointments.Update(ctx, appt, actor.Scope()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Lookup("actualizar cita", err)
	}
	out := toAppointmentResponse(appt)
	return &out, nil
}

// List citas visibles para el actor, las más recientes primero.
func (uc *AppointmentUseCase) List(ctx context.Context, actor Actor) ([]dto.AppointmentResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	list, err := uc.appointments.List(ctx, actor.Scope())
	if err != nil {
		return nil, domain.Lookup("listar citas", err)
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAppointmentResponse(a))
	}
	return items, nil
}

// Delete borra una cita visible para el actor.
func (uc *AppointmentUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.requireStaff(); err != nil {
		return err
	}
	if err := uc.appointments.Delete(ctx, id, actor.Scope()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.Lookup("borrar cita", err)
	}
	return nil
}

func (uc *AppointmentUseCase) get(ctx context.Context, actor Actor, id string) (*entity.Appointment, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	appt, err := uc.appointments.GetByID(ctx, id, actor.Scope())
	if err != nil {
		return nil, domain.Lookup("buscar cita", err)
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	return appt, nil
}

// employeeOf resuelve el empleado elegido; "" o "no-preference" significa sin preferencia.
func (uc *AppointmentUseCase) employeeOf(ctx context.Context, salonID, employeeID string) (*string, string, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" || employeeID == dto.NoPreference {
		return nil, "", nil
	}
	list, err := uc.employees.List(ctx, repository.SalonScope(salonID))
	if err != nil {
		return nil, "", domain.Lookup("listar empleados", err)
	}
	for _, e := range list {
		if e.ID == employeeID {
			id := e.ID
			return &id, e.Name, nil
		}
	}
	return nil, "", domain.Invalid("employee_id", "el empleado no pertenece al salón")
}

func validateClientEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invalid("client_email", "email del cliente inválido")
	}
	return nil
}
