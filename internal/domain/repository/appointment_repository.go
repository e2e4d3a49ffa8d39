package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	GetByID(ctx context.Context, id string, scope Scope) (*entity.Appointment, error)
	// List citas de scope; las más recientes primero.
	List(ctx context.Context, scope Scope) ([]*entity.Appointment, error)
	// Between citas de scope con appointment_time en [from, to), en orden cronológico.
	Between(ctx context.Context, scope Scope, from, to time.Time) ([]*entity.Appointment, error)
	Update(ctx context.Context, appt *entity.Appointment, scope Scope) error
	Delete(ctx context.Context, id string, scope Scope) error
}
