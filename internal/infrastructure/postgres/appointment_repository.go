package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
// price es NUMERIC(12,2) y se lee como decimal.Decimal (codec registrado en el pool).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// appointmentSelect columnas de la cita más los nombres de salón y empleado.
const appointmentSelect = `
		SELECT a.id, a.salon_id, a.employee_id, a.owner_id, a.client_name, a.client_email, a.client_phone,
		       a.service, a.price, a.appointment_time, a.created_at, s.name, COALESCE(e.name, '')
		FROM appointments a
		JOIN salons s ON s.id = a.salon_id
		LEFT JOIN employees e ON e.id = a.employee_id`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(&a.ID, &a.SalonID, &a.EmployeeID, &a.OwnerID, &a.ClientName, &a.ClientEmail, &a.ClientPhone,
		&a.Service, &a.Price, &a.AppointmentTime, &a.CreatedAt, &a.SalonName, &a.EmployeeName)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una cita.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, salon_id, employee_id, owner_id, client_name, client_email, client_phone,
		                          service, price, appointment_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.SalonID, a.EmployeeID, a.OwnerID, a.ClientName, a.ClientEmail, a.ClientPhone,
		a.Service, a.Price, a.AppointmentTime, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita visible en scope.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string, scope repository.Scope) (*entity.Appointment, error) {
	cond, args, err := scopeFilter("a", scope, 2)
	if err != nil {
		return nil, err
	}
	a, err := scanAppointment(r.q.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1 AND `+cond, append([]any{id}, args...)...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// List citas de scope, las más recientes primero.
func (r *AppointmentRepo) List(ctx context.Context, scope repository.Scope) ([]*entity.Appointment, error) {
	cond, args, err := scopeFilter("a", scope, 1)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, appointmentSelect+` WHERE `+cond+` ORDER BY a.appointment_time DESC, a.id`, args...)
}

// Between citas de scope en [from, to) en orden cronológico.
func (r *AppointmentRepo) Between(ctx context.Context, scope repository.Scope, from, to time.Time) ([]*entity.Appointment, error) {
	cond, args, err := scopeFilter("a", scope, 3)
	if err != nil {
		return nil, err
	}
	query := appointmentSelect + ` WHERE a.appointment_time >= $1 AND a.appointment_time < $2 AND ` + cond +
		` ORDER BY a.appointment_time, a.id`
	return r.list(ctx, query, append([]any{from, to}, args...)...)
}

// Update actualiza los datos editables de una cita visible en scope.
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment, scope repository.Scope) error {
	cond, args, err := scopeFilter("", scope, 8)
	if err != nil {
		return err
	}
	query := `
		UPDATE appointments
		SET client_name = $2, client_email = $3, client_phone = $4, service = $5, price = $6, appointment_time = $7
		WHERE id = $1 AND ` + cond
	params := append([]any{a.ID, a.ClientName, a.ClientEmail, a.ClientPhone, a.Service, a.Price, a.AppointmentTime}, args...)
	cmd, err := r.q.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra una cita visible en scope.
func (r *AppointmentRepo) Delete(ctx context.Context, id string, scope repository.Scope) error {
	cond, args, err := scopeFilter("", scope, 2)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1 AND `+cond, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
