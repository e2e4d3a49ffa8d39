package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para los paneles (no modifica datos).
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// CountSalons salones de la empresa.
func (r *StatsRepo) CountSalons(ctx context.Context, companyID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM salons WHERE company_id = $1`, companyID)
}

// CountEmployees empleados visibles en scope.
func (r *StatsRepo) CountEmployees(ctx context.Context, scope repository.Scope) (int, error) {
	cond, args, err := scopeFilter("", scope, 1)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE `+cond, args...)
}

// CountAppointments citas visibles en scope.
func (r *StatsRepo) CountAppointments(ctx context.Context, scope repository.Scope) (int, error) {
	cond, args, err := scopeFilter("", scope, 1)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, `SELECT COUNT(*) FROM appointments WHERE `+cond, args...)
}

// CountClients clientes del owner.
func (r *StatsRepo) CountClients(ctx context.Context, ownerID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE owner_id = $1`, ownerID)
}

// Upcoming próximas citas de scope desde now.
func (r *StatsRepo) Upcoming(ctx context.Context, scope repository.Scope, now time.Time, limit int) ([]*entity.Appointment, error) {
	cond, args, err := scopeFilter("a", scope, 3)
	if err != nil {
		return nil, err
	}
	query := appointmentSelect + ` WHERE a.appointment_time >= $1 AND ` + cond + `
		ORDER BY a.appointment_time, a.id
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, append([]any{now, limit}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
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

// BookedAmount suma de precios de las citas de scope.
func (r *StatsRepo) BookedAmount(ctx context.Context, scope repository.Scope) (decimal.Decimal, error) {
	cond, args, err := scopeFilter("", scope, 1)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0) FROM appointments WHERE `+cond, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("booked amount: %w", err)
	}
	return total, nil
}

func (r *StatsRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
