package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// StatsRepository consultas de solo lectura para los paneles.
type StatsRepository interface {
	CountSalons(ctx context.Context, companyID string) (int, error)
	CountEmployees(ctx context.Context, scope Scope) (int, error)
	CountAppointments(ctx context.Context, scope Scope) (int, error)
	CountClients(ctx context.Context, ownerID string) (int, error)
	// Upcoming próximas citas de scope desde now, como mucho limit.
	Upcoming(ctx context.Context, scope Scope, now time.Time, limit int) ([]*entity.Appointment, error)
	// BookedAmount suma de precios de las citas de scope.
	BookedAmount(ctx context.Context, scope Scope) (decimal.Decimal, error)
}
