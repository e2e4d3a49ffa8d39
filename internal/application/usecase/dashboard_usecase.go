package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// UpcomingLimit citas próximas que muestran los paneles.
const UpcomingLimit = 3

// DashboardUseCase métricas de los paneles de admin y manager.
type DashboardUseCase struct {
	stats repository.StatsRepository
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stats repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{stats: stats, now: time.Now}
}

// Admin salones de la empresa, empleados y citas del owner y las próximas citas.
// Las consultas corren en paralelo; la primera que falla cancela las demás.
func (uc *DashboardUseCase) Admin(ctx context.Context, actor Actor) (*dto.AdminDashboardDTO, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	scope := actor.Scope()
	now := uc.now()

	var (
		salons, employees, appts int
		upcoming                 []*entity.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		salons, err = uc.stats.CountSalons(gctx, actor.Company.ID)
		return err
	})
	g.Go(func() (err error) {
		employees, err = uc.stats.CountEmployees(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		appts, err = uc.stats.CountAppointments(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = uc.stats.Upcoming(gctx, scope, now, UpcomingLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Lookup("estadísticas del panel", err)
	}

	return &dto.AdminDashboardDTO{
		Company:      *ToCompanyResponse(actor.Company),
		Salons:       salons,
		Employees:    employees,
		Appointments: appts,
		Upcoming:     toUpcoming(upcoming),
	}, nil
}

// Manager empleados y citas del salón, clientes del owner, importe reservado y próximas citas.
func (uc *DashboardUseCase) Manager(ctx context.Context, actor Actor) (*dto.ManagerDashboardDTO, error) {
	if err := actor.requireManager(); err != nil {
		return nil, err
	}
	scope := repository.SalonScope(actor.Salon.ID)
	now := uc.now()

	var (
		employees, appts, clients int
		booked                    decimal.Decimal
		upcoming                  []*entity.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = uc.stats.CountEmployees(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		appts, err = uc.stats.CountAppointments(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		clients, err = uc.stats.CountClients(gctx, actor.Salon.OwnerID)
		return err
	})
	g.Go(func() (err error) {
		booked, err = uc.stats.BookedAmount(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = uc.stats.Upcoming(gctx, scope, now, UpcomingLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Lookup("estadísticas del salón", err)
	}

	return &dto.ManagerDashboardDTO{
		Salon:        *ToSalonResponse(actor.Salon),
		Employees:    employees,
		Appointments: appts,
		Clients:      clients,
		Booked:       booked,
		Upcoming:     toUpcoming(upcoming),
	}, nil
}
