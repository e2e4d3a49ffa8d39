package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// AgendaUseCase agenda diaria en PDF del salón de un manager.
type AgendaUseCase struct {
	appointments repository.AppointmentRepository
	generator    ports.AgendaPDFGenerator
	loc          *time.Location
}

// NewAgendaUseCase construye el caso de uso. loc es la zona en la que se corta el día.
func NewAgendaUseCase(appointments repository.AppointmentRepository, generator ports.AgendaPDFGenerator, loc *time.Location) *AgendaUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &AgendaUseCase{appointments: appointments, generator: generator, loc: loc}
}

// DayPDF genera el PDF con las citas del salón gestionado en day (fecha en la zona
// configurada). Devuelve los bytes y el nombre de archivo sugerido.
func (uc *AgendaUseCase) DayPDF(ctx context.Context, actor Actor, day time.Time) ([]byte, string, error) {
	if err := actor.requireManager(); err != nil {
		return nil, "", err
	}
	y, m, d := day.In(uc.loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, uc.loc)
	to := from.AddDate(0, 0, 1)

	appts, err := uc.appointments.Between(ctx, repository.SalonScope(actor.Salon.ID), from, to)
	if err != nil {
		return nil, "", domain.Lookup("citas del día", err)
	}
	for _, a := range appts {
		a.AppointmentTime = a.AppointmentTime.In(uc.loc)
	}
	pdf, err := uc.generator.Generate(actor.Salon, actor.Company, from, appts)
	if err != nil {
		return nil, "", fmt.Errorf("agenda pdf: %w", err)
	}
	return pdf, fmt.Sprintf("agenda-%s.pdf", from.Format("2006-01-02")), nil
}

// ParseDay interpreta "2006-01-02" en la zona configurada; vacío es hoy.
func (uc *AgendaUseCase) ParseDay(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now.In(uc.loc), nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, uc.loc)
	if err != nil {
		return time.Time{}, domain.Invalid("date", "fecha inválida, usa AAAA-MM-DD")
	}
	return day, nil
}
