package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

func TestAgendaDayPDF_CortaElDiaEnLaZona(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	f := newFixture()
	// 2026-03-12 23:30 en Bogotá = 2026-03-13 04:30 UTC: pertenece al día 12.
	f.db.appointments["tarde"] = entity.Appointment{ID: "tarde", SalonID: "salon-a", OwnerID: adminID,
		AppointmentTime: time.Date(2026, 3, 13, 4, 30, 0, 0, time.UTC)}
	f.db.appointments["manana"] = entity.Appointment{ID: "manana", SalonID: "salon-a", OwnerID: adminID,
		AppointmentTime: time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)}
	f.db.appointments["otro-dia"] = entity.Appointment{ID: "otro-dia", SalonID: "salon-a", OwnerID: adminID,
		AppointmentTime: time.Date(2026, 3, 13, 14, 0, 0, 0, time.UTC)}
	f.db.appointments["otro-salon"] = entity.Appointment{ID: "otro-salon", SalonID: "salon-b", OwnerID: adminID,
		AppointmentTime: time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)}
	gen := &fakePDF{}
	uc := usecase.NewAgendaUseCase(appointmentRepo{f.db}, gen, bogota)

	day, err := uc.ParseDay("2026-03-12", time.Now())
	require.NoError(t, err)
	pdf, name, err := uc.DayPDF(context.Background(), f.manager, day)
	require.NoError(t, err)

	assert.Equal(t, "agenda-2026-03-12.pdf", name)
	assert.NotEmpty(t, pdf)
	require.Len(t, gen.appts, 2)
	assert.Equal(t, "manana", gen.appts[0].ID)
	assert.Equal(t, "tarde", gen.appts[1].ID)
	assert.Equal(t, 23, gen.appts[1].AppointmentTime.Hour(), "hora local del salón")
}

func TestAgenda_SoloManager(t *testing.T) {
	f := newFixture()
	uc := usecase.NewAgendaUseCase(appointmentRepo{f.db}, &fakePDF{}, time.UTC)

	_, _, err := uc.DayPDF(context.Background(), f.admin, time.Now())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAgendaParseDay(t *testing.T) {
	uc := usecase.NewAgendaUseCase(nil, nil, time.UTC)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := uc.ParseDay("", now)
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	_, err = uc.ParseDay("12/03/2026", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
