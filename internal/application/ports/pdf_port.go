package ports

import (
	"time"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// AgendaPDFGenerator genera el PDF de la agenda diaria de un salón.
type AgendaPDFGenerator interface {
	Generate(salon *entity.Salon, company *entity.Company, day time.Time, appts []*entity.Appointment) ([]byte, error)
}
