package repository

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// FindByOwner empresa cuyo owner_id es ownerID; (nil, nil) si no existe.
	FindByOwner(ctx context.Context, ownerID string) (*entity.Company, error)
	UpdateWhatsApp(ctx context.Context, companyID, whatsappURL string) error
}
