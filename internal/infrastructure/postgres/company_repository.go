package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, owner_id, name, phone, contact_email, whatsapp_url, logo_url, created_at, updated_at`

// Create persiste una nueva empresa. domain.ErrDuplicate si el owner ya tiene una.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.OwnerID, company.Name, company.Phone, company.ContactEmail,
		company.WhatsAppURL, company.LogoURL, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByOwner obtiene la empresa de un owner.
func (r *CompanyRepo) FindByOwner(ctx context.Context, ownerID string) (*entity.Company, error) {
	return r.findOne(ctx, "owner_id = $1", ownerID)
}

// UpdateWhatsApp actualiza el enlace de WhatsApp. domain.ErrNotFound si no existe.
func (r *CompanyRepo) UpdateWhatsApp(ctx context.Context, companyID, whatsappURL string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE companies SET whatsapp_url = $2, updated_at = now() WHERE id = $1`,
		companyID, whatsappURL,
	)
	if err != nil {
		return fmt.Errorf("update company whatsapp: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CompanyRepo) findOne(ctx context.Context, where string, arg any) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ` + where
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.ContactEmail,
		&c.WhatsAppURL, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
