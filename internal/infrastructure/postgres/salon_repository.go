package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.SalonRepository = (*SalonRepo)(nil)

// SalonRepo implementación de SalonRepository sobre PostgreSQL.
type SalonRepo struct {
	q Querier
}

// NewSalonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalonRepository(q Querier) *SalonRepo {
	return &SalonRepo{q: q}
}

const salonColumns = `id, company_id, owner_id, manager_id, name, address, phone, opening_hours, created_at`

func scanSalon(row pgx.Row) (*entity.Salon, error) {
	var s entity.Salon
	err := row.Scan(&s.ID, &s.CompanyID, &s.OwnerID, &s.ManagerID, &s.Name, &s.Address, &s.Phone, &s.OpeningHours, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un salón.
func (r *SalonRepo) Create(ctx context.Context, s *entity.Salon) error {
	query := `
		INSERT INTO salons (` + salonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.OwnerID, s.ManagerID, s.Name, s.Address, s.Phone, s.OpeningHours, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert salon: %w", err)
	}
	return nil
}

// GetByID obtiene un salón por ID.
func (r *SalonRepo) GetByID(ctx context.Context, id string) (*entity.Salon, error) {
	s, err := scanSalon(r.q.QueryRow(ctx, `SELECT `+salonColumns+` FROM salons WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salon: %w", err)
	}
	return s, nil
}

// FindByManager salones gestionados por managerID, el más antiguo primero.
func (r *SalonRepo) FindByManager(ctx context.Context, managerID string, limit int) ([]*entity.Salon, error) {
	query := `
		SELECT ` + salonColumns + `
		FROM salons WHERE manager_id = $1
		ORDER BY created_at, id
		LIMIT $2`
	return r.list(ctx, query, managerID, limit)
}

// ListByCompany salones de una empresa, los más recientes primero.
func (r *SalonRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Salon, error) {
	query := `
		SELECT ` + salonColumns + `
		FROM salons WHERE company_id = $1
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, companyID)
}

// SetManager asigna managerID como manager del salón.
func (r *SalonRepo) SetManager(ctx context.Context, salonID, managerID string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE salons SET manager_id = $2 WHERE id = $1`, salonID, managerID)
	if err != nil {
		return fmt.Errorf("set salon manager: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el salón si pertenece a companyID.
func (r *SalonRepo) Delete(ctx context.Context, id, companyID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM salons WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete salon: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalonRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Salon, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list salons: %w", err)
	}
	defer rows.Close()

	var list []*entity.Salon
	for rows.Next() {
		s, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salon: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
