package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo implementación de IdentityRepository sobre PostgreSQL.
type IdentityRepo struct {
	q Querier
}

// NewIdentityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdentityRepository(q Querier) *IdentityRepo {
	return &IdentityRepo{q: q}
}

// Create persiste una identidad. domain.ErrDuplicate si el email ya existe.
func (r *IdentityRepo) Create(ctx context.Context, cred *entity.Credential) error {
	query := `
		INSERT INTO identities (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, cred.ID, cred.Email, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// FindByID obtiene una identidad por ID.
func (r *IdentityRepo) FindByID(ctx context.Context, id string) (*entity.Credential, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByEmail obtiene una identidad por email (ya normalizado).
func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *IdentityRepo) findOne(ctx context.Context, where string, arg any) (*entity.Credential, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM identities WHERE ` + where
	var c entity.Credential
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &c, nil
}
