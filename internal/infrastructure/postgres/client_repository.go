package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, owner_id, name, email, phone, first_appointment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.FirstAppointmentID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// FindByContact busca por email; si email está vacío, por teléfono.
func (r *ClientRepo) FindByContact(ctx context.Context, ownerID, email, phone string) (*entity.Client, error) {
	var where string
	var value string
	switch {
	case email != "":
		where, value = "email = $2", email
	case phone != "":
		where, value = "phone = $2", phone
	default:
		return nil, nil
	}
	query := `
		SELECT id, owner_id, name, email, phone, first_appointment_id, created_at
		FROM clients WHERE owner_id = $1 AND ` + where + `
		ORDER BY created_at
		LIMIT 1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, ownerID, value).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.FirstAppointmentID, &c.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &c, nil
}

// List clientes del owner con su número de citas (por email o teléfono), los más recientes primero.
func (r *ClientRepo) List(ctx context.Context, ownerID string) ([]*entity.Client, error) {
	query := `
		SELECT c.id, c.owner_id, c.name, c.email, c.phone, c.first_appointment_id, c.created_at,
		       (SELECT COUNT(*) FROM appointments a
		         WHERE a.owner_id = c.owner_id
		           AND ((c.email <> '' AND a.client_email = c.email) OR (c.phone <> '' AND a.client_phone = c.phone)))
		FROM clients c
		WHERE c.owner_id = $1
		ORDER BY c.created_at DESC, c.id`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.FirstAppointmentID, &c.CreatedAt, &c.AppointmentsCount); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete borra el cliente si pertenece al owner.
func (r *ClientRepo) Delete(ctx context.Context, id, ownerID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
