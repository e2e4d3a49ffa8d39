package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, salon_id, owner_id, name, specialty, availability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.ID, e.SalonID, e.OwnerID, e.Name, e.Specialty, e.Availability, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// List empleados de scope con el nombre de su salón, los más recientes primero.
func (r *EmployeeRepo) List(ctx context.Context, scope repository.Scope) ([]*entity.Employee, error) {
	cond, args, err := scopeFilter("e", scope, 1)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT e.id, e.salon_id, e.owner_id, e.name, e.specialty, e.availability, e.created_at, s.name
		FROM employees e
		JOIN salons s ON s.id = e.salon_id
		WHERE ` + cond + `
		ORDER BY e.created_at DESC, e.id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.SalonID, &e.OwnerID, &e.Name, &e.Specialty, &e.Availability, &e.CreatedAt, &e.SalonName); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete borra el empleado si es visible en scope.
func (r *EmployeeRepo) Delete(ctx context.Context, id string, scope repository.Scope) error {
	cond, args, err := scopeFilter("", scope, 2)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1 AND `+cond, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
