package repository

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	// List empleados visibles en scope con el nombre de su salón.
	List(ctx context.Context, scope Scope) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string, scope Scope) error
}
