package repository

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// SalonRepository define el puerto de persistencia para Salon.
type SalonRepository interface {
	Create(ctx context.Context, salon *entity.Salon) error
	GetByID(ctx context.Context, id string) (*entity.Salon, error)
	// FindByManager salones con manager_id = managerID, los más antiguos primero.
	// Devuelve como mucho limit filas.
	FindByManager(ctx context.Context, managerID string, limit int) ([]*entity.Salon, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Salon, error)
	SetManager(ctx context.Context, salonID, managerID string) error
	// Delete borra el salón solo si pertenece a companyID; ErrNotFound si no.
	Delete(ctx context.Context, id, companyID string) error
}
