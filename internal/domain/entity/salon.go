package entity

import "time"

// Salon sede física de una Company, con un manager opcional.
type Salon struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	OwnerID      string    `json:"owner_id"`
	ManagerID    *string   `json:"manager_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// ManagedBy informa si identityID es el manager del salón.
func (s Salon) ManagedBy(identityID string) bool {
	return s.ManagerID != nil && *s.ManagerID == identityID
}
