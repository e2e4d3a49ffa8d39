package repository

import "context"

// Repos conjunto de repositorios atados a una misma transacción.
type Repos struct {
	Identities   IdentityRepository
	Companies    CompanyRepository
	Salons       SalonRepository
	Employees    EmployeeRepository
	Appointments AppointmentRepository
	Clients      ClientRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
