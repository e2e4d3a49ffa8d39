package entity

// Role nivel de acceso derivado de los datos de la identidad.
type Role string

const (
	RoleNone    Role = "none"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Profile vista resuelta {rol, empresa, salón gestionado} de una identidad.
//
// Solo se construye con AdminProfile, ManagerProfile o NoProfile, de modo que no
// existe un admin sin empresa ni un manager sin salón. El valor cero equivale a NoProfile.
type Profile struct {
	role    Role
	company *Company
	salon   *Salon
}

// AdminProfile identidad dueña de company.
func AdminProfile(company Company) Profile {
	return Profile{role: RoleAdmin, company: &company}
}

// ManagerProfile identidad asignada como manager de salon. company es la empresa dueña
// del salón y puede ser nil si no se encontró.
func ManagerProfile(salon Salon, company *Company) Profile {
	p := Profile{role: RoleManager, salon: &salon}
	if company != nil {
		c := *company
		p.company = &c
	}
	return p
}

// NoProfile identidad sin empresa ni salón.
func NoProfile() Profile {
	return Profile{role: RoleNone}
}

// Role rol resuelto.
func (p Profile) Role() Role {
	if p.role == "" {
		return RoleNone
	}
	return p.role
}

// Company empresa resuelta (admin: la propia; manager: la dueña del salón).
func (p Profile) Company() *Company { return p.company }

// ManagedSalon salón gestionado; nil salvo para managers.
func (p Profile) ManagedSalon() *Salon { return p.salon }

// IsAdmin admin con empresa.
func (p Profile) IsAdmin() bool { return p.role == RoleAdmin && p.company != nil }

// IsManager manager con salón.
func (p Profile) IsManager() bool { return p.role == RoleManager && p.salon != nil }

// Equal compara rol e identificadores de empresa y salón.
func (p Profile) Equal(o Profile) bool {
	if p.Role() != o.Role() {
		return false
	}
	return sameCompany(p.company, o.company) && sameSalon(p.salon, o.salon)
}

func sameCompany(a, b *Company) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameSalon(a, b *Salon) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID || a.CompanyID != b.CompanyID || a.Name != b.Name {
		return false
	}
	return (a.ManagerID == nil) == (b.ManagerID == nil) &&
		(a.ManagerID == nil || *a.ManagerID == *b.ManagerID)
}
