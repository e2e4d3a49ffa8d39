package guard

import (
	"strings"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// Rutas del panel.
const (
	PathHome              = "/"
	PathLogin             = "/login"
	PathRegister          = "/register"
	PathLogout            = "/logout"
	PathSession           = "/session"
	PathCompanySetup      = "/registro-empresa"
	PathDashboard         = "/dashboard"
	PathManagerDashboard  = "/dashboard-manager"
	PathCreateSalon       = "/crear-salon"
	PathMySalons          = "/mis-salones"
	PathCreateEmployee    = "/crear-empleado"
	PathMyEmployees       = "/mis-empleados"
	PathSalonEmployees    = "/empleados-salon"
	PathCreateBooking     = "/crear-reserva"
	PathMyAppointments    = "/mis-citas"
	PathSalonAppointments = "/citas-salon"
	PathMyClients         = "/mis-clientes"
	PathSalonClients      = "/clientes-salon"
	PathConnectWhatsApp   = "/conectar-whatsapp"
	PathStorage           = "/storage"
	PathDocs              = "/docs"
	PathHealth            = "/health"
)

// Table asocia cada ruta con su guard. Las subrutas (/mis-citas/:id) heredan el
// guard de su prefijo más largo.
type Table map[string]Kind

// Routes tabla declarativa de navegación.
var Routes = Table{
	PathHome:              Public,
	PathLogin:             Public,
	PathRegister:          Public,
	PathLogout:            Public,
	PathSession:           Public,
	PathStorage:           Public,
	PathDocs:              Public,
	PathHealth:            Public,
	PathCompanySetup:      CompanySetup,
	PathDashboard:         Dashboard,
	PathManagerDashboard:  Manager,
	PathCreateSalon:       Dashboard,
	PathMySalons:          Dashboard,
	PathCreateEmployee:    AdminOrManager,
	PathMyEmployees:       Dashboard,
	PathSalonEmployees:    Manager,
	PathCreateBooking:     AdminOrManager,
	PathMyAppointments:    Dashboard,
	PathSalonAppointments: Manager,
	PathMyClients:         Dashboard,
	PathSalonClients:      Manager,
	PathConnectWhatsApp:   Dashboard,
}

// Lookup devuelve el guard de path: coincidencia exacta o el prefijo más largo que
// termine en un límite de segmento. "/" solo coincide exactamente.
func (t Table) Lookup(path string) (Kind, bool) {
	path = clean(path)
	if k, ok := t[path]; ok {
		return k, true
	}
	for p := path; p != ""; {
		i := strings.LastIndexByte(p, '/')
		if i <= 0 {
			break
		}
		p = p[:i]
		if k, ok := t[p]; ok {
			return k, true
		}
	}
	return Public, false
}

// Dispatch evalúa la ruta path contra el estado s. Rutas desconocidas redirigen a "/".
func (t Table) Dispatch(path string, s entity.AuthState) Decision {
	kind, ok := t.Lookup(path)
	if !ok {
		return redirect(PathHome)
	}
	return Evaluate(kind, s)
}

// Dispatch evalúa path contra la tabla Routes.
func Dispatch(path string, s entity.AuthState) Decision {
	return Routes.Dispatch(path, s)
}

func clean(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
