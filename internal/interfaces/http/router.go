package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain/guard"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Contexts      ClientContexts
	CompanyUC     *usecase.CompanyUseCase
	SalonUC       *usecase.SalonUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	AppointmentUC *usecase.AppointmentUseCase
	ClientUC      *usecase.ClientUseCase
	DashboardUC   *usecase.DashboardUseCase
	AgendaUC      *usecase.AgendaUseCase
	Files         nethttp.FileSystem // raíz de los buckets servida en /storage
	Checks        map[string]Pinger
	InitWait      time.Duration
	CookieSecure  bool
	Log           zerolog.Logger
}

// Router registra middlewares y rutas. La tabla guard.Routes decide el acceso antes de
// cualquier handler.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New())
	app.Use(AccessLog(deps.Log))
	app.Use(ClientMiddleware(deps.Contexts, deps.CookieSecure))
	app.Use(RequireRoute(guard.Routes, deps.InitWait))

	app.Get(guard.PathHealth, Health(deps.Checks))
	if deps.Files != nil {
		app.Use(guard.PathStorage, filesystem.New(filesystem.Config{
			Root:   deps.Files,
			MaxAge: 3600,
		}))
	}

	// Público
	app.Get(guard.PathHome, Landing)
	authHandler := NewAuthHandler()
	app.Post(guard.PathLogin, authHandler.Login)
	app.Post(guard.PathRegister, authHandler.Register)
	app.Post(guard.PathLogout, authHandler.Logout)
	app.Get(guard.PathSession, authHandler.Session)
	app.Post(guard.PathSession+"/refresh", authHandler.Refresh)

	// Empresa
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	app.Get(guard.PathCompanySetup, companyHandler.SetupForm)
	app.Post(guard.PathCompanySetup, companyHandler.Register)
	app.Get(guard.PathConnectWhatsApp, companyHandler.WhatsApp)
	app.Put(guard.PathConnectWhatsApp, companyHandler.UpdateWhatsApp)

	// Paneles
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get(guard.PathDashboard, dashboardHandler.Admin)
	app.Get(guard.PathManagerDashboard, dashboardHandler.Manager)

	// Salones
	salonHandler := NewSalonHandler(deps.SalonUC)
	app.Post(guard.PathCreateSalon, salonHandler.Create)
	app.Get(guard.PathMySalons, salonHandler.List)
	app.Delete(guard.PathMySalons+"/:id", salonHandler.Delete)

	// Empleados
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	app.Get(guard.PathCreateEmployee, salonHandler.Options)
	app.Post(guard.PathCreateEmployee, employeeHandler.Create)
	app.Get(guard.PathMyEmployees, employeeHandler.List)
	app.Delete(guard.PathMyEmployees+"/:id", employeeHandler.Delete)
	app.Get(guard.PathSalonEmployees, employeeHandler.List)
	app.Delete(guard.PathSalonEmployees+"/:id", employeeHandler.Delete)

	// Reservas y citas
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC, deps.SalonUC, deps.EmployeeUC, deps.ClientUC, deps.AgendaUC)
	app.Get(guard.PathCreateBooking, appointmentHandler.BookingOptions)
	app.Get(guard.PathCreateBooking+"/cliente", appointmentHandler.LookupClient)
	app.Post(guard.PathCreateBooking, appointmentHandler.Create)
	app.Get(guard.PathMyAppointments, appointmentHandler.List)
	app.Get(guard.PathMyAppointments+"/:id", appointmentHandler.GetByID)
	app.Put(guard.PathMyAppointments+"/:id", appointmentHandler.Update)
	app.Delete(guard.PathMyAppointments+"/:id", appointmentHandler.Delete)
	app.Get(guard.PathSalonAppointments, appointmentHandler.List)
	app.Get(guard.PathSalonAppointments+"/agenda.pdf", appointmentHandler.AgendaPDF)
	app.Delete(guard.PathSalonAppointments+"/:id", appointmentHandler.Delete)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientUC)
	app.Get(guard.PathMyClients, clientHandler.List)
	app.Delete(guard.PathMyClients+"/:id", clientHandler.Delete)
	app.Get(guard.PathSalonClients, clientHandler.List)
	app.Delete(guard.PathSalonClients+"/:id", clientHandler.Delete)
}
