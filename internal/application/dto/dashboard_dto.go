package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpcomingAppointmentDTO cita próxima en los paneles.
type UpcomingAppointmentDTO struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	AppointmentTime time.Time `json:"appointment_time"`
	SalonName       string    `json:"salon_name,omitempty"`
	EmployeeName    string    `json:"employee_name,omitempty"`
}

// AdminDashboardDTO respuesta de GET /dashboard.
type AdminDashboardDTO struct {
	Company      CompanyResponse          `json:"company"`
	Salons       int                      `json:"salons"`
	Employees    int                      `json:"employees"`
	Appointments int                      `json:"appointments"`
	Upcoming     []UpcomingAppointmentDTO `json:"upcoming"`
}

// ManagerDashboardDTO respuesta de GET /dashboard-manager.
type ManagerDashboardDTO struct {
	Salon        SalonResponse            `json:"salon"`
	Employees    int                      `json:"employees"`
	Appointments int                      `json:"appointments"`
	Clients      int                      `json:"clients"`
	Booked       decimal.Decimal          `json:"booked"` // suma de precios de las citas del salón
	Upcoming     []UpcomingAppointmentDTO `json:"upcoming"`
}

// LandingDTO contenido de la página pública.
type LandingDTO struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Features     []LandingItem `json:"features"`
	Benefits     []LandingItem `json:"benefits"`
	HowItWorks   []LandingItem `json:"how_it_works"`
	Testimonials []Testimonial `json:"testimonials"`
	CTA          LandingItem   `json:"cta"`
}

// LandingItem bloque título/descripción.
type LandingItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial opinión de un cliente.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}
