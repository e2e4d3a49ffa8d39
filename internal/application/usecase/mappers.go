package usecase

import (
	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// ToCompanyResponse mapea una empresa; nil si c es nil.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Name:         c.Name,
		Phone:        c.Phone,
		ContactEmail: c.ContactEmail,
		WhatsAppURL:  c.WhatsAppURL,
		LogoURL:      c.LogoURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToSalonResponse mapea un salón; nil si s es nil.
func ToSalonResponse(s *entity.Salon) *dto.SalonResponse {
	if s == nil {
		return nil
	}
	return &dto.SalonResponse{
		ID:           s.ID,
		CompanyID:    s.CompanyID,
		OwnerID:      s.OwnerID,
		ManagerID:    s.ManagerID,
		Name:         s.Name,
		Address:      s.Address,
		Phone:        s.Phone,
		OpeningHours: s.OpeningHours,
		CreatedAt:    s.CreatedAt,
	}
}

// ToSessionResponse mapea la instantánea de auth de un cliente.
func ToSessionResponse(state entity.AuthState) dto.SessionResponse {
	out := dto.SessionResponse{
		Authenticated: state.Identity != nil,
		Loading:       state.Loading,
		Role:          string(state.Role()),
		Company:       ToCompanyResponse(state.Company()),
		ManagedSalon:  ToSalonResponse(state.ManagedSalon()),
		CompanyHint:   ToCompanyResponse(state.CompanyHint),
	}
	if state.Identity != nil {
		out.Identity = &dto.IdentityResponse{
			ID:                state.Identity.ID,
			Email:             state.Identity.Email,
			NeedsCompanySetup: state.Identity.NeedsCompanySetup,
			CreatedAt:         state.Identity.CreatedAt,
		}
		out.NeedsSetup = !state.Loading && state.NeedsSetup()
	}
	return out
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:           e.ID,
		SalonID:      e.SalonID,
		SalonName:    e.SalonName,
		OwnerID:      e.OwnerID,
		Name:         e.Name,
		Specialty:    e.Specialty,
		Availability: e.Availability,
		CreatedAt:    e.CreatedAt,
	}
}

func toAppointmentResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:              a.ID,
		SalonID:         a.SalonID,
		SalonName:       a.SalonName,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		Service:         a.Service,
		Price:           a.Price,
		AppointmentTime: a.AppointmentTime,
		CreatedAt:       a.CreatedAt,
	}
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		AppointmentsCount: c.AppointmentsCount,
		CreatedAt:         c.CreatedAt,
	}
}

func toUpcoming(list []*entity.Appointment) []dto.UpcomingAppointmentDTO {
	out := make([]dto.UpcomingAppointmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.UpcomingAppointmentDTO{
			ID:              a.ID,
			ClientName:      a.ClientName,
			AppointmentTime: a.AppointmentTime,
			SalonName:       a.SalonName,
			EmployeeName:    a.EmployeeName,
		})
	}
	return out
}
