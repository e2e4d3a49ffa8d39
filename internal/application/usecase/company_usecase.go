package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// LogoBucket bucket de logos de empresa.
const LogoBucket = "logos"

// CompanyUseCase registro de empresa y enlace de WhatsApp.
type CompanyUseCase struct {
	repo    repository.CompanyRepository
	storage ports.ObjectStorage
	log     zerolog.Logger
	now     func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia y el bucket de logos.
func NewCompanyUseCase(repo repository.CompanyRepository, storage ports.ObjectStorage, log zerolog.Logger) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, storage: storage, log: log, now: time.Now}
}

// Register crea la empresa de identityID. El logo, si viene, se sube antes del insert y
// se borra si el insert falla. Devuelve domain.ErrDuplicate si ya tiene empresa.
func (uc *CompanyUseCase) Register(ctx context.Context, identityID string, in dto.RegisterCompanyRequest, logo *dto.Upload) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre de la empresa es obligatorio")
	}
	contact := textnorm.Email(in.ContactEmail)
	if contact != "" {
		if _, err := mail.ParseAddress(contact); err != nil {
			return nil, domain.Invalid("contact_email", "email de contacto inválido")
		}
	}
	whatsapp := strings.TrimSpace(in.WhatsAppURL)
	if err := validateWhatsAppURL(whatsapp); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByOwner(ctx, identityID)
	if err != nil {
		return nil, domain.Lookup("buscar empresa", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.now()
	var logoPath, logoURL string
	if logo != nil && logo.Body != nil {
		logoPath = fmt.Sprintf("%s/%d-%s", identityID, now.UnixMilli(), logoFilename(logo.Filename))
		logoURL, err = uc.storage.Upload(ctx, LogoBucket, logoPath, logo.Body)
		if err != nil {
			return nil, fmt.Errorf("subir logo: %w", err)
		}
	}

	company := &entity.Company{
		ID:           uuid.New().String(),
		OwnerID:      identityID,
		Name:         name,
		Phone:        textnorm.Phone(in.Phone),
		ContactEmail: contact,
		WhatsAppURL:  whatsapp,
		LogoURL:      logoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		if logoPath != "" {
			if rmErr := uc.storage.Remove(ctx, LogoBucket, logoPath); rmErr != nil {
				uc.log.Warn().Err(rmErr).Str("path", logoPath).Msg("no se pudo borrar el logo huérfano")
			}
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, domain.Lookup("crear empresa", err)
	}
	uc.log.Info().Str("company_id", company.ID).Str("owner_id", identityID).Msg("empresa registrada")
	return ToCompanyResponse(company), nil
}

// WhatsApp enlace actual de la empresa del admin.
func (uc *CompanyUseCase) WhatsApp(ctx context.Context, actor Actor) (*dto.WhatsAppResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, actor.Company.ID)
	if err != nil {
		return nil, domain.Lookup("buscar empresa", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toWhatsAppResponse(company.ID, company.WhatsAppURL), nil
}

// UpdateWhatsApp guarda el enlace de WhatsApp; vacío lo desconecta.
func (uc *CompanyUseCase) UpdateWhatsApp(ctx context.Context, actor Actor, in dto.WhatsAppRequest) (*dto.WhatsAppResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	link := strings.TrimSpace(in.WhatsAppURL)
	if err := validateWhatsAppURL(link); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateWhatsApp(ctx, actor.Company.ID, link); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Lookup("actualizar whatsapp", err)
	}
	return toWhatsAppResponse(actor.Company.ID, link), nil
}

func toWhatsAppResponse(companyID, link string) *dto.WhatsAppResponse {
	return &dto.WhatsAppResponse{CompanyID: companyID, WhatsAppURL: link, Connected: link != ""}
}

// validateWhatsAppURL acepta vacío o una URL http(s) absoluta.
func validateWhatsAppURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Invalid("whatsapp_url", "debe ser una URL http(s), p. ej. https://wa.me/573001234567")
	}
	return nil
}

// logoFilename nombre base sin directorios ni espacios.
func logoFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "." || name == "/" {
		return "logo"
	}
	return name
}
