package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Registro de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyRegister_ConLogo(t *testing.T) {
	db := newMemDB()
	storage := newFakeStorage()
	uc := usecase.NewCompanyUseCase(companyRepo{db}, storage, zerolog.Nop())

	out, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{
		Name:         "  Fedrita Spa ",
		Phone:        "+57 (300) 123-4567",
		ContactEmail: " Admin@Fedrita.co ",
		WhatsAppURL:  "https://wa.me/573001234567",
	}, &dto.Upload{Filename: "mi logo.png", Body: strings.NewReader("png")})
	require.NoError(t, err)

	assert.Equal(t, "Fedrita Spa", out.Name)
	assert.Equal(t, adminID, out.OwnerID)
	assert.Equal(t, "+573001234567", out.Phone)
	assert.Equal(t, "admin@fedrita.co", out.ContactEmail)
	assert.True(t, strings.HasPrefix(out.LogoURL, "/storage/logos/"+adminID+"/"), "logo bajo <identidad>/<ms>-<archivo>")
	assert.True(t, strings.HasSuffix(out.LogoURL, "-mi_logo.png"))
	assert.Len(t, storage.objects, 1)
	assert.Len(t, db.companies, 1)
}

func TestCompanyRegister_NombreObligatorio(t *testing.T) {
	uc := usecase.NewCompanyUseCase(companyRepo{newMemDB()}, newFakeStorage(), zerolog.Nop())

	_, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "   "}, nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyRegister_WhatsAppInvalido(t *testing.T) {
	uc := usecase.NewCompanyUseCase(companyRepo{newMemDB()}, newFakeStorage(), zerolog.Nop())

	_, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "X", WhatsAppURL: "wa.me/57300"}, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyRegister_UnaPorOwner(t *testing.T) {
	db := newMemDB()
	uc := usecase.NewCompanyUseCase(companyRepo{db}, newFakeStorage(), zerolog.Nop())
	_, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "Primera"}, nil)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "Segunda"}, nil)

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, db.companies, 1)
}

// Si el insert falla el logo subido no queda huérfano.
func TestCompanyRegister_FalloInsertBorraLogo(t *testing.T) {
	db := newMemDB()
	db.fail["company.create"] = errBoom
	storage := newFakeStorage()
	uc := usecase.NewCompanyUseCase(companyRepo{db}, storage, zerolog.Nop())

	_, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "Fedrita"},
		&dto.Upload{Filename: "logo.png", Body: strings.NewReader("png")})

	var lerr *domain.LookupError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, storage.objects, "el logo debe borrarse")
}

func TestCompanyRegister_FalloSubidaNoInserta(t *testing.T) {
	db := newMemDB()
	storage := newFakeStorage()
	storage.uploadErr = errors.New("bucket lleno")
	uc := usecase.NewCompanyUseCase(companyRepo{db}, storage, zerolog.Nop())

	_, err := uc.Register(context.Background(), adminID, dto.RegisterCompanyRequest{Name: "Fedrita"},
		&dto.Upload{Filename: "logo.png", Body: strings.NewReader("png")})

	require.Error(t, err)
	assert.Empty(t, db.companies)
}

// ──────────────────────────────────────────────────────────────────────────────
// WhatsApp
// ──────────────────────────────────────────────────────────────────────────────

func TestWhatsApp_ActualizaYLee(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCompanyUseCase(companyRepo{f.db}, newFakeStorage(), zerolog.Nop())

	out, err := uc.UpdateWhatsApp(context.Background(), f.admin, dto.WhatsAppRequest{WhatsAppURL: " https://wa.me/573001234567 "})
	require.NoError(t, err)
	assert.True(t, out.Connected)

	got, err := uc.WhatsApp(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/573001234567", got.WhatsAppURL)

	out, err = uc.UpdateWhatsApp(context.Background(), f.admin, dto.WhatsAppRequest{})
	require.NoError(t, err)
	assert.False(t, out.Connected, "vacío desconecta")
}

func TestWhatsApp_SoloAdmin(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCompanyUseCase(companyRepo{f.db}, newFakeStorage(), zerolog.Nop())

	_, err := uc.UpdateWhatsApp(context.Background(), f.manager, dto.WhatsAppRequest{WhatsAppURL: "https://wa.me/1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.WhatsApp(context.Background(), f.stranger())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
