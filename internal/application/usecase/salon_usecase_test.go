package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

func TestSalonCreate_EnEmpresaDelAdmin(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSalonUseCase(salonRepo{f.db})

	out, err := uc.Create(context.Background(), f.admin, dto.CreateSalonRequest{
		Name: " Sur  ", Address: "Cra 7 #12-30", OpeningHours: "L-V 9-19",
	})
	require.NoError(t, err)

	assert.Equal(t, "Sur", out.Name)
	assert.Equal(t, f.company.ID, out.CompanyID)
	assert.Equal(t, adminID, out.OwnerID)
	assert.Nil(t, out.ManagerID)
	assert.Len(t, f.db.salons, 3)
}

func TestSalonCreate_Validaciones(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSalonUseCase(salonRepo{f.db})

	_, err := uc.Create(context.Background(), f.admin, dto.CreateSalonRequest{Address: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), f.admin, dto.CreateSalonRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), f.manager, dto.CreateSalonRequest{Name: "x", Address: "y"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un manager no crea salones")
}

func TestSalonList_MasRecientesPrimero(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSalonUseCase(salonRepo{f.db})

	list, err := uc.List(context.Background(), f.admin)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "salon-b", list[0].ID)
}

func TestSalonOptions_PorRol(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSalonUseCase(salonRepo{f.db})

	opts, err := uc.Options(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	opts, err = uc.Options(context.Background(), f.manager)
	require.NoError(t, err)
	assert.Equal(t, []dto.SalonOption{{ID: "salon-a", Name: "Centro"}}, opts)
}

func TestSalonDelete_SoloDeSuEmpresa(t *testing.T) {
	f := newFixture()
	f.db.salons["ajeno"] = entity.Salon{ID: "ajeno", CompanyID: "otra"}
	uc := usecase.NewSalonUseCase(salonRepo{f.db})

	assert.ErrorIs(t, uc.Delete(context.Background(), f.admin, "ajeno"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(context.Background(), f.admin, "salon-b"))
	assert.NotContains(t, f.db.salons, "salon-b")
}
