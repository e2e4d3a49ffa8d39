package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

const newManagerID = "44444444-4444-4444-4444-444444444444"

func newEmployeeUC(f *fixture) *usecase.EmployeeUseCase {
	ids := &fakeIdentities{byEmail: map[string]entity.Identity{
		"nueva@fedrita.co": {ID: newManagerID, Email: "nueva@fedrita.co"},
	}}
	return usecase.NewEmployeeUseCase(f.db, salonRepo{f.db}, employeeRepo{f.db}, ids, zerolog.Nop())
}

func TestEmployeeCreate_AdminEnCualquierSalon(t *testing.T) {
	f := newFixture()
	uc := newEmployeeUC(f)

	out, err := uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{
		SalonID: "salon-b", Name: "ana  gómez", Specialty: "Colorimetría",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Gómez", out.Employee.Name)
	assert.Equal(t, "salon-b", out.Employee.SalonID)
	assert.Equal(t, adminID, out.Employee.OwnerID)
	assert.Nil(t, out.ManagerID)
}

// El manager crea empleados en su salón con el owner del salón.
func TestEmployeeCreate_ManagerEnSuSalon(t *testing.T) {
	f := newFixture()
	uc := newEmployeeUC(f)

	out, err := uc.Create(context.Background(), f.manager, dto.CreateEmployeeRequest{Name: "Luis", Specialty: "Barbería"})
	require.NoError(t, err)
	assert.Equal(t, "salon-a", out.Employee.SalonID)
	assert.Equal(t, adminID, out.Employee.OwnerID)

	_, err = uc.Create(context.Background(), f.manager, dto.CreateEmployeeRequest{SalonID: "salon-b", Name: "Luis", Specialty: "Barbería"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEmployeeCreate_SalonDeOtraEmpresa(t *testing.T) {
	f := newFixture()
	f.db.salons["ajeno"] = entity.Salon{ID: "ajeno", CompanyID: "otra"}
	uc := newEmployeeUC(f)

	_, err := uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{SalonID: "ajeno", Name: "X", Specialty: "Y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{SalonID: "no-existe", Name: "X", Specialty: "Y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeCreate_DesignaManager(t *testing.T) {
	f := newFixture()
	uc := newEmployeeUC(f)

	out, err := uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{
		SalonID: "salon-b", Name: "Nueva", Specialty: "Gerencia", IsManager: true, Email: " Nueva@Fedrita.co",
	})
	require.NoError(t, err)

	require.NotNil(t, out.ManagerID)
	assert.Equal(t, newManagerID, *out.ManagerID)
	assert.True(t, f.db.salons["salon-b"].ManagedBy(newManagerID))
}

func TestEmployeeCreate_ManagerDesconocido(t *testing.T) {
	f := newFixture()
	uc := newEmployeeUC(f)

	_, err := uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{
		SalonID: "salon-b", Name: "X", Specialty: "Y", IsManager: true, Email: "nadie@fedrita.co",
	})

	assert.ErrorIs(t, err, domain.ErrManagerNotFound)
	assert.Empty(t, f.db.employees, "no se crea el empleado")
}

// Si la asignación del manager falla, el empleado tampoco queda creado.
func TestEmployeeCreate_SinMutacionParcial(t *testing.T) {
	f := newFixture()
	f.db.fail["salon.set_manager"] = errBoom
	uc := newEmployeeUC(f)

	_, err := uc.Create(context.Background(), f.admin, dto.CreateEmployeeRequest{
		SalonID: "salon-b", Name: "X", Specialty: "Y", IsManager: true, Email: "nueva@fedrita.co",
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.db.employees)
	assert.Nil(t, f.db.salons["salon-b"].ManagerID)
}

func TestEmployeeCreate_Validaciones(t *testing.T) {
	f := newFixture()
	uc := newEmployeeUC(f)

	cases := []struct {
		name  string
		actor usecase.Actor
		in    dto.CreateEmployeeRequest
		want  error
	}{
		{"sin nombre", f.admin, dto.CreateEmployeeRequest{SalonID: "salon-a", Specialty: "Y"}, domain.ErrInvalidInput},
		{"sin especialidad", f.admin, dto.CreateEmployeeRequest{SalonID: "salon-a", Name: "X"}, domain.ErrInvalidInput},
		{"manager sin email", f.admin, dto.CreateEmployeeRequest{SalonID: "salon-a", Name: "X", Specialty: "Y", IsManager: true}, domain.ErrInvalidInput},
		{"manager designa manager", f.manager, dto.CreateEmployeeRequest{Name: "X", Specialty: "Y", IsManager: true, Email: "a@b.co"}, domain.ErrForbidden},
		{"sin perfil", f.stranger(), dto.CreateEmployeeRequest{SalonID: "salon-a", Name: "X", Specialty: "Y"}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.actor, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEmployeeListDelete_PorAlcance(t *testing.T) {
	f := newFixture()
	f.db.employees["e1"] = entity.Employee{ID: "e1", SalonID: "salon-a", OwnerID: adminID, Name: "Ana"}
	f.db.employees["e2"] = entity.Employee{ID: "e2", SalonID: "salon-b", OwnerID: adminID, Name: "Bea"}
	uc := newEmployeeUC(f)

	all, err := uc.List(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := uc.List(context.Background(), f.manager)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Centro", mine[0].SalonName)

	assert.ErrorIs(t, uc.Delete(context.Background(), f.manager, "e2"), domain.ErrNotFound, "fuera del salón del manager")
	require.NoError(t, uc.Delete(context.Background(), f.manager, "e1"))
	assert.Len(t, f.db.employees, 1)
}

func TestEmployeeOptions(t *testing.T) {
	f := newFixture()
	f.db.employees["e1"] = entity.Employee{ID: "e1", SalonID: "salon-a", OwnerID: adminID, Name: "Ana"}
	uc := newEmployeeUC(f)

	opts, err := uc.Options(context.Background(), f.admin, "salon-a")
	require.NoError(t, err)
	assert.Equal(t, []dto.EmployeeOption{{ID: "e1", Name: "Ana"}}, opts)

	opts, err = uc.Options(context.Background(), f.admin, "salon-b")
	require.NoError(t, err)
	assert.Empty(t, opts)
}
