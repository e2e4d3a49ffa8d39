package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fedrita-api/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear salón: %w", domain.Invalid("name", "el nombre es obligatorio"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "name: el nombre es obligatorio", verr.Error())
	assert.Equal(t, "sin campo", domain.Invalid("", "sin campo").Error())
}

func TestLookup(t *testing.T) {
	boom := errors.New("conexión rechazada")
	err := domain.Lookup("buscar empresa", boom)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "buscar empresa: conexión rechazada", err.Error())
	assert.NoError(t, domain.Lookup("op", nil))
}

func TestIsAuthError(t *testing.T) {
	for _, err := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrEmailAlreadyExists,
		domain.ErrUnauthorized,
		fmt.Errorf("login: %w", domain.ErrSessionExpired),
	} {
		assert.True(t, domain.IsAuthError(err), "%v es de autenticación", err)
	}
	assert.False(t, domain.IsAuthError(domain.ErrNotFound))
	assert.False(t, domain.IsAuthError(domain.Lookup("op", errors.New("x"))))
}
