package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

func TestSalonManagedBy(t *testing.T) {
	manager := "id-luis"
	salons := map[string]entity.Salon{
		"con-manager": {ID: "s-1", ManagerID: &manager},
		"sin-manager": {ID: "s-2"},
	}

	// Se consulta directamente sobre valores del mapa.
	assert.True(t, salons["con-manager"].ManagedBy("id-luis"))
	assert.False(t, salons["con-manager"].ManagedBy("id-ana"))
	assert.False(t, salons["sin-manager"].ManagedBy("id-luis"), "sin manager nadie lo gestiona")
}
