package repository

// Scope restringe una consulta o un borrado a las filas visibles para quien llama:
// el admin ve las de su owner_id, el manager las de su salón. Al menos uno debe
// estar definido; un Scope vacío nunca coincide con nada.
type Scope struct {
	OwnerID string
	SalonID string
}

// OwnerScope alcance de un admin.
func OwnerScope(ownerID string) Scope { return Scope{OwnerID: ownerID} }

// SalonScope alcance de un manager.
func SalonScope(salonID string) Scope { return Scope{SalonID: salonID} }

// Empty indica que no hay ningún filtro.
func (s Scope) Empty() bool { return s.OwnerID == "" && s.SalonID == "" }
