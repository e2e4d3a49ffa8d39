package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrManagerNotFound    = errors.New("no existe un usuario con ese email")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrSessionExpired     = errors.New("la sesión expiró")
)

// ValidationError campo obligatorio ausente o con formato inválido.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// LookupError fallo de red o de base de datos durante una consulta.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Lookup envuelve err en un LookupError; nil si err es nil.
func Lookup(op string, err error) error {
	if err == nil {
		return nil
	}
	return &LookupError{Op: op, Err: err}
}

// IsAuthError indica si err pertenece a la familia de errores de autenticación.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrSessionExpired)
}
