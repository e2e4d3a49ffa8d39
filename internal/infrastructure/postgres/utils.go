package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// scopeFilter traduce un Scope a condiciones SQL sobre alias.owner_id / alias.salon_id.
// Los parámetros empiezan en $next. Un Scope vacío produce domain.ErrForbidden.
func scopeFilter(alias string, scope repository.Scope, next int) (string, []any, error) {
	if scope.Empty() {
		return "", nil, domain.ErrForbidden
	}
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	var conds []string
	var args []any
	if scope.OwnerID != "" {
		conds = append(conds, fmt.Sprintf("%sowner_id = $%d", prefix, next))
		args = append(args, scope.OwnerID)
		next++
	}
	if scope.SalonID != "" {
		conds = append(conds, fmt.Sprintf("%ssalon_id = $%d", prefix, next))
		args = append(args, scope.SalonID)
	}
	return strings.Join(conds, " AND "), args, nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref convierte NULL en "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
