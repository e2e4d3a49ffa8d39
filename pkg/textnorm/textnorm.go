// Package textnorm normaliza textos de formularios (nombres, emails, teléfonos)
// antes de persistirlos, para que las búsquedas por igualdad sean estables.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var titleES = cases.Title(language.Spanish)

// Name colapsa espacios, aplica NFC y capitaliza cada palabra: "  maría  PÉREZ" → "María Pérez".
func Name(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return titleES.String(norm.NFC.String(s))
}

// Email recorta y pasa a minúsculas.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone conserva solo dígitos y un '+' inicial: "+57 (300) 123-4567" → "+573001234567".
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
