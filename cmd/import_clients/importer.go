package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// row contacto ya normalizado.
type row struct {
	line  int
	name  string
	email string
	phone string
}

type result struct {
	Created int
	Skipped int
}

// parseRows lee nombre, email y teléfono. Acepta ',' o ';' como separador según la
// cabecera. Las filas sin nombre o sin ningún contacto se devuelven como error.
func parseRows(in io.Reader) ([]row, []error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, []error{fmt.Errorf("leer CSV: %w", err)}
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if header, _, _ := strings.Cut(text, "\n"); strings.Count(header, ";") > strings.Count(header, ",") {
		r.Comma = ';'
	}

	var (
		rows []row
		errs []error
	)
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		if line == 1 {
			continue // cabecera
		}
		for len(rec) < 3 {
			rec = append(rec, "")
		}
		rw := row{
			line:  line,
			name:  textnorm.Name(rec[0]),
			email: textnorm.Email(rec[1]),
			phone: textnorm.Phone(rec[2]),
		}
		switch {
		case rw.name == "":
			errs = append(errs, fmt.Errorf("línea %d: nombre vacío", line))
		case rw.email == "" && rw.phone == "":
			errs = append(errs, fmt.Errorf("línea %d: sin email ni teléfono", line))
		default:
			rows = append(rows, rw)
		}
	}
	return rows, errs
}

// importRows crea los clientes que el owner aún no tiene. Un contacto repetido dentro del
// mismo archivo cuenta como existente.
func importRows(ctx context.Context, repo repository.ClientRepository, ownerID string, rows []row) (result, error) {
	var res result
	for _, rw := range rows {
		existing, err := repo.FindByContact(ctx, ownerID, rw.email, rw.phone)
		if err != nil {
			return res, fmt.Errorf("línea %d: %w", rw.line, err)
		}
		if existing != nil {
			res.Skipped++
			continue
		}
		c := &entity.Client{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Name:      rw.name,
			Email:     rw.email,
			Phone:     rw.phone,
			CreatedAt: time.Now(),
		}
		if err := repo.Create(ctx, c); err != nil {
			return res, fmt.Errorf("línea %d: %w", rw.line, err)
		}
		res.Created++
	}
	return res, nil
}
