// import_clients carga clientes de un owner desde un CSV exportado de la agenda anterior
// del salón (columnas: nombre, email, teléfono; la primera fila es cabecera).
//
// Uso: go run ./cmd/import_clients [-latin1] <ruta/clientes.csv> <email-del-owner>
// Los contactos que ya existen para el owner (mismo email o, sin email, mismo teléfono)
// se omiten.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/fedrita-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fedrita-api/pkg/config"
	"github.com/jhoicas/fedrita-api/pkg/logger"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1 (exportaciones de Excel)")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Uso: import_clients [-latin1] <clientes.csv> <email-del-owner>\n")
		os.Exit(2)
	}
	csvPath, ownerEmail := flag.Arg(0), textnorm.Email(flag.Arg(1))

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, rowErrs := parseRows(in)
	for _, e := range rowErrs {
		fmt.Fprintf(os.Stderr, "Fila descartada: %v\n", e)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "import_clients"}).Zerolog()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	owner, err := postgres.NewIdentityRepository(pool).FindByEmail(ctx, ownerEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar owner: %v\n", err)
		os.Exit(1)
	}
	if owner == nil {
		fmt.Fprintf(os.Stderr, "No existe una cuenta con email %s\n", ownerEmail)
		os.Exit(1)
	}

	res, err := importRows(ctx, postgres.NewClientRepository(pool), owner.ID, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}
	log.Info().
		Str("owner_id", owner.ID).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Int("rejected", len(rowErrs)).
		Msg("importación de clientes terminada")
	fmt.Printf("Clientes creados: %d, ya existentes: %d, filas descartadas: %d\n", res.Created, res.Skipped, len(rowErrs))
}
