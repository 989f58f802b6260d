// seed aplica scripts/schema.sql sobre la base configurada: crea las tablas
// del catálogo y carga los datos de arranque. Es idempotente.
//
// Uso: go run ./cmd/seed [ruta/schema.sql]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

func main() {
	scriptPath := "scripts/schema.sql"
	if len(os.Args) > 1 {
		scriptPath = os.Args[1]
	}

	sql, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer script: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		fmt.Fprintf(os.Stderr, "Ejecutar script: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Aplicado %s sobre %s\n", scriptPath, cfg.DB.DBName)
}
