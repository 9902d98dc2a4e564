package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pizzacost/internal/config"
	"pizzacost/internal/db"
	"pizzacost/internal/importer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import-costs <price-list.csv|price-list.pdf>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("price list path must not be empty")
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate price list: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must be set to import costs")
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	rows, err := importer.ParseFile(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}

	result, err := importer.Import(ctx, database, rows)
	if err != nil {
		return fmt.Errorf("import price list: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Imported %s: %d created, %d updated, %d units and %d cost types added\n",
		filepath.Base(path), result.Created, result.Updated, result.UnitsCreated, result.TypesCreated)
	return nil
}
