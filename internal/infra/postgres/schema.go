package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
)

//go:embed sql/*.sql
var scripts embed.FS

const (
	dropScript   = "sql/drop.sql"
	schemaScript = "sql/schema.sql"
	insertScript = "sql/insert.sql"
)

// Script returns the contents of one of the embedded SQL scripts.
func Script(name string) (string, error) {
	b, err := scripts.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read script %s: %w", name, err)
	}
	return string(b), nil
}

// Reset drops and recreates the quiz tables in one transaction, then runs the
// seed script.
func Reset(ctx context.Context, t *Transactor, db DBTX) error {
	drop, err := Script(dropScript)
	if err != nil {
		return err
	}
	schema, err := Script(schemaScript)
	if err != nil {
		return err
	}
	seed, err := Script(insertScript)
	if err != nil {
		return err
	}

	err = t.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, drop); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := db.Exec(ctx, seed); err != nil {
		return fmt.Errorf("insert seed data: %w", err)
	}

	return nil
}
