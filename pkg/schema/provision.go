package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Create provisions a schema for a new tenant. Idempotent: creating an
// existing schema is not an error, so a failed tenant signup can be retried.
func Create(ctx context.Context, pool *pgxpool.Pool, schemaName string) error {
	if !ValidName(schemaName) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}
	_, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schemaName}.Sanitize())
	if err != nil {
		return fmt.Errorf("create schema %q: %w", schemaName, err)
	}
	return nil
}

// Drop removes a tenant schema. With cascade, all objects inside it are
// dropped too; without, a non-empty schema fails, which is the safer default
// for anything resembling production data.
func Drop(ctx context.Context, pool *pgxpool.Pool, schemaName string, cascade bool) error {
	if !ValidName(schemaName) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}
	stmt := "DROP SCHEMA IF EXISTS " + pgx.Identifier{schemaName}.Sanitize()
	if cascade {
		stmt += " CASCADE"
	}
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("drop schema %q: %w", schemaName, err)
	}
	return nil
}

// Exists reports whether the schema is present in the database.
func Exists(ctx context.Context, pool *pgxpool.Pool, schemaName string) (bool, error) {
	if !ValidName(schemaName) {
		return false, fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}
	var exists bool
	err := pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.schemata WHERE schema_name = $1)",
		schemaName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check schema %q: %w", schemaName, err)
	}
	return exists, nil
}

// List returns all non-system schemas, public included. Used by per-tenant
// migrations to enumerate targets.
func List(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx,
		`SELECT schema_name FROM information_schema.schemata
		 WHERE schema_name NOT LIKE 'pg\_%' AND schema_name <> 'information_schema'
		 ORDER BY schema_name`)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
