package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/tenantkit/pkg/schema"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// MigrateShared applies the shared migrations to the public schema. Run once
// at startup before any tenant migrations.
func MigrateShared(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger) error {
	if cfg.SharedMigrationsPath == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}
	if err := checkDir(cfg.SharedMigrationsPath); err != nil {
		return err
	}

	// goose speaks database/sql, so bridge the pgx pool to it. The wrapper
	// shares the underlying connections.
	db := stdlib.OpenDBFromPool(pool)
	defer closeDB(ctx, db, log)

	return up(ctx, db, cfg.SharedMigrationsPath, cfg.MigrationsTable, log)
}

// MigrateTenants applies the tenant migrations to every given schema, each
// with its own goose version table inside that schema. The public schema is
// skipped: it only ever receives shared migrations.
//
// Schemas are migrated sequentially. A failure stops the run and reports
// which schema broke, leaving earlier schemas migrated - reruns are safe
// because goose tracks versions per schema.
func MigrateTenants(ctx context.Context, pool *pgxpool.Pool, schemas []string, cfg Config, log logger) error {
	if cfg.TenantMigrationsPath == "" {
		return errors.Join(ErrFailedToApplyMigrations, ErrMigrationPathNotProvided)
	}
	if err := checkDir(cfg.TenantMigrationsPath); err != nil {
		return err
	}

	for _, name := range schemas {
		if name == tenant.PublicSchemaName {
			continue
		}
		if !schema.ValidName(name) {
			return errors.Join(ErrFailedToApplyMigrations,
				fmt.Errorf("%w: %q", schema.ErrInvalidSchemaName, name))
		}

		if err := migrateSchema(ctx, pool, name, cfg, log); err != nil {
			return errors.Join(ErrFailedToApplyMigrations,
				fmt.Errorf("schema %q: %w", name, err))
		}
		log.InfoContext(ctx, "tenant schema migrated", "schema", name)
	}
	return nil
}

// MigrateAllTenants discovers tenant schemas in the database and migrates
// them all, the equivalent of running migrations fleet-wide after a deploy.
func MigrateAllTenants(ctx context.Context, pool *pgxpool.Pool, cfg Config, log logger) error {
	schemas, err := schema.List(ctx, pool)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return MigrateTenants(ctx, pool, schemas, cfg, log)
}

// migrateSchema opens a dedicated database/sql handle whose connections start
// with search_path pointed at the tenant schema, so both the migration DDL
// and the goose version table land inside it.
func migrateSchema(ctx context.Context, pool *pgxpool.Pool, schemaName string, cfg Config, log logger) error {
	connConfig := pool.Config().ConnConfig.Copy()
	if connConfig.RuntimeParams == nil {
		connConfig.RuntimeParams = map[string]string{}
	}
	connConfig.RuntimeParams["search_path"] = schemaName + ",public"

	db := stdlib.OpenDB(*connConfig)
	defer closeDB(ctx, db, log)

	return up(ctx, db, cfg.TenantMigrationsPath, cfg.MigrationsTable, log)
}

func up(ctx context.Context, db *sql.DB, dir, table string, log logger) error {
	goose.SetLogger(gooseLogger{log: log})
	goose.SetTableName(table)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

func checkDir(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Join(ErrMigrationsDirNotFound, err)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	return nil
}

func closeDB(ctx context.Context, db *sql.DB, log logger) {
	if err := db.Close(); err != nil {
		log.ErrorContext(ctx, "failed to close migration db handle", "error", err)
	}
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	log logger
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.ErrorContext(context.Background(), fmt.Sprintf(format, v...))
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.InfoContext(context.Background(), fmt.Sprintf(format, v...))
}
