package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Switcher runs database work inside a tenant's schema by pointing
// search_path at it. Connections come from a shared pool, so the switch is
// scoped to a transaction (SET LOCAL) or explicitly reset on release; a
// connection returned to the pool always has the public search_path.
type Switcher struct {
	pool *pgxpool.Pool
}

// NewSwitcher creates a Switcher over the shared connection pool.
func NewSwitcher(pool *pgxpool.Pool) *Switcher {
	return &Switcher{pool: pool}
}

// Pool exposes the underlying pool for schema-agnostic queries.
func (s *Switcher) Pool() *pgxpool.Pool {
	return s.pool
}

// WithSchema runs fn in a transaction whose search_path is set to the given
// schema (with public as fallback for shared tables). The switch is SET
// LOCAL, so it cannot leak past the transaction regardless of how fn exits.
func (s *Switcher) WithSchema(ctx context.Context, schemaName string, fn func(tx pgx.Tx) error) error {
	if !ValidName(schemaName) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tenant transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, "SET LOCAL search_path TO "+searchPath(schemaName)); err != nil {
		return fmt.Errorf("set search_path to %q: %w", schemaName, err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// WithTenant runs fn in the schema of the tenant carried by ctx. Requests
// without a resolved tenant run against the public schema, mirroring the
// middleware's dispatch rule.
func (s *Switcher) WithTenant(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return s.WithSchema(ctx, tenant.SchemaFromContext(ctx), fn)
}

// Acquire checks out a dedicated connection with search_path set to the
// schema, for work that cannot run in a single transaction (COPY, LISTEN).
// The returned release func resets search_path to public before handing the
// connection back to the pool.
func (s *Switcher) Acquire(ctx context.Context, schemaName string) (*pgxpool.Conn, func(), error) {
	if !ValidName(schemaName) {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidSchemaName, schemaName)
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire tenant connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SET search_path TO "+searchPath(schemaName)); err != nil {
		conn.Release()
		return nil, nil, fmt.Errorf("set search_path to %q: %w", schemaName, err)
	}

	release := func() {
		// Reset with a background context: the request context may already
		// be canceled, and a poisoned search_path must never reach the pool.
		if _, err := conn.Exec(context.Background(), "SET search_path TO "+searchPath(tenant.PublicSchemaName)); err != nil {
			conn.Conn().Close(context.Background())
		}
		conn.Release()
	}
	return conn, release, nil
}

func searchPath(schemaName string) string {
	quoted := pgx.Identifier{schemaName}.Sanitize()
	if schemaName == tenant.PublicSchemaName {
		return quoted
	}
	return quoted + ", " + pgx.Identifier{tenant.PublicSchemaName}.Sanitize()
}
