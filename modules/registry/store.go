package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/schema"
	"github.com/dmitrymomot/tenantkit/pkg/slug"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

var (
	// ErrSubfolderTaken is returned when the requested subfolder is already
	// claimed by another tenant.
	ErrSubfolderTaken = errors.New("subfolder already taken")

	// ErrSchemaNameTaken is returned when the requested schema name collides
	// with an existing tenant.
	ErrSchemaNameTaken = errors.New("schema name already taken")
)

// Store is the PostgreSQL-backed tenant registry. Tenant rows and their
// domain (subfolder) rows live in the public schema; tenant data lives in
// per-tenant schemas provisioned on creation.
type Store struct {
	pool     *pgxpool.Pool
	onChange func(subfolder string)
}

// Option configures the Store.
type Option func(*Store)

// WithChangeHook registers a callback invoked with the subfolder of any
// tenant that was created, changed or deleted. Wire it to cache and router
// invalidation so stale routing never outlives a tenant change.
func WithChangeHook(fn func(subfolder string)) Option {
	return func(s *Store) {
		if fn != nil {
			s.onChange = fn
		}
	}
}

// New creates a Store over the shared connection pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, onChange: func(string) {}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const bySubfolderQuery = `
SELECT t.id, t.schema_name, d.folder, t.name, t.type, t.active, t.created_at
FROM domains d
JOIN tenants t ON t.id = d.tenant_id
WHERE d.folder = $1`

// BySubfolder implements tenant.Store.
func (s *Store) BySubfolder(ctx context.Context, subfolder string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.pool.QueryRow(ctx, bySubfolderQuery, subfolder).
		Scan(&t.ID, &t.SchemaName, &t.Subfolder, &t.Name, &t.Type, &t.Active, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: subfolder %q", tenant.ErrTenantNotFound, subfolder)
		}
		return nil, fmt.Errorf("query tenant by subfolder: %w", err)
	}
	return &t, nil
}

const publicQuery = `
SELECT id, schema_name, '', name, type, active, created_at
FROM tenants
WHERE schema_name = $1`

// Public implements tenant.Store.
func (s *Store) Public(ctx context.Context) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.pool.QueryRow(ctx, publicQuery, tenant.PublicSchemaName).
		Scan(&t.ID, &t.SchemaName, &t.Subfolder, &t.Name, &t.Type, &t.Active, &t.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrPublicTenantNotFound
		}
		return nil, fmt.Errorf("query public tenant: %w", err)
	}
	return &t, nil
}

// NewTenant describes a tenant to create. Subfolder and SchemaName are
// derived from Name when left empty.
type NewTenant struct {
	Name       string
	Subfolder  string
	SchemaName string
	Type       string
}

// Create registers a tenant, its primary subfolder and provisions the schema.
// The rows are committed before the schema is created; schema.Create is
// idempotent, so a failed provisioning can be retried with Provision.
func (s *Store) Create(ctx context.Context, nt NewTenant) (*tenant.Tenant, error) {
	if nt.Subfolder == "" {
		nt.Subfolder = slug.Subfolder(nt.Name)
	}
	if nt.SchemaName == "" {
		nt.SchemaName = slug.SchemaName(nt.Name)
	}
	if !tenant.ValidSubfolder(nt.Subfolder) {
		return nil, fmt.Errorf("%w: subfolder %q", tenant.ErrInvalidIdentifier, nt.Subfolder)
	}
	if !schema.ValidName(nt.SchemaName) || nt.SchemaName == tenant.PublicSchemaName {
		return nil, fmt.Errorf("%w: %q", schema.ErrInvalidSchemaName, nt.SchemaName)
	}

	t := &tenant.Tenant{
		ID:         uuid.New(),
		SchemaName: nt.SchemaName,
		Subfolder:  nt.Subfolder,
		Name:       nt.Name,
		Type:       nt.Type,
		Active:     true,
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO tenants (id, schema_name, name, type, active)
			 VALUES ($1, $2, $3, $4, true)
			 RETURNING created_at`,
			t.ID, t.SchemaName, t.Name, t.Type,
		).Scan(&t.CreatedAt)
		if err != nil {
			if pg.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: %q", ErrSchemaNameTaken, t.SchemaName)
			}
			return fmt.Errorf("insert tenant: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO domains (id, tenant_id, folder, is_primary)
			 VALUES ($1, $2, $3, true)`,
			uuid.New(), t.ID, t.Subfolder,
		); err != nil {
			if pg.IsDuplicateKeyError(err) {
				return fmt.Errorf("%w: %q", ErrSubfolderTaken, t.Subfolder)
			}
			return fmt.Errorf("insert domain: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := schema.Create(ctx, s.pool, t.SchemaName); err != nil {
		return nil, err
	}

	s.onChange(t.Subfolder)
	return t, nil
}

// Provision re-runs schema creation for an existing tenant, for recovery
// after a partially failed Create.
func (s *Store) Provision(ctx context.Context, subfolder string) error {
	t, err := s.BySubfolder(ctx, subfolder)
	if err != nil {
		return err
	}
	return schema.Create(ctx, s.pool, t.SchemaName)
}

// SetActive flips the tenant's active flag. Deactivated tenants resolve but
// are rejected by the middleware with 403.
func (s *Store) SetActive(ctx context.Context, subfolder string, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET active = $2
		 WHERE id = (SELECT tenant_id FROM domains WHERE folder = $1)`,
		subfolder, active)
	if err != nil {
		return fmt.Errorf("update tenant active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: subfolder %q", tenant.ErrTenantNotFound, subfolder)
	}

	s.onChange(subfolder)
	return nil
}

// Delete removes the tenant and its domains. With dropSchema the tenant's
// schema and all data inside it are dropped too; irreversible.
func (s *Store) Delete(ctx context.Context, subfolder string, dropSchema bool) error {
	t, err := s.BySubfolder(ctx, subfolder)
	if err != nil {
		return err
	}

	err = pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM domains WHERE tenant_id = $1`, t.ID); err != nil {
			return fmt.Errorf("delete domains: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, t.ID); err != nil {
			return fmt.Errorf("delete tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if dropSchema {
		if err := schema.Drop(ctx, s.pool, t.SchemaName, true); err != nil {
			return err
		}
	}

	s.onChange(subfolder)
	return nil
}

const listQuery = `
SELECT t.id, t.schema_name, COALESCE(d.folder, ''), t.name, t.type, t.active, t.created_at
FROM tenants t
LEFT JOIN domains d ON d.tenant_id = t.id AND d.is_primary
ORDER BY t.created_at`

// List returns all tenants with their primary subfolder, the public tenant
// included.
func (s *Store) List(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.SchemaName, &t.Subfolder, &t.Name, &t.Type, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// SchemaNames returns the schema of every registered non-public tenant,
// the input for pg.MigrateTenants.
func (s *Store) SchemaNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT schema_name FROM tenants WHERE schema_name <> $1 ORDER BY schema_name`,
		tenant.PublicSchemaName)
	if err != nil {
		return nil, fmt.Errorf("list tenant schemas: %w", err)
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
