package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantkit/modules/registry"
	"github.com/dmitrymomot/tenantkit/pkg/schema"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Validation happens before any database work, so these paths are testable
// without a pool. Query behavior is covered by integration environments.
func TestStoreCreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := registry.New(nil)

	t.Run("rejects invalid subfolder", func(t *testing.T) {
		t.Parallel()

		_, err := store.Create(ctx, registry.NewTenant{
			Name:       "Acme",
			Subfolder:  "not/valid",
			SchemaName: "acme",
		})
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})

	t.Run("rejects invalid schema name", func(t *testing.T) {
		t.Parallel()

		_, err := store.Create(ctx, registry.NewTenant{
			Name:       "Acme",
			Subfolder:  "acme",
			SchemaName: "pg_acme",
		})
		assert.ErrorIs(t, err, schema.ErrInvalidSchemaName)
	})

	t.Run("rejects public schema", func(t *testing.T) {
		t.Parallel()

		_, err := store.Create(ctx, registry.NewTenant{
			Name:       "Sneaky",
			Subfolder:  "sneaky",
			SchemaName: tenant.PublicSchemaName,
		})
		assert.ErrorIs(t, err, schema.ErrInvalidSchemaName)
	})

	t.Run("rejects name that derives to nothing", func(t *testing.T) {
		t.Parallel()

		_, err := store.Create(ctx, registry.NewTenant{Name: "!!!"})
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})
}
