package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		defer c.Close()

		want := &tenant.Tenant{ID: uuid.New(), Subfolder: "acme"}
		c.Set(ctx, "folder:acme", want, time.Minute)

		got, ok := c.Get(ctx, "folder:acme")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		defer c.Close()

		got, ok := c.Get(ctx, "folder:missing")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("expired entries are not returned", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		defer c.Close()

		c.Set(ctx, "folder:acme", &tenant.Tenant{Subfolder: "acme"}, time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "folder:acme")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		defer c.Close()

		c.Set(ctx, "folder:acme", &tenant.Tenant{Subfolder: "acme"}, time.Minute)
		c.Delete(ctx, "folder:acme")

		_, ok := c.Get(ctx, "folder:acme")
		assert.False(t, ok)
	})

	t.Run("size bound evicts oldest", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCacheWithSize(2)
		defer c.Close()

		c.Set(ctx, "a", &tenant.Tenant{Subfolder: "a"}, time.Minute)
		c.Set(ctx, "b", &tenant.Tenant{Subfolder: "b"}, time.Minute)
		c.Set(ctx, "c", &tenant.Tenant{Subfolder: "c"}, time.Minute)

		_, okA := c.Get(ctx, "a")
		_, okB := c.Get(ctx, "b")
		_, okC := c.Get(ctx, "c")
		assert.False(t, okA)
		assert.True(t, okB)
		assert.True(t, okC)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
	})
}

func TestNoopCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := tenant.NewNoopCache()

	c.Set(ctx, "folder:acme", &tenant.Tenant{Subfolder: "acme"}, time.Minute)
	_, ok := c.Get(ctx, "folder:acme")
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}
