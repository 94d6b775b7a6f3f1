package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/config"
)

type tenancyConfig struct {
	SubfolderPrefix string        `env:"TEST_TENANT_PREFIX,required"`
	CacheTTL        time.Duration `env:"TEST_TENANT_CACHE_TTL" envDefault:"5m"`
	RequireActive   bool          `env:"TEST_TENANT_REQUIRE_ACTIVE" envDefault:"true"`
}

func TestLoad(t *testing.T) {
	t.Run("loads values and defaults", func(t *testing.T) {
		t.Setenv("TEST_TENANT_PREFIX", "t")

		var cfg tenancyConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "t", cfg.SubfolderPrefix)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.True(t, cfg.RequireActive)
	})

	t.Run("overrides defaults from environment", func(t *testing.T) {
		t.Setenv("TEST_TENANT_PREFIX", "tenants")
		t.Setenv("TEST_TENANT_CACHE_TTL", "30s")
		t.Setenv("TEST_TENANT_REQUIRE_ACTIVE", "false")

		var cfg tenancyConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "tenants", cfg.SubfolderPrefix)
		assert.Equal(t, 30*time.Second, cfg.CacheTTL)
		assert.False(t, cfg.RequireActive)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg tenancyConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer fails", func(t *testing.T) {
		err := config.Load[tenancyConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("must load panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg tenancyConfig
			config.MustLoad(&cfg)
		})
	})
}
