package pg

import "time"

// Config controls the shared connection pool and migrations. Loaded from the
// environment via pkg/config.
type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL,required"`                   // Postgres connection URL.
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`      // Upper bound on pool size.
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`       // Connections kept warm.
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`  // Pool health check interval.
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"` // Idle connection lifetime.
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`  // Absolute connection lifetime.

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`  // Connection attempts before giving up.
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // Base delay between attempts.

	// Shared migrations apply to the public schema; tenant migrations are
	// applied once per tenant schema.
	SharedMigrationsPath string `env:"PG_SHARED_MIGRATIONS_PATH" envDefault:"migrations/shared"`
	TenantMigrationsPath string `env:"PG_TENANT_MIGRATIONS_PATH" envDefault:"migrations/tenant"`
	MigrationsTable      string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
