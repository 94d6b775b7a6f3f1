package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var loadDotEnv sync.Once

// Load fills the config struct from environment variables based on `env`
// field tags. A .env file in the working directory is loaded once per
// process before the first parse; a missing file is not an error.
//
// Example:
//
//	type TenancyConfig struct {
//		SubfolderPrefix string        `env:"TENANT_SUBFOLDER_PREFIX,required"`
//		CacheTTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
//	}
//
//	var cfg TenancyConfig
//	if err := config.Load(&cfg); err != nil {
//		// missing required variables, bad duration syntax, ...
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	loadDotEnv.Do(func() {
		// The .env file is a development convenience; absence is fine.
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. For configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
