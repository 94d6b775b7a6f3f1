package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ErrorHandler renders resolution failures to the client.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// NotFoundHandler renders the response when no tenant matches a subfolder.
// Split from ErrorHandler so applications can serve a branded 404 page
// without rewriting status mapping for every other failure mode.
type NotFoundHandler func(w http.ResponseWriter, r *http.Request, subfolder string)

type config struct {
	cache           Cache
	cacheTTL        time.Duration
	errorHandler    ErrorHandler
	notFoundHandler NotFoundHandler
	skipPaths       []string
	requireActive   bool
	logger          *slog.Logger
}

// Option configures the subfolder middleware.
type Option func(*config)

// WithCache sets a custom cache implementation, e.g. NewRedisCache for
// multi-instance deployments.
func WithCache(c Cache) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.cache = c
		}
	}
}

// WithCacheTTL sets how long resolved tenants stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *config) {
		if ttl > 0 {
			cfg.cacheTTL = ttl
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(cfg *config) {
		if h != nil {
			cfg.errorHandler = h
		}
	}
}

// WithNotFoundHandler overrides the response for unknown subfolders.
func WithNotFoundHandler(h NotFoundHandler) Option {
	return func(cfg *config) {
		if h != nil {
			cfg.notFoundHandler = h
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely,
// e.g. /health or /metrics.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		cfg.skipPaths = append(cfg.skipPaths, paths...)
	}
}

// WithRequireActive controls whether deactivated tenants are rejected.
// Enabled by default.
func WithRequireActive(require bool) Option {
	return func(cfg *config) {
		cfg.requireActive = require
	}
}

// WithLogger sets the logger used for resolution failures.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrPublicTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func defaultNotFoundHandler(w http.ResponseWriter, r *http.Request, subfolder string) {
	http.Error(w, "No tenant for subfolder "+subfolder, http.StatusNotFound)
}
