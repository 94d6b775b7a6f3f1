package tenant

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// NewSubfolder creates middleware that resolves the tenant from the request
// path. Requests under /<prefix>/<subfolder>/ are served as that tenant;
// everything else is served as the public tenant. The resolved tenant is
// placed into the request context for downstream handlers, stores and the
// schema switcher.
//
// The middleware should sit at the very top of the chain. It short-circuits
// when an earlier middleware already resolved a tenant, so several resolution
// strategies can be stacked.
//
// Returns ErrMissingPrefix when prefix is empty: silently treating every
// request as public would hide a broken deployment.
func NewSubfolder(prefix string, store Store, opts ...Option) (func(http.Handler) http.Handler, error) {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return nil, ErrMissingPrefix
	}

	cfg := &config{
		cache:           NewMemoryCache(),
		cacheTTL:        5 * time.Minute,
		errorHandler:    defaultErrorHandler,
		notFoundHandler: defaultNotFoundHandler,
		requireActive:   true,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mw := &subfolderMiddleware{prefix: prefix, store: store, cfg: cfg}
	return mw.wrap, nil
}

// Subfolder is like NewSubfolder but panics on configuration errors.
// Intended for wiring in main where a bad prefix should prevent startup.
func Subfolder(prefix string, store Store, opts ...Option) func(http.Handler) http.Handler {
	mw, err := NewSubfolder(prefix, store, opts...)
	if err != nil {
		panic("tenant: " + err.Error())
	}
	return mw
}

type subfolderMiddleware struct {
	prefix string
	store  Store
	cfg    *config
}

// Cache keys are namespaced so a tenant whose subfolder is literally
// "public" cannot collide with the public tenant entry.
const (
	cacheKeyPublic       = "public"
	cacheKeyFolderPrefix = "folder:"
)

// CacheKey returns the cache key the middleware uses for a subfolder lookup.
// Wire it into change hooks to evict a tenant after it is modified:
//
//	registry.WithChangeHook(func(subfolder string) {
//		tenantCache.Delete(ctx, tenant.CacheKey(subfolder))
//		mux.Invalidate(subfolder)
//	})
func CacheKey(subfolder string) string {
	return cacheKeyFolderPrefix + subfolder
}

func (m *subfolderMiddleware) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Already resolved by an earlier middleware in the chain.
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		for _, skip := range m.cfg.skipPaths {
			if strings.HasPrefix(r.URL.Path, skip) {
				next.ServeHTTP(w, r)
				return
			}
		}

		subfolder, _, ok := SplitSubfolder(r.URL.Path, m.prefix)
		if !ok {
			m.servePublic(w, r, next)
			return
		}
		m.serveTenant(w, r, next, subfolder)
	})
}

// servePublic handles requests outside the tenant prefix. A missing public
// tenant row means the installation is broken, which is still reported as
// not found rather than leaking setup details.
func (m *subfolderMiddleware) servePublic(w http.ResponseWriter, r *http.Request, next http.Handler) {
	t, ok := m.cfg.cache.Get(r.Context(), cacheKeyPublic)
	if !ok {
		var err error
		t, err = m.store.Public(r.Context())
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				err = ErrPublicTenantNotFound
			}
			m.fail(w, r, err)
			return
		}
		m.cfg.cache.Set(r.Context(), cacheKeyPublic, t, m.cfg.cacheTTL)
	}

	m.serve(w, r, next, t, "")
}

func (m *subfolderMiddleware) serveTenant(w http.ResponseWriter, r *http.Request, next http.Handler, subfolder string) {
	if !ValidSubfolder(subfolder) {
		m.fail(w, r, ErrInvalidIdentifier)
		return
	}

	t, ok := m.cfg.cache.Get(r.Context(), cacheKeyFolderPrefix+subfolder)
	if !ok {
		var err error
		t, err = m.store.BySubfolder(r.Context(), subfolder)
		if err != nil {
			if errors.Is(err, ErrTenantNotFound) {
				m.cfg.notFoundHandler(w, r, subfolder)
				return
			}
			m.fail(w, r, err)
			return
		}
		m.cfg.cache.Set(r.Context(), cacheKeyFolderPrefix+subfolder, t, m.cfg.cacheTTL)
	}

	if m.cfg.requireActive && !t.Active {
		m.fail(w, r, ErrInactiveTenant)
		return
	}

	m.serve(w, r, next, t, subfolder)
}

// serve stamps a per-request copy of the tenant into the context. The copy
// matters: cached records are shared across requests, and DomainURL is
// request-specific.
func (m *subfolderMiddleware) serve(w http.ResponseWriter, r *http.Request, next http.Handler, t *Tenant, subfolder string) {
	req := *t
	req.DomainURL = hostnameFromRequest(r)
	if subfolder != "" {
		req.Subfolder = subfolder
	}

	next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), &req)))
}

func (m *subfolderMiddleware) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, ErrTenantNotFound) && !errors.Is(err, ErrInvalidIdentifier) {
		m.cfg.logger.ErrorContext(r.Context(), "tenant resolution failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	m.cfg.errorHandler(w, r, err)
}

// hostnameFromRequest strips the port and lowercases the host, so domain
// comparisons are stable regardless of how the client dialed in.
func hostnameFromRequest(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// RequireTenant guards routes that must only be reachable with a resolved
// non-public tenant.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, ok := FromContext(r.Context())
			if !ok || t == nil || t.IsPublic() {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
