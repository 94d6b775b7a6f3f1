// Package tenant resolves which tenant an HTTP request belongs to based on a
// URL path prefix and propagates the result through the request context.
//
// Requests under /<prefix>/<subfolder>/ are matched against the tenant store
// by subfolder; all other requests are served as the public tenant. This is
// subfolder (path-based) multi-tenancy: one hostname, many tenants, each
// isolated in its own PostgreSQL schema.
//
// # Architecture
//
// The package is built around three pieces:
//
//  1. Store - loads tenant records from storage (see modules/registry)
//  2. Subfolder middleware - dispatches public vs tenant, caches lookups,
//     and stamps the tenant into the request context
//  3. Mux - serves each tenant through its own route tree mounted under the
//     tenant's prefixed path
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantkit/pkg/tenant"
//
//	store := registry.New(pool)
//
//	mw, err := tenant.NewSubfolder("t", store,
//		tenant.WithCacheTTL(10*time.Minute),
//		tenant.WithSkipPaths("/health"),
//	)
//	if err != nil {
//		// empty prefix
//	}
//
//	mux := tenant.NewMux("t", publicRoutes(), func(t *tenant.Tenant) http.Handler {
//		return tenantRoutes(t)
//	}, 0)
//
//	handler := mw(mux)
//
//	// In handlers:
//	func dashboard(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// query through schema.Switcher, search_path is t.SchemaName
//	}
//
// # Caching
//
// Resolved tenants are cached between requests, in memory by default or in
// Redis via NewRedisCache for multi-instance deployments. Compiled tenant
// routers are cached separately inside Mux; call Invalidate when a tenant
// changes in a routing-relevant way.
//
// # Failure modes
//
// Unknown subfolders get a 404 through the overridable NotFoundHandler.
// A missing public tenant row also yields 404 (ErrPublicTenantNotFound) so a
// broken installation fails closed instead of serving cross-tenant data.
// Deactivated tenants get 403 unless WithRequireActive(false) is set.
package tenant
