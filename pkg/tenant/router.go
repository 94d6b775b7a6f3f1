package tenant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tenantkit/pkg/cache"
)

// DefaultRouterCacheSize bounds how many compiled per-tenant routers are kept.
const DefaultRouterCacheSize = 256

// HandlerFactory builds the route tree for one tenant. It is called at most
// once per tenant until the cached router is invalidated, so factories may do
// per-tenant setup work (feature flags, tenant-type route sets).
type HandlerFactory func(t *Tenant) http.Handler

// Mux routes requests to the public handler or to a per-tenant route tree
// mounted under /<prefix>/<subfolder>/. It expects the subfolder middleware
// to have resolved the tenant already; requests without one fall through to
// the public handler.
//
// Compiled tenant routers are cached per subfolder. Invalidate must be called
// when a tenant's routing-relevant attributes change, which is the analog of
// clearing a framework's URL resolver cache.
type Mux struct {
	prefix  string
	public  http.Handler
	factory HandlerFactory
	routers *cache.LRUCache[string, http.Handler]
}

// NewMux creates a tenant-aware mux. public serves unprefixed requests,
// factory builds each tenant's routes. cacheSize limits retained compiled
// routers; non-positive values use DefaultRouterCacheSize.
func NewMux(prefix string, public http.Handler, factory HandlerFactory, cacheSize int) *Mux {
	if public == nil {
		public = http.NotFoundHandler()
	}
	if factory == nil {
		panic("tenant: NewMux requires a handler factory")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultRouterCacheSize
	}
	return &Mux{
		prefix:  prefix,
		public:  public,
		factory: factory,
		routers: cache.NewLRUCache[string, http.Handler](cacheSize),
	}
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t, ok := FromContext(r.Context())
	if !ok || t == nil || t.IsPublic() {
		m.public.ServeHTTP(w, r)
		return
	}
	m.router(t).ServeHTTP(w, r)
}

// router returns the compiled route tree for the tenant, building and caching
// it on first use. The tenant's routes are mounted at the full prefixed path
// so handlers see the same URLs the client sent.
func (m *Mux) router(t *Tenant) http.Handler {
	if h, ok := m.routers.Get(t.Subfolder); ok {
		return h
	}

	mount := chi.NewRouter()
	mount.Mount("/"+m.prefix+"/"+t.Subfolder, m.factory(t))
	m.routers.Put(t.Subfolder, mount)
	return mount
}

// Invalidate drops the compiled router for one subfolder. Call after a tenant
// is renamed, retyped or removed.
func (m *Mux) Invalidate(subfolder string) {
	m.routers.Remove(subfolder)
}

// InvalidateAll drops every compiled router, forcing rebuilds on next use.
func (m *Mux) InvalidateAll() {
	m.routers.Clear()
}
