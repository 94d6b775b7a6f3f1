package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PublicSchemaName is the schema that serves requests outside the tenant
// path prefix. Every installation has exactly one tenant row pointing at it.
const PublicSchemaName = "public"

// Tenant is the request-scoped view of a tenant. SchemaName identifies the
// PostgreSQL schema holding the tenant's data, Subfolder is the path segment
// the tenant is reachable under (e.g. "acme" for /t/acme/...).
type Tenant struct {
	ID         uuid.UUID `json:"id" yaml:"id"`
	SchemaName string    `json:"schema_name" yaml:"schema_name"`
	Subfolder  string    `json:"subfolder" yaml:"subfolder"`
	Name       string    `json:"name" yaml:"name"`
	Type       string    `json:"type,omitempty" yaml:"type,omitempty"`
	DomainURL  string    `json:"domain_url,omitempty" yaml:"-"`
	Active     bool      `json:"active" yaml:"active"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// IsPublic reports whether the tenant is the public one.
func (t *Tenant) IsPublic() bool {
	return t.SchemaName == PublicSchemaName
}

// Store loads tenant records from a data source. Implementations must return
// ErrTenantNotFound (possibly wrapped) when no tenant matches, so the
// middleware can distinguish a missing tenant from an infrastructure failure.
type Store interface {
	// BySubfolder returns the tenant reachable under the given path subfolder.
	BySubfolder(ctx context.Context, subfolder string) (*Tenant, error)

	// Public returns the tenant that owns the public schema.
	Public(ctx context.Context) (*Tenant, error)
}
