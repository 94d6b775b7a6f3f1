package registry

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// StaticStore serves tenants from a fixed in-memory set. Useful for local
// development, tests and single-binary demos where a database registry is
// overkill. It is read-only and safe for concurrent use.
type StaticStore struct {
	bySubfolder map[string]tenant.Tenant
	public      *tenant.Tenant
}

// NewStatic builds a static store from the given tenants. The tenant whose
// SchemaName is "public" becomes the public tenant.
func NewStatic(tenants ...tenant.Tenant) *StaticStore {
	s := &StaticStore{bySubfolder: make(map[string]tenant.Tenant, len(tenants))}
	for _, t := range tenants {
		if t.IsPublic() {
			pub := t
			s.public = &pub
			continue
		}
		s.bySubfolder[t.Subfolder] = t
	}
	return s
}

// LoadStatic reads a YAML file containing a list of tenants.
//
//	- schema_name: public
//	  name: Public
//	  active: true
//	- schema_name: acme
//	  subfolder: acme
//	  name: Acme Inc
//	  active: true
func LoadStatic(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tenant fixtures: %w", err)
	}

	var tenants []tenant.Tenant
	if err := yaml.Unmarshal(data, &tenants); err != nil {
		return nil, fmt.Errorf("parse tenant fixtures: %w", err)
	}
	return NewStatic(tenants...), nil
}

// BySubfolder implements tenant.Store.
func (s *StaticStore) BySubfolder(ctx context.Context, subfolder string) (*tenant.Tenant, error) {
	t, ok := s.bySubfolder[subfolder]
	if !ok {
		return nil, fmt.Errorf("%w: subfolder %q", tenant.ErrTenantNotFound, subfolder)
	}
	// Copy so callers cannot mutate the fixture set.
	out := t
	return &out, nil
}

// Public implements tenant.Store.
func (s *StaticStore) Public(ctx context.Context) (*tenant.Tenant, error) {
	if s.public == nil {
		return nil, tenant.ErrPublicTenantNotFound
	}
	out := *s.public
	return &out, nil
}
