// Package registry stores the tenant catalog: which tenants exist, which
// subfolder each answers to, and which schema holds its data.
//
// Store is the PostgreSQL implementation over the shared pool; StaticStore
// serves a fixed set from YAML for development and tests. Both satisfy
// tenant.Store, so the middleware does not care which one it is given.
package registry
