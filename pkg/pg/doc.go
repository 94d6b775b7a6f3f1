// Package pg wires PostgreSQL connectivity for schema-per-tenant setups:
// pooled connections with startup retry, error classification helpers, a
// readiness probe, and goose migrations split into shared (public schema)
// and per-tenant (every tenant schema) sets.
package pg
