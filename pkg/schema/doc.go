// Package schema implements PostgreSQL schema-per-tenant isolation.
//
// Each tenant's tables live in a dedicated schema; shared tables live in
// public. The Switcher points search_path at the request's tenant schema for
// the duration of a transaction or checked-out connection, and always resets
// to public so pooled connections never carry a stale tenant.
//
//	sw := schema.NewSwitcher(pool)
//
//	err := sw.WithTenant(ctx, func(tx pgx.Tx) error {
//		// queries here hit <tenant schema>, falling back to public
//		return tx.QueryRow(ctx, "SELECT count(*) FROM projects").Scan(&n)
//	})
//
// Provisioning helpers (Create, Drop, Exists, List) cover the schema
// lifecycle for tenant signup and teardown.
package schema
