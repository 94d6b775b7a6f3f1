package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is unexported to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant returns a context carrying the resolved tenant.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext returns the tenant stored in the context, if any.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextKey{}).(*Tenant)
	return t, ok
}

// SchemaFromContext returns the schema name of the tenant in the context.
// Falls back to PublicSchemaName when no tenant has been resolved, matching
// the dispatch rule that unprefixed requests belong to the public tenant.
func SchemaFromContext(ctx context.Context) string {
	if t, ok := FromContext(ctx); ok && t != nil {
		return t.SchemaName
	}
	return PublicSchemaName
}

// IDFromContext returns just the tenant ID without exposing the full record.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext panics when no tenant is present. Use only in handlers
// mounted behind RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		panic("tenant: no tenant in context")
	}
	return t
}

// LoggerExtractor enriches log records with the tenant subfolder and schema
// so per-tenant traffic can be filtered in log aggregation.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := FromContext(ctx); ok && t != nil {
			return slog.Group("tenant",
				slog.String("subfolder", t.Subfolder),
				slog.String("schema", t.SchemaName),
			), true
		}
		return slog.Attr{}, false
	}
}
