package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches a subfolder.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrPublicTenantNotFound is returned when the public tenant row is
	// missing. This indicates a broken installation rather than bad input.
	ErrPublicTenantNotFound = errors.New("public tenant not found")

	// ErrInvalidIdentifier is returned when a subfolder segment fails validation.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when a tenant is required but missing.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when the resolved tenant is deactivated.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrMissingPrefix is returned by NewSubfolder when no path prefix is
	// configured. Resolution cannot work without one, so this fails at
	// construction time instead of on the first request.
	ErrMissingPrefix = errors.New("subfolder prefix is required")
)
