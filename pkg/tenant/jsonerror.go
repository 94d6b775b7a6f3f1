package tenant

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONErrorHandler renders resolution failures as JSON envelopes for API
// deployments where the default plain-text responses do not fit:
//
//	{"error": "tenant_not_found"}
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code, key := http.StatusInternalServerError, "internal_server_error"
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrPublicTenantNotFound):
		code, key = http.StatusNotFound, "tenant_not_found"
	case errors.Is(err, ErrInactiveTenant):
		code, key = http.StatusForbidden, "tenant_inactive"
	case errors.Is(err, ErrInvalidIdentifier):
		code, key = http.StatusBadRequest, "invalid_tenant_identifier"
	case errors.Is(err, ErrNoTenantInContext):
		code, key = http.StatusNotFound, "tenant_required"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": key})
}
