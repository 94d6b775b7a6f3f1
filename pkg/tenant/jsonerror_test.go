package tenant_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
		key  string
	}{
		{"not found", tenant.ErrTenantNotFound, 404, "tenant_not_found"},
		{"public missing", tenant.ErrPublicTenantNotFound, 404, "tenant_not_found"},
		{"inactive", tenant.ErrInactiveTenant, 403, "tenant_inactive"},
		{"invalid identifier", tenant.ErrInvalidIdentifier, 400, "invalid_tenant_identifier"},
		{"required", tenant.ErrNoTenantInContext, 404, "tenant_required"},
		{"unexpected", errors.New("boom"), 500, "internal_server_error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/t/acme/", nil)
			tenant.JSONErrorHandler(w, req, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.key, body["error"])
		})
	}
}
