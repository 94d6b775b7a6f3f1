package tenant_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/tenantkit/modules/registry"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func ExampleNewSubfolder() {
	store := registry.NewStatic(
		tenant.Tenant{SchemaName: tenant.PublicSchemaName, Name: "public", Active: true},
		tenant.Tenant{SchemaName: "acme", Subfolder: "acme", Name: "Acme Inc", Active: true},
	)

	mw, err := tenant.NewSubfolder("t", store, tenant.WithCache(tenant.NewNoopCache()))
	if err != nil {
		panic(err)
	}

	mux := tenant.NewMux("t",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "landing page")
		}),
		func(t *tenant.Tenant) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, "%s dashboard", t.Name)
			})
		}, 0)

	handler := mw(mux)

	for _, path := range []string{"/", "/t/acme/dashboard"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		fmt.Println(w.Body.String())
	}

	// Output:
	// landing page
	// Acme Inc dashboard
}
