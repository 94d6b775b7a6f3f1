package tenant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestSplitSubfolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		prefix    string
		subfolder string
		rest      string
		ok        bool
	}{
		{"tenant path with rest", "/t/acme/dashboard", "t", "acme", "/dashboard", true},
		{"tenant path root", "/t/acme/", "t", "acme", "/", true},
		{"tenant path no trailing slash", "/t/acme", "t", "acme", "/", true},
		{"nested rest", "/t/acme/projects/42", "t", "acme", "/projects/42", true},
		{"public root", "/", "t", "", "", false},
		{"public path", "/about", "t", "", "", false},
		{"prefix without subfolder", "/t/", "t", "", "/", true},
		{"prefix itself is public", "/t", "t", "", "", false},
		{"similar but different prefix", "/tx/acme/", "t", "", "", false},
		{"prefix with surrounding slashes", "/t/acme/x", "/t/", "acme", "/x", true},
		{"empty subfolder with rest", "/t//dashboard", "t", "", "/dashboard", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subfolder, rest, ok := tenant.SplitSubfolder(tt.path, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.subfolder, subfolder)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestValidSubfolder(t *testing.T) {
	t.Parallel()

	valid := []string{"acme", "acme-inc", "a", "42", "tenant42", "A-1"}
	for _, s := range valid {
		assert.True(t, tenant.ValidSubfolder(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"-acme",
		"acme_inc",
		"acme.inc",
		"acme/inc",
		"ac me",
		strings.Repeat("a", tenant.MaxSubfolderLength+1),
	}
	for _, s := range invalid {
		assert.False(t, tenant.ValidSubfolder(s), "expected %q to be invalid", s)
	}

	assert.True(t, tenant.ValidSubfolder(strings.Repeat("a", tenant.MaxSubfolderLength)))
}
