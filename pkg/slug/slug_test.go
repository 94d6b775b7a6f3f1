package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantkit/pkg/slug"
)

func TestSubfolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Acme Inc", "acme-inc"},
		{"  Acme  Inc  ", "acme-inc"},
		{"Café Müller", "cafe-muller"},
		{"Hello, World!", "hello-world"},
		{"already-fine", "already-fine"},
		{"42nd Street", "42nd-street"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.Subfolder(tt.in), "input %q", tt.in)
	}

	long := slug.Subfolder(strings.Repeat("a", 100))
	assert.LessOrEqual(t, len(long), 63)
}

func TestSchemaName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Acme Inc", "acme_inc"},
		{"42nd Street", "t_42nd_street"},
		{"Café", "cafe"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.SchemaName(tt.in), "input %q", tt.in)
	}

	long := slug.SchemaName(strings.Repeat("b", 100))
	assert.LessOrEqual(t, len(long), 63)
}
