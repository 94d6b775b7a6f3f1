package schema

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSchemaName is returned for names that are not safe to splice
// into DDL or search_path statements.
var ErrInvalidSchemaName = errors.New("invalid schema name")

// MaxSchemaNameLength matches the PostgreSQL identifier limit.
const MaxSchemaNameLength = 63

// Schema names are kept to unquoted-identifier characters. Anything fancier
// would survive quoting but break the tooling around dumps and migrations.
var schemaNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidName reports whether name is an acceptable tenant schema name.
// Names reserved by PostgreSQL (pg_ prefix) and information_schema are
// rejected even though they are syntactically valid.
func ValidName(name string) bool {
	if name == "" || len(name) > MaxSchemaNameLength {
		return false
	}
	if strings.HasPrefix(name, "pg_") || name == "information_schema" {
		return false
	}
	return schemaNamePattern.MatchString(name)
}
