package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// Nil errors produce an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Subfolder records a tenant subfolder under the key "subfolder".
func Subfolder(s string) slog.Attr {
	return slog.String("subfolder", s)
}

// Schema records a tenant schema name under the key "schema".
func Schema(s string) slog.Attr {
	return slog.String("schema", s)
}
