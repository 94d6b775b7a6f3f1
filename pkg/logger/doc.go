// Package logger builds slog loggers with context attribute injection.
//
// Extractors registered via WithContextExtractors run per log record and can
// pull request-scoped values out of the context; tenant.LoggerExtractor adds
// the resolved tenant to every record emitted during a request.
package logger
