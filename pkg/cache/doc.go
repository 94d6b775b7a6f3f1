// Package cache provides a generic thread-safe LRU cache.
//
// It backs the tenant record cache and the compiled per-tenant router cache,
// both of which need bounded memory with hot-entry retention.
package cache
