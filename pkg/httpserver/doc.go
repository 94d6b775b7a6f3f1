// Package httpserver provides a graceful http.Server wrapper and health
// probe handlers for running the tenant-aware handler chain.
package httpserver
