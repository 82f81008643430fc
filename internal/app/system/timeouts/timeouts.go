// Package timeouts provides centralized timeout values for handler operations.
//
// These are used with context.WithTimeout around database and outbound I/O.
// Guidelines:
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries, upserts
//   - Long: multi-collection operations and outbound email
package timeouts

import (
	"context"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return DefaultPing }

// Short returns the timeout for single-document operations.
func Short() time.Duration { return DefaultShort }

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration { return DefaultMedium }

// Long returns the timeout for multi-step operations and outbound calls.
func Long() time.Duration { return DefaultLong }

// WithShort derives a context bounded by the Short timeout.
func WithShort(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Short())
}

// WithMedium derives a context bounded by the Medium timeout.
func WithMedium(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Medium())
}

// WithLong derives a context bounded by the Long timeout.
func WithLong(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, Long())
}
