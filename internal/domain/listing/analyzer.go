// internal/domain/listing/analyzer.go

package listing

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by a ResultStore when a key is absent or expired
var ErrKeyNotFound = errors.New("key not found")

// Analyzer defines the interface for generating listing reports
type Analyzer interface {
	// Analyze produces the SEO report for a listing
	Analyze(ctx context.Context, input Input) (*Report, error)
}

// ResultStore is a session-scoped key-value store holding opaque blobs
type ResultStore interface {
	// Get returns the value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given time-to-live
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys, ignoring keys that do not exist
	Delete(ctx context.Context, keys ...string) error

	// Close releases the resources held by the store
	Close() error
}

// EventPublisher defines the interface for announcing generated reports
type EventPublisher interface {
	// PublishAnalysis publishes an analysis event
	PublishAnalysis(ctx context.Context, event AnalysisEvent) error
}
