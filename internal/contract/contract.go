// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/sprintlens/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking command runs and the metrics they emit.
type AnalysisStore interface {
	// BeginAnalysis creates a new run for a command and returns its unique ID
	BeginAnalysis(command string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalMetrics int) error

	// RecordMetrics stores the values a run emitted
	RecordMetrics(analysisID int64, recordedAt time.Time, values []schema.MetricValue) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllMetricRecords returns every recorded metric value
	GetAllMetricRecords() ([]schema.MetricRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Suggester turns a summary of tracker usage into configuration suggestions.
type Suggester interface {
	Suggest(ctx context.Context, summary string) (string, error)
}
