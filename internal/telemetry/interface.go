package telemetry

import (
	"context"

	"github.com/qidk-tools/qidkmon/internal/metrics"
)

// Collector persists emitted samples for later analysis.
type Collector interface {
	Record(ctx context.Context, sample *metrics.Sample) error
	Close() error
}

// Repository defines the interface for sample storage backends.
type Repository interface {
	Store(ctx context.Context, sample *metrics.Sample) error
	Close() error
}
