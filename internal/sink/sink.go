package sink

import (
	"context"

	"github.com/qidk-tools/qidkmon/internal/metrics"
)

// Sink receives samples in arrival order, one per tick. Implementations
// must not reorder or silently drop samples; a write failure surfaces to
// the caller, which reports it and keeps sampling.
type Sink interface {
	Write(ctx context.Context, sample metrics.Sample) error
	Name() string
	Close() error
}
