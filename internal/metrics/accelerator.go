package metrics

import "context"

// StatusUnknown is reported when no accelerator integration is available.
const StatusUnknown = "N/A"

// AcceleratorProbe reports coarse accelerator (HTP/NPU) status. Probes must
// never block the sampling loop and must never fail; a probe that cannot
// answer reports StatusUnknown.
type AcceleratorProbe interface {
	Status(ctx context.Context) string
}

// UnsupportedProbe is the default probe. Reading HTP utilization requires
// vendor profiling hooks (QNN SDK logging or a profiling daemon) that are
// not wired in; this is the extension point for such an integration.
type UnsupportedProbe struct{}

func (UnsupportedProbe) Status(context.Context) string {
	return StatusUnknown
}
