package metrics

import "time"

// Sample is one measurement row emitted per sampling tick. Pointer fields
// are nil when the metric could not be derived that tick; the CPU field is
// always nil on the first tick because the derivation needs two snapshots.
// Samples are append-only and ordered by timestamp.
type Sample struct {
	Timestamp         time.Time
	CPUPercent        *float64
	RAMUsedMB         *float64
	RAMUsedPercent    *float64
	MaxTempC          *float64
	AcceleratorStatus string
}

// Float returns a pointer to v, for building samples in place.
func Float(v float64) *float64 {
	return &v
}
