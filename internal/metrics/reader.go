package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/qidk-tools/qidkmon/internal/shell"
)

const (
	cmdSchedulerStats = "cat /proc/stat"
	cmdMemInfo        = "cat /proc/meminfo"
	cmdListThermal    = "ls /sys/class/thermal"
	cmdThermalRaw     = "cat /sys/class/thermal/%s/temp"
	cmdCPUInfoDump    = "dumpsys cpuinfo"

	thermalZonePrefix = "thermal_zone"
)

// CounterReader issues the raw counter queries over the device shell. Each
// method is a single round trip with no retries; a failure propagates to
// the caller, which treats the metric as unavailable for that tick.
type CounterReader struct {
	runner shell.Runner
}

func NewCounterReader(runner shell.Runner) *CounterReader {
	return &CounterReader{runner: runner}
}

// SchedulerStats returns the raw /proc/stat text.
func (r *CounterReader) SchedulerStats(ctx context.Context) (string, error) {
	return r.runner.Execute(ctx, cmdSchedulerStats)
}

// MemInfo returns the raw /proc/meminfo table.
func (r *CounterReader) MemInfo(ctx context.Context) (string, error) {
	return r.runner.Execute(ctx, cmdMemInfo)
}

// ThermalZones lists the thermal_zone entries under the kernel thermal class.
func (r *CounterReader) ThermalZones(ctx context.Context) ([]string, error) {
	out, err := r.runner.Execute(ctx, cmdListThermal)
	if err != nil {
		return nil, err
	}

	var zones []string
	for _, entry := range strings.Fields(out) {
		if strings.HasPrefix(entry, thermalZonePrefix) {
			zones = append(zones, entry)
		}
	}

	return zones, nil
}

// ThermalRaw returns the raw integer reading of a single thermal zone.
func (r *CounterReader) ThermalRaw(ctx context.Context, zone string) (string, error) {
	return r.runner.Execute(ctx, fmt.Sprintf(cmdThermalRaw, zone))
}

// CPUInfoDump returns the device's cpuinfo dump, used by the one-shot
// diagnostic mode.
func (r *CounterReader) CPUInfoDump(ctx context.Context) (string, error) {
	return r.runner.Execute(ctx, cmdCPUInfoDump)
}
