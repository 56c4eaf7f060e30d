package metrics

import (
	"strconv"
	"strings"
)

const (
	kibibyte = 1024
	mebibyte = 1024 * 1024

	counterTotal     = "MemTotal"
	counterAvailable = "MemAvailable"
)

// Memory carries the derived RAM usage for one tick. Both fields are nil
// when the total counter is missing or zero.
type Memory struct {
	UsedMB      *float64
	UsedPercent *float64
}

// ParseMemInfo derives RAM usage from raw /proc/meminfo text. Lines are
// "name: value kB"; values are stored in kilobytes and converted to bytes.
// Usage is computed against MemAvailable rather than MemFree, since the
// reclaimable-aware figure is what reflects actual memory pressure.
// Malformed lines are skipped; a missing or zero MemTotal yields an empty
// result rather than an error, so one bad counter never kills a tick.
func ParseMemInfo(raw string) Memory {
	counters := make(map[string]uint64)

	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasSuffix(fields[0], ":") {
			continue
		}

		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}

		name := strings.TrimSuffix(fields[0], ":")
		counters[name] = value * kibibyte
	}

	total := counters[counterTotal]
	if total == 0 {
		return Memory{}
	}

	available := counters[counterAvailable]
	if available > total {
		available = total
	}

	used := total - available

	return Memory{
		UsedMB:      Float(round2(float64(used) / mebibyte)),
		UsedPercent: Float(round2(float64(used) / float64(total) * 100)),
	}
}
