package metrics

import (
	"math"
	"strconv"
	"strings"

	"github.com/qidk-tools/qidkmon/internal/errors"
)

const snapshotFields = 7

// Snapshot holds the aggregate scheduler counters from one read of the
// device's /proc/stat. Values are cumulative jiffies since boot and only
// ever increase, so a rate needs two snapshots.
type Snapshot struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
}

// Total returns the sum of all counters in the snapshot.
func (s Snapshot) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ
}

// ParseSchedulerStats extracts the aggregate "cpu " line from raw
// /proc/stat text. Per-core lines and the steal/guest columns are ignored.
func ParseSchedulerStats(raw string) (Snapshot, error) {
	errFactory := errors.New()

	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "cpu" {
			continue
		}
		if len(fields) < snapshotFields+1 {
			return Snapshot{}, errFactory.WithMessage(ErrParseFailed, "aggregate cpu line too short").WithData(line)
		}

		values := make([]uint64, snapshotFields)
		for i := 0; i < snapshotFields; i++ {
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return Snapshot{}, errFactory.Wrap(ErrParseFailed, err)
			}
			values[i] = v
		}

		return Snapshot{
			User:    values[0],
			Nice:    values[1],
			System:  values[2],
			Idle:    values[3],
			IOWait:  values[4],
			IRQ:     values[5],
			SoftIRQ: values[6],
		}, nil
	}

	return Snapshot{}, errFactory.WithMessage(ErrParseFailed, "no aggregate cpu line found")
}

// CPUDeriver turns successive scheduler snapshots into a utilization
// percentage. It owns the previous snapshot; one deriver per sampler.
type CPUDeriver struct {
	prev *Snapshot
}

func NewCPUDeriver() *CPUDeriver {
	return &CPUDeriver{}
}

// Derive parses raw /proc/stat text and returns the utilization over the
// interval since the previous call, or nil when no value can be reported:
// on the first call, on a non-positive total delta (counter wrap or repeated
// sample), or on a parse failure. A parse failure keeps the previous
// snapshot so the next good read still yields a delta.
func (d *CPUDeriver) Derive(raw string) (*float64, error) {
	current, err := ParseSchedulerStats(raw)
	if err != nil {
		return nil, err
	}

	prev := d.prev
	d.prev = &current

	if prev == nil {
		return nil, nil
	}

	totalDiff := int64(current.Total()) - int64(prev.Total())
	if totalDiff <= 0 {
		return nil, nil
	}

	idleDiff := int64(current.Idle) - int64(prev.Idle)
	percent := 100 * float64(totalDiff-idleDiff) / float64(totalDiff)
	percent = math.Min(math.Max(percent, 0), 100)

	return Float(round2(percent)), nil
}

// Seeded reports whether a baseline snapshot has been captured.
func (d *CPUDeriver) Seeded() bool {
	return d.prev != nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
