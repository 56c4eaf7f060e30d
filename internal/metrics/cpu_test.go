package metrics_test

import (
	"fmt"
	"testing"

	"github.com/qidk-tools/qidkmon/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const procStat = `cpu  4705 150 1120 16250 520 30 45 0 0 0
cpu0 1200 40 300 4000 130 10 15 0 0 0
cpu1 1100 35 280 4100 120 8 10 0 0 0
intr 114930548 113199788 3 0 5 263 0 4
ctxt 1990473
btime 1062191376
`

func TestParseSchedulerStats(t *testing.T) {
	snap, err := metrics.ParseSchedulerStats(procStat)
	require.NoError(t, err)

	assert.Equal(t, uint64(4705), snap.User)
	assert.Equal(t, uint64(150), snap.Nice)
	assert.Equal(t, uint64(1120), snap.System)
	assert.Equal(t, uint64(16250), snap.Idle)
	assert.Equal(t, uint64(520), snap.IOWait)
	assert.Equal(t, uint64(30), snap.IRQ)
	assert.Equal(t, uint64(45), snap.SoftIRQ)
	assert.Equal(t, uint64(4705+150+1120+16250+520+30+45), snap.Total())
}

func TestParseSchedulerStatsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"no aggregate": "cpu0 1 2 3 4 5 6 7 0 0 0\n",
		"short line":   "cpu  1 2 3\n",
		"non numeric":  "cpu  1 2 x 4 5 6 7\n",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := metrics.ParseSchedulerStats(raw)
			assert.Error(t, err)
		})
	}
}

// stat builds a minimal aggregate line with the given total and idle counts.
func stat(total, idle uint64) string {
	return fmt.Sprintf("cpu  %d 0 0 %d 0 0 0\n", total-idle, idle)
}

func TestDeriveFirstTickHasNoValue(t *testing.T) {
	d := metrics.NewCPUDeriver()

	percent, err := d.Derive(stat(100, 50))
	require.NoError(t, err)
	assert.Nil(t, percent)
	assert.True(t, d.Seeded())
}

func TestDeriveSequentialChaining(t *testing.T) {
	d := metrics.NewCPUDeriver()

	percent, err := d.Derive(stat(100, 50))
	require.NoError(t, err)
	assert.Nil(t, percent)

	percent, err = d.Derive(stat(200, 80))
	require.NoError(t, err)
	require.NotNil(t, percent)
	assert.InDelta(t, 70.0, *percent, 0.001)

	percent, err = d.Derive(stat(350, 100))
	require.NoError(t, err)
	require.NotNil(t, percent)
	assert.InDelta(t, 86.67, *percent, 0.001)
}

func TestDeriveIdenticalSample(t *testing.T) {
	d := metrics.NewCPUDeriver()

	_, err := d.Derive(stat(100, 50))
	require.NoError(t, err)

	percent, err := d.Derive(stat(100, 50))
	require.NoError(t, err)
	assert.Nil(t, percent, "zero total delta must yield no value, not a division by zero")
}

func TestDeriveCounterWentBackwards(t *testing.T) {
	d := metrics.NewCPUDeriver()

	_, err := d.Derive(stat(1000, 500))
	require.NoError(t, err)

	percent, err := d.Derive(stat(900, 400))
	require.NoError(t, err)
	assert.Nil(t, percent)

	// The smaller snapshot became the new baseline.
	percent, err = d.Derive(stat(1000, 450))
	require.NoError(t, err)
	require.NotNil(t, percent)
	assert.InDelta(t, 50.0, *percent, 0.001)
}

func TestDeriveParseFailureKeepsBaseline(t *testing.T) {
	d := metrics.NewCPUDeriver()

	_, err := d.Derive(stat(100, 50))
	require.NoError(t, err)

	_, err = d.Derive("garbage")
	require.Error(t, err)

	percent, err := d.Derive(stat(200, 80))
	require.NoError(t, err)
	require.NotNil(t, percent)
	assert.InDelta(t, 70.0, *percent, 0.001)
}

func TestDerivePercentWithinBounds(t *testing.T) {
	pairs := []struct {
		prevTotal, prevIdle uint64
		curTotal, curIdle   uint64
	}{
		{100, 0, 200, 0},     // fully busy
		{100, 100, 200, 200}, // fully idle
		{100, 50, 101, 50},   // tiny delta
		{0, 0, 1000000, 999999},
	}

	for _, p := range pairs {
		d := metrics.NewCPUDeriver()
		_, err := d.Derive(stat(p.prevTotal, p.prevIdle))
		require.NoError(t, err)

		percent, err := d.Derive(stat(p.curTotal, p.curIdle))
		require.NoError(t, err)
		require.NotNil(t, percent)
		assert.GreaterOrEqual(t, *percent, 0.0)
		assert.LessOrEqual(t, *percent, 100.0)
	}
}
