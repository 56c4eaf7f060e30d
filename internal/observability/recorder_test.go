package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/qidk-tools/qidkmon/internal/metrics"
	"github.com/qidk-tools/qidkmon/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, r *observability.Recorder, name string) float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		require.Len(t, fam.GetMetric(), 1)
		return fam.GetMetric()[0].GetGauge().GetValue()
	}
	t.Fatalf("gauge %s not found", name)
	return 0
}

func TestSampleEmittedUpdatesGauges(t *testing.T) {
	r := observability.NewRecorder()

	r.SampleEmitted(metrics.Sample{
		Timestamp:         time.Now(),
		CPUPercent:        metrics.Float(70.0),
		RAMUsedMB:         metrics.Float(585.94),
		RAMUsedPercent:    metrics.Float(60.0),
		MaxTempC:          metrics.Float(45.0),
		AcceleratorStatus: metrics.StatusUnknown,
	})

	assert.InDelta(t, 70.0, gaugeValue(t, r, "qidkmon_cpu_percent"), 0.001)
	assert.InDelta(t, 585.94, gaugeValue(t, r, "qidkmon_ram_used_megabytes"), 0.001)
	assert.InDelta(t, 60.0, gaugeValue(t, r, "qidkmon_ram_used_percent"), 0.001)
	assert.InDelta(t, 45.0, gaugeValue(t, r, "qidkmon_max_temp_celsius"), 0.001)
}

func TestAbsentMetricsKeepLastGaugeValue(t *testing.T) {
	r := observability.NewRecorder()

	r.SampleEmitted(metrics.Sample{CPUPercent: metrics.Float(50.0)})
	r.SampleEmitted(metrics.Sample{})

	assert.InDelta(t, 50.0, gaugeValue(t, r, "qidkmon_cpu_percent"), 0.001)
}

func TestCounters(t *testing.T) {
	r := observability.NewRecorder()

	r.SampleEmitted(metrics.Sample{})
	r.SampleEmitted(metrics.Sample{})
	r.ShellError()
	r.SinkError("csv")
	r.SinkError("csv")
	r.SinkError("telemetry")

	count, err := testutil.GatherAndCount(r.Registry(),
		"qidkmon_samples_total", "qidkmon_shell_errors_total", "qidkmon_sink_errors_total")
	assert.NoError(t, err)
	// one series each for samples and shell errors, two sink label values
	assert.Equal(t, 4, count)
}
