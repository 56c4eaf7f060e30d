package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qidk-tools/qidkmon/internal/logger"
	"github.com/qidk-tools/qidkmon/internal/metrics"
)

const shutdownGrace = 5 * time.Second

// Recorder exposes the sampler's state as Prometheus metrics. It uses its
// own registry so tests and embedding applications stay isolated from the
// default one.
type Recorder struct {
	registry *prometheus.Registry

	cpuPercent     prometheus.Gauge
	ramUsedMB      prometheus.Gauge
	ramUsedPercent prometheus.Gauge
	maxTempC       prometheus.Gauge

	samples     prometheus.Counter
	shellErrors prometheus.Counter
	sinkErrors  *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qidkmon_cpu_percent",
			Help: "CPU utilization of the monitored device over the last interval.",
		}),
		ramUsedMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qidkmon_ram_used_megabytes",
			Help: "RAM in use on the monitored device.",
		}),
		ramUsedPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qidkmon_ram_used_percent",
			Help: "RAM in use on the monitored device as a percentage of total.",
		}),
		maxTempC: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qidkmon_max_temp_celsius",
			Help: "Maximum plausible thermal zone reading on the monitored device.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qidkmon_samples_total",
			Help: "Samples emitted by the sampling loop.",
		}),
		shellErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qidkmon_shell_errors_total",
			Help: "Device shell queries that failed or timed out.",
		}),
		sinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qidkmon_sink_errors_total",
			Help: "Sample writes rejected by a sink.",
		}, []string{"sink"}),
	}

	r.registry.MustRegister(
		r.cpuPercent, r.ramUsedMB, r.ramUsedPercent, r.maxTempC,
		r.samples, r.shellErrors, r.sinkErrors,
	)

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// SampleEmitted updates the gauges from an emitted sample. Gauges keep
// their last value when a metric is absent for a tick.
func (r *Recorder) SampleEmitted(sample metrics.Sample) {
	r.samples.Inc()

	if sample.CPUPercent != nil {
		r.cpuPercent.Set(*sample.CPUPercent)
	}
	if sample.RAMUsedMB != nil {
		r.ramUsedMB.Set(*sample.RAMUsedMB)
	}
	if sample.RAMUsedPercent != nil {
		r.ramUsedPercent.Set(*sample.RAMUsedPercent)
	}
	if sample.MaxTempC != nil {
		r.maxTempC.Set(*sample.MaxTempC)
	}
}

func (r *Recorder) ShellError() {
	r.shellErrors.Inc()
}

func (r *Recorder) SinkError(name string) {
	r.sinkErrors.WithLabelValues(name).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownGrace,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("metrics server shutdown failed")
		}
	}()

	logger.Info().Str("addr", addr).Msg("Serving Prometheus metrics")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
