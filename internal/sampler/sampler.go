package sampler

import (
	"context"
	"time"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/logger"
	"github.com/qidk-tools/qidkmon/internal/metrics"
	"github.com/qidk-tools/qidkmon/internal/sink"
)

// Observer receives loop events for live metrics. All hooks are optional.
type Observer interface {
	SampleEmitted(sample metrics.Sample)
	ShellError()
	SinkError(name string)
}

// Config wires a Sampler. Reader and at least one sink are required.
type Config struct {
	Interval time.Duration
	Reader   *metrics.CounterReader
	Resolver *metrics.ThermalResolver
	Probe    metrics.AcceleratorProbe
	Sinks    []sink.Sink
	Observer Observer
}

// Sampler runs the tick loop: query raw counters, derive each metric
// independently, emit one sample per tick. Shell queries within a tick run
// strictly one after another; the bridge is a shared, non-multiplexed
// resource and must not be hammered concurrently.
type Sampler struct {
	cfg     Config
	deriver *metrics.CPUDeriver
}

func New(cfg Config) (*Sampler, error) {
	errFactory := errors.New()

	if cfg.Interval <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidInterval, cfg.Interval)
	}
	if cfg.Reader == nil || len(cfg.Sinks) == 0 {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "sampler needs a reader and at least one sink")
	}
	if cfg.Probe == nil {
		cfg.Probe = metrics.UnsupportedProbe{}
	}

	return &Sampler{
		cfg:     cfg,
		deriver: metrics.NewCPUDeriver(),
	}, nil
}

// Run blocks until ctx is cancelled. The first fetch only seeds the CPU
// baseline; steady sampling starts on the next tick whether or not the
// seed succeeded.
func (s *Sampler) Run(ctx context.Context) error {
	s.baseline(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", s.cfg.Interval).Msg("Sampling started")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Sampling stopped")
			return nil
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Sampler) baseline(ctx context.Context) {
	raw, err := s.cfg.Reader.SchedulerStats(ctx)
	if err != nil {
		s.shellError(err)
		return
	}
	if _, err := s.deriver.Derive(raw); err != nil {
		logger.Warn().Err(err).Msg("baseline scheduler stats unparseable")
	}
}

func (s *Sampler) tick(ctx context.Context, now time.Time) {
	sample := metrics.Sample{
		Timestamp:         now,
		AcceleratorStatus: s.cfg.Probe.Status(ctx),
	}

	// Each metric degrades independently: a failed query or parse leaves
	// its field absent and never blocks the others.
	if raw, err := s.cfg.Reader.SchedulerStats(ctx); err != nil {
		s.shellError(err)
	} else if percent, err := s.deriver.Derive(raw); err != nil {
		logger.Warn().Err(err).Msg("scheduler stats unparseable")
	} else {
		sample.CPUPercent = percent
	}

	if raw, err := s.cfg.Reader.MemInfo(ctx); err != nil {
		s.shellError(err)
	} else {
		mem := metrics.ParseMemInfo(raw)
		sample.RAMUsedMB = mem.UsedMB
		sample.RAMUsedPercent = mem.UsedPercent
	}

	if s.cfg.Resolver != nil {
		if temp, err := s.cfg.Resolver.Resolve(ctx); err != nil {
			s.shellError(err)
		} else {
			sample.MaxTempC = temp
		}
	}

	s.emit(ctx, sample)
}

func (s *Sampler) emit(ctx context.Context, sample metrics.Sample) {
	for _, snk := range s.cfg.Sinks {
		if err := snk.Write(ctx, sample); err != nil {
			logger.Error().Str("sink", snk.Name()).Err(err).Msg("sample write failed")
			if s.cfg.Observer != nil {
				s.cfg.Observer.SinkError(snk.Name())
			}
		}
	}

	if s.cfg.Observer != nil {
		s.cfg.Observer.SampleEmitted(sample)
	}
}

func (s *Sampler) shellError(err error) {
	logger.Warn().Err(err).Msg("device shell query failed")
	if s.cfg.Observer != nil {
		s.cfg.Observer.ShellError()
	}
}
