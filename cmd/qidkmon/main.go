package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qidk-tools/qidkmon/internal/config"
	"github.com/qidk-tools/qidkmon/internal/logger"
	"github.com/qidk-tools/qidkmon/internal/metrics"
	"github.com/qidk-tools/qidkmon/internal/observability"
	"github.com/qidk-tools/qidkmon/internal/sampler"
	"github.com/qidk-tools/qidkmon/internal/shell"
	"github.com/qidk-tools/qidkmon/internal/sink"
	"github.com/qidk-tools/qidkmon/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")

	bridge := shell.NewADB(cfg.ADB,
		shell.WithSerial(cfg.Serial),
		shell.WithTimeout(time.Duration(cfg.Timeout)*time.Second))
	reader := metrics.NewCounterReader(bridge)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if cfg.DumpCPUInfo {
		dump, err := reader.CPUInfoDump(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("cpuinfo dump failed")
		}
		fmt.Println(dump)
		return
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize sinks")
	}
	defer closeSinks(sinks)

	recorder := observability.NewRecorder()
	if cfg.Listen != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.Listen); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	s, err := sampler.New(sampler.Config{
		Interval: time.Duration(cfg.Interval) * time.Second,
		Reader:   reader,
		Resolver: metrics.NewThermalResolver(reader),
		Probe:    metrics.UnsupportedProbe{},
		Sinks:    sinks,
		Observer: recorder,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize sampler")
	}

	logger.Info().
		Str("device", deviceLabel(cfg)).
		Int("interval_seconds", cfg.Interval).
		Str("logfile", cfg.LogFile).
		Msg("Starting performance monitor")

	if err := s.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}

	logger.Info().Msg("Exiting...")
}

func buildSinks(cfg *config.Config) ([]sink.Sink, error) {
	sinks := []sink.Sink{sink.NewConsole(os.Stdout)}

	if cfg.LogFile != "" {
		csvSink, err := sink.NewCSV(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, csvSink)
	}

	if cfg.Telemetry {
		store, err := telemetry.NewService(telemetry.Config{DBPath: cfg.Database})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, store)
	}

	if cfg.Postgres != "" {
		store, err := telemetry.NewPostgresService(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, store)
	}

	return sinks, nil
}

func closeSinks(sinks []sink.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			logger.Error().Str("sink", s.Name()).Err(err).Msg("failed to close sink")
		}
	}
}

func deviceLabel(cfg *config.Config) string {
	if cfg.Serial != "" {
		return cfg.Serial
	}
	return "default"
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
