package telemetry

import (
	"context"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/metrics"
)

type Service struct {
	repo Repository
	name string
}

// NewService opens the local sqlite sample store.
func NewService(cfg Config) (*Service, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{repo: repo, name: "telemetry"}, nil
}

// NewPostgresService opens the long-term Postgres sample store.
func NewPostgresService(dsn string) (*Service, error) {
	repo, err := NewPostgresRepository(dsn)
	if err != nil {
		return nil, err
	}

	return &Service{repo: repo, name: "postgres"}, nil
}

func (s *Service) Record(ctx context.Context, sample *metrics.Sample) error {
	errFactory := errors.New()

	if sample == nil {
		return errFactory.New(ErrInvalidSample)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrRecordTimeout, ctx.Err())
	default:
		if err := s.repo.Store(ctx, sample); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *Service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrCloseFailed, err)
	}
	return nil
}

// Write adapts the collector to the sampling loop's sink contract.
func (s *Service) Write(ctx context.Context, sample metrics.Sample) error {
	return s.Record(ctx, &sample)
}

func (s *Service) Name() string {
	return s.name
}
