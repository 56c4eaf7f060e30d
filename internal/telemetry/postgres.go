package telemetry

import (
	"context"
	"database/sql"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/metrics"

	_ "github.com/lib/pq"
)

// Nullable metric columns, same shape as the sqlite schema. Suitable for a
// plain Postgres table or a Timescale hypertable created out of band.
const (
	createPostgresTableSQL = `
    CREATE TABLE IF NOT EXISTS samples (
        timestamp          TIMESTAMPTZ PRIMARY KEY,
        cpu_percent        DOUBLE PRECISION,
        ram_used_mb        DOUBLE PRECISION,
        ram_used_percent   DOUBLE PRECISION,
        max_temp_c         DOUBLE PRECISION,
        accelerator_status TEXT NOT NULL
    )`

	insertPostgresSampleSQL = `
    INSERT INTO samples (
        timestamp, cpu_percent, ram_used_mb, ram_used_percent,
        max_temp_c, accelerator_status
    ) VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (timestamp) DO NOTHING`
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository connects to the DSN and ensures the samples table
// exists.
func NewPostgresRepository(dsn string) (Repository, error) {
	errFactory := errors.New()

	if dsn == "" {
		return nil, errFactory.New(ErrInvalidDSN)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return newPostgresRepository(db)
}

// NewPostgresRepositoryWithDB wraps an existing connection; used by tests.
func NewPostgresRepositoryWithDB(db *sql.DB) (Repository, error) {
	return newPostgresRepository(db)
}

func newPostgresRepository(db *sql.DB) (Repository, error) {
	if _, err := db.Exec(createPostgresTableSQL); err != nil {
		db.Close()
		return nil, errors.New().Wrap(ErrSchemaInit, err)
	}

	return &postgresRepository{db: db}, nil
}

func (r *postgresRepository) Store(ctx context.Context, sample *metrics.Sample) error {
	_, err := r.db.ExecContext(ctx, insertPostgresSampleSQL,
		sample.Timestamp,
		nullFloat(sample.CPUPercent),
		nullFloat(sample.RAMUsedMB),
		nullFloat(sample.RAMUsedPercent),
		nullFloat(sample.MaxTempC),
		sample.AcceleratorStatus,
	)
	if err != nil {
		return errors.New().Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *postgresRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
