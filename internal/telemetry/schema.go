package telemetry

import (
	"database/sql"

	"github.com/qidk-tools/qidkmon/internal/errors"
)

// Metric columns are nullable on purpose: an absent metric for a tick is
// recorded as NULL, never as a fabricated zero.
const createTableSQL = `
    CREATE TABLE IF NOT EXISTS samples (
        timestamp          INTEGER PRIMARY KEY,
        cpu_percent        REAL,
        ram_used_mb        REAL,
        ram_used_percent   REAL,
        max_temp_c         REAL,
        accelerator_status TEXT NOT NULL
    )`

const insertSampleSQL = `
    INSERT INTO samples (
        timestamp, cpu_percent, ram_used_mb, ram_used_percent,
        max_temp_c, accelerator_status
    ) VALUES (?, ?, ?, ?, ?, ?)
    ON CONFLICT(timestamp) DO NOTHING`

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(createTableSQL); err != nil {
		return errors.New().Wrap(ErrSchemaInit, err)
	}

	return nil
}
