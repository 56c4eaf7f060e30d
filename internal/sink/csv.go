package sink

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/metrics"
)

const timestampLayout = "2006-01-02 15:04:05"

// Column order is fixed for compatibility with existing log consumers.
var csvHeader = []string{
	"Timestamp",
	"CPU Usage (%)",
	"RAM Used (MB)",
	"RAM Used (%)",
	"Max Temperature (C)",
	"HTP Usage/Status",
}

// CSV appends one row per sample to a log file. Rows are flushed as they
// are written so an interrupt never loses the last sample.
type CSV struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSV truncates (or creates) the file at path and writes the header row.
func NewCSV(path string) (*CSV, error) {
	errFactory := errors.New()

	file, err := os.Create(path)
	if err != nil {
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, errFactory.Wrap(ErrWriteFailed, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return nil, errFactory.Wrap(ErrWriteFailed, err)
	}

	return &CSV{file: file, writer: writer}, nil
}

func (c *CSV) Name() string { return "csv" }

func (c *CSV) Write(_ context.Context, sample metrics.Sample) error {
	errFactory := errors.New()

	row := []string{
		sample.Timestamp.Format(timestampLayout),
		formatOptional(sample.CPUPercent),
		formatOptional(sample.RAMUsedMB),
		formatOptional(sample.RAMUsedPercent),
		formatOptional(sample.MaxTempC),
		sample.AcceleratorStatus,
	}

	if err := c.writer.Write(row); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	return nil
}

func (c *CSV) Close() error {
	c.writer.Flush()
	if err := c.file.Close(); err != nil {
		return errors.New().Wrap(ErrCloseFailed, err)
	}

	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return metrics.StatusUnknown
	}

	return strconv.FormatFloat(*v, 'f', 2, 64)
}
