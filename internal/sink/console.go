package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/qidk-tools/qidkmon/internal/metrics"
)

const bannerWidth = 80

// Console mirrors each sample as a fixed-width table row for the operator.
// Purely observational; it never fails a tick.
type Console struct {
	out io.Writer
}

// NewConsole writes the table banner and returns the mirror.
func NewConsole(out io.Writer) *Console {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "| %-19s | %-8s | %-10s | %-7s | %-8s | %-10s |\n",
		"TIMESTAMP", "CPU %", "RAM MB", "RAM %", "TEMP C", "HTP STATUS")
	fmt.Fprintln(out, rule)

	return &Console{out: out}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Write(_ context.Context, sample metrics.Sample) error {
	fmt.Fprintf(c.out, "| %-19s | %8s | %10s | %7s | %8s | %-10s |\n",
		sample.Timestamp.Format(timestampLayout),
		formatOptional(sample.CPUPercent),
		formatOptional(sample.RAMUsedMB),
		formatOptional(sample.RAMUsedPercent),
		formatOptional(sample.MaxTempC),
		sample.AcceleratorStatus,
	)

	return nil
}

func (c *Console) Close() error { return nil }
