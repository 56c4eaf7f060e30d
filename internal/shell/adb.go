package shell

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/logger"
)

// ADB runs commands on the device through the adb binary. It performs no
// connection management of its own; adb keeps the transport alive and a
// failed invocation simply surfaces as an unreachable device for that query.
type ADB struct {
	path    string
	serial  string
	timeout time.Duration
}

type ADBOption func(*ADB)

// WithSerial targets a specific device when several are attached.
func WithSerial(serial string) ADBOption {
	return func(a *ADB) {
		a.serial = serial
	}
}

// WithTimeout bounds each query. Zero disables the per-query deadline,
// in which case a hung query stalls the sampling loop.
func WithTimeout(timeout time.Duration) ADBOption {
	return func(a *ADB) {
		a.timeout = timeout
	}
}

func NewADB(path string, opts ...ADBOption) *ADB {
	a := &ADB{path: path}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *ADB) Execute(ctx context.Context, command string) (string, error) {
	errFactory := errors.New()

	if strings.TrimSpace(command) == "" {
		return "", errFactory.New(ErrEmptyCommand)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	args := make([]string, 0, 4)
	if a.serial != "" {
		args = append(args, "-s", a.serial)
	}
	args = append(args, "shell", command)

	out, err := exec.CommandContext(ctx, a.path, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errFactory.Wrap(ErrQueryTimeout, ctx.Err())
	}
	if err != nil {
		logger.Debug().Str("command", command).Err(err).Msg("adb query failed")
		return "", errFactory.WithData(ErrDeviceUnreachable, struct {
			Command string
			Error   string
		}{
			Command: command,
			Error:   err.Error(),
		})
	}

	return strings.TrimSpace(string(out)), nil
}
