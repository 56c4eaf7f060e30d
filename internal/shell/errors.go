package shell

import "github.com/qidk-tools/qidkmon/internal/errors"

const (
	ErrDeviceUnreachable = errors.ErrorCode("shell_device_unreachable")
	ErrQueryTimeout      = errors.ErrorCode("shell_query_timeout")
	ErrEmptyCommand      = errors.ErrorCode("shell_empty_command")
)
