package sink

import "github.com/qidk-tools/qidkmon/internal/errors"

const (
	ErrOpenFailed  = errors.ErrorCode("sink_open_failed")
	ErrWriteFailed = errors.ErrorCode("sink_write_failed")
	ErrCloseFailed = errors.ErrorCode("sink_close_failed")
)
