package metrics

import "github.com/qidk-tools/qidkmon/internal/errors"

const (
	ErrParseFailed      = errors.ErrorCode("metrics_parse_failed")
	ErrCounterRead      = errors.ErrorCode("metrics_counter_read_failed")
	ErrThermalDiscovery = errors.ErrorCode("metrics_thermal_discovery_failed")
)
