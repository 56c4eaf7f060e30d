package metrics

import (
	"context"
	"strconv"
	"strings"

	"github.com/qidk-tools/qidkmon/internal/logger"
)

const (
	millidegreeLow  = 1000
	millidegreeHigh = 15000
	centidegreeLow  = 100
	centidegreeHigh = 1500

	// Resolved readings at or above this are treated as sensor noise or a
	// misclassified scale and discarded.
	maxPlausibleCelsius = 100
)

// ZoneReader lists the device's thermal zones and reads their raw values.
type ZoneReader interface {
	ThermalZones(ctx context.Context) ([]string, error)
	ThermalRaw(ctx context.Context, zone string) (string, error)
}

// ZoneReading pairs a zone with its raw counter value and the resolved
// temperature in Celsius.
type ZoneReading struct {
	Zone    string
	Raw     int64
	Celsius float64
}

// ThermalResolver reduces all thermal zones to a single representative
// temperature. The kernel does not expose the reporting scale of a zone in
// any portable way, so the unit is guessed from the magnitude of the raw
// value. The guess is best-effort, not authoritative; a calibration table
// can pin the divisor for zones where the scale is known.
type ThermalResolver struct {
	reader      ZoneReader
	calibration map[string]float64
}

type ThermalOption func(*ThermalResolver)

// WithCalibration overrides the magnitude heuristic with a fixed divisor
// for the named zones (e.g. "thermal_zone0" -> 1000).
func WithCalibration(divisors map[string]float64) ThermalOption {
	return func(r *ThermalResolver) {
		r.calibration = divisors
	}
}

func NewThermalResolver(reader ZoneReader, opts ...ThermalOption) *ThermalResolver {
	r := &ThermalResolver{reader: reader}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve reads every zone sequentially and returns the maximum plausible
// temperature, or nil when no zone yields one. Zones that fail to read or
// parse are skipped; only a failed zone enumeration is reported as an error.
func (r *ThermalResolver) Resolve(ctx context.Context) (*float64, error) {
	zones, err := r.reader.ThermalZones(ctx)
	if err != nil {
		return nil, err
	}

	var maxTemp float64
	for _, zone := range zones {
		raw, err := r.reader.ThermalRaw(ctx, zone)
		if err != nil {
			logger.Debug().Str("zone", zone).Err(err).Msg("thermal zone read failed")
			continue
		}

		value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			logger.Debug().Str("zone", zone).Str("raw", raw).Msg("thermal zone value not numeric")
			continue
		}

		celsius := r.resolveCelsius(zone, value)
		logger.Debug().Str("zone", zone).Int64("raw", value).Float64("celsius", celsius).Msg("thermal zone resolved")

		if celsius >= maxPlausibleCelsius {
			continue
		}
		if celsius > maxTemp {
			maxTemp = celsius
		}
	}

	if maxTemp == 0 {
		return nil, nil
	}

	return Float(maxTemp), nil
}

func (r *ThermalResolver) resolveCelsius(zone string, raw int64) float64 {
	if divisor, ok := r.calibration[zone]; ok && divisor > 0 {
		return round2(float64(raw) / divisor)
	}

	return ResolveCelsius(raw)
}

// ResolveCelsius converts a raw zone value to Celsius by magnitude:
// values that look like millidegrees are divided by 1000, values that look
// like centidegrees or decidegrees by 100, and small values are taken as
// whole degrees already.
func ResolveCelsius(raw int64) float64 {
	switch {
	case raw > millidegreeLow && raw < millidegreeHigh:
		return round2(float64(raw) / 1000)
	case raw > centidegreeLow && raw < centidegreeHigh:
		return round2(float64(raw) / 100)
	default:
		return float64(raw)
	}
}
