package metrics_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeZones implements metrics.ZoneReader from a map of raw readings.
type fakeZones struct {
	readings map[string]string
	listErr  error
}

func (f *fakeZones) ThermalZones(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	zones := make([]string, 0, len(f.readings))
	for i := 0; i < len(f.readings); i++ {
		zones = append(zones, fmt.Sprintf("thermal_zone%d", i))
	}
	return zones, nil
}

func (f *fakeZones) ThermalRaw(_ context.Context, zone string) (string, error) {
	raw, ok := f.readings[zone]
	if !ok {
		return "", errors.New().New(errors.ErrUnavailable)
	}
	return raw, nil
}

func TestResolveCelsius(t *testing.T) {
	cases := []struct {
		raw  int64
		want float64
	}{
		{5000, 5.0},     // millidegrees
		{45000, 45000},  // above millidegree range, taken as-is
		{450, 4.5},      // centidegrees
		{1200, 1.2},     // overlap region resolves as millidegrees first
		{45, 45.0},      // already whole degrees
		{99, 99.0},      // below centidegree range
		{9000000, 9e6},  // absurd, left for the plausibility filter
		{0, 0},
		{36500, 36500},
	}

	for _, c := range cases {
		assert.InDelta(t, c.want, metrics.ResolveCelsius(c.raw), 0.001, "raw=%d", c.raw)
	}
}

func TestResolveSelectsMaxPlausible(t *testing.T) {
	reader := &fakeZones{readings: map[string]string{
		"thermal_zone0": "5000",    // 5.0 C
		"thermal_zone1": "45",      // 45.0 C
		"thermal_zone2": "9000000", // implausible, discarded
	}}

	resolver := metrics.NewThermalResolver(reader)
	temp, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, temp)
	assert.InDelta(t, 45.0, *temp, 0.001)
}

func TestResolveNoPlausibleZone(t *testing.T) {
	reader := &fakeZones{readings: map[string]string{
		"thermal_zone0": "9000000",
		"thermal_zone1": "250000",
	}}

	resolver := metrics.NewThermalResolver(reader)
	temp, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, temp)
}

func TestResolveNoZones(t *testing.T) {
	resolver := metrics.NewThermalResolver(&fakeZones{readings: map[string]string{}})
	temp, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, temp)
}

func TestResolveEnumerationFailure(t *testing.T) {
	reader := &fakeZones{listErr: errors.New().New(errors.ErrUnavailable)}

	resolver := metrics.NewThermalResolver(reader)
	_, err := resolver.Resolve(context.Background())
	assert.Error(t, err)
}

func TestResolveSkipsBrokenZones(t *testing.T) {
	reader := &fakeZones{readings: map[string]string{
		"thermal_zone0": "not-a-number",
		"thermal_zone1": "42000", // out of heuristic ranges, implausible as-is
		"thermal_zone2": "38500", // same
		"thermal_zone3": "7250",  // 7.25 C
	}}

	resolver := metrics.NewThermalResolver(reader)
	temp, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, temp)
	assert.InDelta(t, 7.25, *temp, 0.001)
}

func TestResolveCalibrationOverride(t *testing.T) {
	reader := &fakeZones{readings: map[string]string{
		"thermal_zone0": "42000", // known millidegree zone, heuristic gets it wrong
	}}

	resolver := metrics.NewThermalResolver(reader,
		metrics.WithCalibration(map[string]float64{"thermal_zone0": 1000}))

	temp, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, temp)
	assert.InDelta(t, 42.0, *temp, 0.001)
}
