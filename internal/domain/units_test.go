package domain

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		value float64
		unit  string
		ok    bool
	}{
		{"mph with decimal point", "18.5 mph", 18.5, "mph", true},
		{"kmh with decimal comma", "22,3 km/h", 22.3, "km/h", true},
		{"knots", "12 knots", 12, "knots", true},
		{"kts abbreviation", "9 kts", 9, "kts", true},
		{"no space before unit", "15mph", 15, "mph", true},
		{"uppercase unit", "20 MPH", 20, "mph", true},
		{"number without unit defaults to mph", "17", 17, "mph", true},
		{"number embedded in text", "current speed is 8.2 kts right now", 8.2, "kts", true},
		{"no numbers", "no numbers here", 0, "", false},
		{"empty string", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ParseMeasurement(tt.text)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.value, m.Value)
			assert.Equal(t, tt.unit, m.Unit)
		})
	}
}

func TestToKnots(t *testing.T) {
	logger := discardLogger()

	t.Run("identity for knots", func(t *testing.T) {
		assert.Equal(t, 1.0, ToKnots(1, "knots", logger))
		assert.Equal(t, 7.5, ToKnots(7.5, "kts", logger))
		assert.Equal(t, 3.0, ToKnots(3, "kt", logger))
	})

	t.Run("conversion factors", func(t *testing.T) {
		assert.InDelta(t, 0.539957, ToKnots(1, "km/h", logger), 1e-9)
		assert.InDelta(t, 0.539957, ToKnots(1, "kph", logger), 1e-9)
		assert.InDelta(t, 0.868976, ToKnots(1, "mph", logger), 1e-9)
		assert.InDelta(t, 1.94384, ToKnots(1, "m/s", logger), 1e-9)
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.InDelta(t, 0.868976, ToKnots(1, "MPH", logger), 1e-9)
	})

	t.Run("linear and monotonic", func(t *testing.T) {
		for _, unit := range []string{"knots", "km/h", "mph", "m/s"} {
			one := ToKnots(1, unit, logger)
			assert.InDelta(t, 10*one, ToKnots(10, unit, logger), 1e-9, "unit %s", unit)
			assert.Less(t, ToKnots(5, unit, logger), ToKnots(6, unit, logger), "unit %s", unit)
		}
	})

	t.Run("unknown unit passes through", func(t *testing.T) {
		assert.Equal(t, 42.0, ToKnots(42, "furlongs/fortnight", logger))
	})
}

func TestBeaufort(t *testing.T) {
	t.Run("nil speed is unknown", func(t *testing.T) {
		num, desc := Beaufort(nil)
		assert.Equal(t, 0, num)
		assert.Equal(t, "Unknown", desc)
	})

	t.Run("band boundaries", func(t *testing.T) {
		tests := []struct {
			knots float64
			band  int
			desc  string
		}{
			{0, 0, "Calm"},
			{1, 0, "Calm"},
			{1.1, 1, "Light air"},
			{3, 1, "Light air"},
			{4, 2, "Light breeze"},
			{10, 3, "Gentle breeze"},
			{16, 4, "Moderate breeze"},
			{16.5, 5, "Fresh breeze"},
			{21, 5, "Fresh breeze"},
			{27, 6, "Strong breeze"},
			{33, 7, "Near gale"},
			{40, 8, "Gale"},
			{47, 9, "Strong gale"},
			{55, 10, "Storm"},
			{63, 11, "Violent storm"},
			{64, 12, "Hurricane force"},
			{250, 12, "Hurricane force"},
		}
		for _, tt := range tests {
			num, desc := Beaufort(&tt.knots)
			assert.Equal(t, tt.band, num, "%.1f knots", tt.knots)
			assert.Equal(t, tt.desc, desc, "%.1f knots", tt.knots)
		}
	})

	t.Run("partition has no gaps", func(t *testing.T) {
		// Sweep [0, 70) in tenth-of-a-knot steps; every value must land
		// in exactly one band and bands must be non-decreasing.
		prev := 0
		for v := 0.0; v < 70; v += 0.1 {
			num, desc := Beaufort(&v)
			require.GreaterOrEqual(t, num, prev, "%.1f knots", v)
			require.LessOrEqual(t, num, 12, "%.1f knots", v)
			require.NotEmpty(t, desc)
			require.NotEqual(t, "Unknown", desc)
			prev = num
		}
	})
}

func TestFormatSpeed(t *testing.T) {
	speed := 18.456
	assert.Equal(t, "18.5 knots", FormatSpeed(&speed))
	assert.Equal(t, "N/A", FormatSpeed(nil))
}
