package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// measurementRe matches the first number in a string, with "." or ","
// accepted as decimal separator, optionally followed by a speed unit,
// e.g. "18.5 mph" or "22,3 km/h". The unit group is optional because the
// dashboard sometimes renders the value and its unit in separate nodes.
var measurementRe = regexp.MustCompile(`(?i)(\d+(?:[,.]\d+)?)\s*(mph|km/h|kts|knots)?`)

// Conversion factors to knots.
const (
	knotsPerKmh = 0.539957
	knotsPerMph = 0.868976
	knotsPerMps = 1.94384
)

// Measurement is a numeric value with its source unit, as parsed from
// raw dashboard text.
type Measurement struct {
	Value float64
	Unit  string
}

// ParseMeasurement extracts the first numeric value and unit from text.
// A "," decimal separator is normalized to "." before conversion. When the
// number carries no recognizable unit suffix the unit defaults to "mph"
// (see the package documentation). Returns false when the text contains no
// numeric value at all.
func ParseMeasurement(text string) (Measurement, bool) {
	if text == "" {
		return Measurement{}, false
	}

	m := measurementRe.FindStringSubmatch(text)
	if m == nil {
		return Measurement{}, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return Measurement{}, false
	}

	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = "mph"
	}
	return Measurement{Value: value, Unit: unit}, true
}

// ToKnots converts a wind speed to knots. An unrecognized unit is passed
// through unconverted with a warning so a single odd token never aborts
// the check cycle.
func ToKnots(value float64, unit string, logger *slog.Logger) float64 {
	switch strings.ToLower(unit) {
	case "knots", "kts", "kt":
		return value
	case "km/h", "kph":
		return value * knotsPerKmh
	case "mph":
		return value * knotsPerMph
	case "m/s":
		return value * knotsPerMps
	default:
		logger.Warn("unknown wind speed unit, assuming knots", "unit", unit)
		return value
	}
}

// beaufortBand is one row of the Beaufort scale. The upper bound is
// inclusive; the lower bound of each band is implied by the previous row.
type beaufortBand struct {
	upper       float64
	description string
}

// beaufortScale covers [0, ∞) in 13 bands. Evaluated in order against the
// upper bounds so every non-negative speed lands in exactly one band.
var beaufortScale = []beaufortBand{
	{1, "Calm"},
	{3, "Light air"},
	{6, "Light breeze"},
	{10, "Gentle breeze"},
	{16, "Moderate breeze"},
	{21, "Fresh breeze"},
	{27, "Strong breeze"},
	{33, "Near gale"},
	{40, "Gale"},
	{47, "Strong gale"},
	{55, "Storm"},
	{63, "Violent storm"},
}

// Beaufort classifies a wind speed in knots on the Beaufort scale,
// returning the band number (0-12) and its standard description.
// A nil speed classifies as (0, "Unknown").
func Beaufort(speedKnots *float64) (int, string) {
	if speedKnots == nil {
		return 0, "Unknown"
	}

	for i, band := range beaufortScale {
		if *speedKnots <= band.upper {
			return i, band.description
		}
	}
	return 12, "Hurricane force"
}

// FormatSpeed renders a speed in knots with one decimal, or "N/A" when the
// speed is missing. Used in notifications and log lines.
func FormatSpeed(speedKnots *float64) string {
	if speedKnots == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f knots", *speedKnots)
}
