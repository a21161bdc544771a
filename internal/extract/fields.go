package extract

import (
	"regexp"

	"github.com/couchcryptid/windwatch/internal/domain"
)

var (
	// speedRe validates a wind measurement: a number (either decimal
	// separator) followed by a recognized speed unit.
	speedRe = regexp.MustCompile(`(?i)(\d+(?:[,.]\d+)?)\s*(mph|km/h|kts|knots)`)

	// temperatureRe validates a temperature: a number next to an optional
	// degree sign and a C/F suffix.
	temperatureRe = regexp.MustCompile(`(?i)(\d+(?:[,.]\d+)?)\s*°?[CF]\b`)

	// directionRe validates a compass abbreviation or direction word.
	// French words included because the embed localizes some pages.
	directionRe = regexp.MustCompile(`(?i)\b(?:[NSEW]{1,3}|North|South|East|West|Nord|Sud|Est|Ouest)\b`)

	// directionContextRe finds a direction qualified by nearby wind wording
	// in flat page text.
	directionContextRe = regexp.MustCompile(`(?i)(?:wind|from)\s+([NSEW]{1,3}|North|South|East|West|Nord|Sud|Est|Ouest)\b`)

	windKeywordsRe = regexp.MustCompile(`(?i)wind\s+speed|mph|km/h|kts|knots`)
	gustKeywordsRe = regexp.MustCompile(`(?i)gust|rafale|mph|km/h|kts|knots`)

	windContextRe = regexp.MustCompile(`(?i)wind\s+speed.*?(\d+(?:[,.]\d+)?)\s*(mph|km/h|kts|knots)`)
	gustContextRe = regexp.MustCompile(`(?i)gust.*?(\d+(?:[,.]\d+)?)\s*(mph|km/h|kts|knots)`)
)

// fieldSpec declares everything the engine needs to extract one field:
// label synonyms in priority order, the validating pattern, and the
// patterns driving the flat-text fallback pass (nil when the field has no
// such fallback).
type fieldSpec struct {
	key      string
	labels   []string
	validate *regexp.Regexp
	keywords *regexp.Regexp
	context  *regexp.Regexp
}

// fields lists the extraction targets. Order matters only for logging;
// each field is resolved independently.
var fields = []fieldSpec{
	{
		key:      domain.FieldWindSpeed,
		labels:   []string{"Wind Speed", "Current Wind", "Wind"},
		validate: speedRe,
		keywords: windKeywordsRe,
		context:  windContextRe,
	},
	{
		key:      domain.FieldGustSpeed,
		labels:   []string{"Wind Gust", "Gust Speed", "Gust"},
		validate: speedRe,
		keywords: gustKeywordsRe,
		context:  gustContextRe,
	},
	{
		key:      domain.FieldWindDirection,
		labels:   []string{"Wind Direction"},
		validate: directionRe,
	},
	{
		key:      domain.FieldTemperature,
		labels:   []string{"Temperature"},
		validate: temperatureRe,
	},
}
