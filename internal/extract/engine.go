// Package extract locates labeled weather fields in a rendered dashboard
// page. The page's DOM structure carries no contract (it is a third-party
// embeddable widget), so extraction layers strategies from most precise to
// least precise and takes the first hit per field.
package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/couchcryptid/windwatch/internal/domain"
	"github.com/couchcryptid/windwatch/internal/observability"
)

// Engine extracts named weather fields from rendered pages.
type Engine struct {
	logger  *slog.Logger
	metrics *observability.Metrics

	// structural strategies run per field against the DOM; textual
	// strategies run in the flat-text fallback pass for wind and gust.
	structural []strategy
	textual    []strategy
}

// NewEngine creates an extraction engine.
func NewEngine(logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		logger:     logger,
		metrics:    metrics,
		structural: []strategy{labelAdjacency{}, valuePattern{}},
		textual:    []strategy{keywordNodes{}, contextPattern{}, loosePattern{}},
	}
}

// ExtractHTML parses markup and extracts fields from it. A document that
// fails to parse yields an empty observation; extraction never errors.
func (e *Engine) ExtractHTML(markup string) domain.Observation {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.logger.Error("failed to parse rendered page", "error", err)
		return domain.Observation{}
	}
	return e.Extract(doc)
}

// Extract produces a mapping from field key to raw text for every field it
// can resolve. Missing keys signal missing data, not failure; the result
// is empty when nothing on the page matches.
func (e *Engine) Extract(doc *goquery.Document) domain.Observation {
	obs := domain.Observation{}
	p := newPage(doc)

	for _, f := range fields {
		e.tryStrategies(p, f, e.structural, obs)
	}

	// The flat-text pass runs only when a wind field survived the
	// structural strategies unresolved.
	_, haveWind := obs[domain.FieldWindSpeed]
	_, haveGust := obs[domain.FieldGustSpeed]
	if !haveWind || !haveGust {
		e.fallback(p, obs)
	}

	return obs
}

// tryStrategies runs an ordered strategy list for one field, stopping at
// the first success.
func (e *Engine) tryStrategies(p *page, f fieldSpec, strategies []strategy, obs domain.Observation) {
	if _, done := obs[f.key]; done {
		return
	}
	for _, s := range strategies {
		text, ok := s.attempt(p, f)
		if !ok {
			continue
		}
		obs[f.key] = text
		e.logger.Info("extracted field", "field", f.key, "strategy", s.name(), "text", text)
		e.metrics.FieldsExtracted.WithLabelValues(f.key, s.name()).Inc()
		return
	}
}

// fallback re-examines the page as flat text. Wind and gust narrow from
// keyword-qualified nodes through a context regex down to the loosest
// pattern; direction and temperature get a single-pass regex search.
func (e *Engine) fallback(p *page, obs domain.Observation) {
	e.logger.Info("structural extraction incomplete, using flat-text fallback")

	for _, f := range fields {
		if f.key != domain.FieldWindSpeed && f.key != domain.FieldGustSpeed {
			continue
		}
		e.tryStrategies(p, f, e.textual, obs)
	}

	if _, ok := obs[domain.FieldWindDirection]; !ok {
		if m := directionContextRe.FindStringSubmatch(p.flat); m != nil {
			obs[domain.FieldWindDirection] = m[1]
			e.logger.Info("extracted field", "field", domain.FieldWindDirection, "strategy", "flat_text", "text", m[1])
			e.metrics.FieldsExtracted.WithLabelValues(domain.FieldWindDirection, "flat_text").Inc()
		}
	}

	if _, ok := obs[domain.FieldTemperature]; !ok {
		if m := temperatureRe.FindString(p.flat); m != "" {
			obs[domain.FieldTemperature] = m
			e.logger.Info("extracted field", "field", domain.FieldTemperature, "strategy", "flat_text", "text", m)
			e.metrics.FieldsExtracted.WithLabelValues(domain.FieldTemperature, "flat_text").Inc()
		}
	}
}
