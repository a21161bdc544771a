// Package pipeline composes the page fetcher, extraction engine, and unit
// conversion into the periodic wind check, and decides threshold crossing.
// Every failure is absorbed at this boundary: a broken cycle logs, records
// a no-data snapshot, and waits for the next tick. The next scheduled
// cycle is the retry mechanism; there is no backoff or immediate retry.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/windwatch/internal/adapter/browser"
	"github.com/couchcryptid/windwatch/internal/config"
	"github.com/couchcryptid/windwatch/internal/domain"
	"github.com/couchcryptid/windwatch/internal/notify"
	"github.com/couchcryptid/windwatch/internal/observability"
)

// PageFetcher renders the target URL and returns the resulting page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (browser.Page, error)
}

// Extractor produces raw field text from rendered markup.
type Extractor interface {
	ExtractHTML(markup string) domain.Observation
}

// AlertDispatcher sends a threshold alert over the configured channels.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, alert notify.Alert) bool
}

// SnapshotStore persists the last-check record and debug artifacts.
type SnapshotStore interface {
	SaveLastCheck(record domain.CheckRecord) error
	SaveHTML(markup string)
	SaveScreenshot(png []byte)
}

// FeedPublisher pushes check records to the optional external feed.
type FeedPublisher interface {
	Publish(ctx context.Context, record domain.CheckRecord) error
}

// Checker runs the fetch-extract-classify-notify cycle.
type Checker struct {
	fetcher    PageFetcher
	extractor  Extractor
	dispatcher AlertDispatcher
	snapshots  SnapshotStore
	feed       FeedPublisher // nil when the feed is disabled

	pageURL    string
	threshold  float64
	interval   time.Duration
	debugFiles bool

	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Checker. Pass a nil feed to disable publishing.
func New(fetcher PageFetcher, extractor Extractor, dispatcher AlertDispatcher, snapshots SnapshotStore, feed FeedPublisher, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Checker {
	return &Checker{
		fetcher:    fetcher,
		extractor:  extractor,
		dispatcher: dispatcher,
		snapshots:  snapshots,
		feed:       feed,
		pageURL:    cfg.PageURL,
		threshold:  cfg.WindThreshold,
		interval:   cfg.CheckInterval,
		debugFiles: cfg.DebugFiles,
		clock:      clockwork.NewRealClock(),
		logger:     logger,
		metrics:    metrics,
	}
}

// SetClock swaps the scheduler's time source, for tests.
func (c *Checker) SetClock(clock clockwork.Clock) {
	c.clock = clock
}

// CheckReadiness returns nil once at least one check cycle has completed.
func (c *Checker) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return errors.New("no check cycle has completed yet")
	}
	return nil
}

// Run checks once immediately, then on every interval tick until the
// context is cancelled. Cycles run serially on this goroutine and never
// overlap.
func (c *Checker) Run(ctx context.Context) error {
	c.logger.Info("wind monitor starting",
		"threshold_knots", c.threshold,
		"interval", c.interval,
		"url", c.pageURL,
	)
	c.metrics.SchedulerRunning.Set(1)
	defer c.metrics.SchedulerRunning.Set(0)

	c.CheckOnce(ctx)

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("wind monitor stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			c.CheckOnce(ctx)
		}
	}
}

// CheckOnce runs one complete cycle and returns the persisted record.
// A cycle has two outcomes: data (speed resolved, threshold compared,
// alert possibly dispatched) or no data (nil speed, no dispatch). The
// snapshot is persisted either way.
func (c *Checker) CheckOnce(ctx context.Context) domain.CheckRecord {
	c.logger.Info("checking wind speed")
	start := time.Now()

	speed, gust := c.observe(ctx)

	if speed != nil {
		beaufortNum, description := domain.Beaufort(speed)
		c.logger.Info("wind conditions", "description", description, "beaufort", beaufortNum)

		if *speed >= c.threshold {
			c.logger.Info("wind speed exceeds threshold",
				"speed", domain.FormatSpeed(speed),
				"threshold_knots", c.threshold,
			)
			c.dispatcher.Dispatch(ctx, notify.Alert{
				SpeedKnots: *speed,
				GustKnots:  gust,
				Threshold:  c.threshold,
			})
		} else {
			c.logger.Info("wind speed is below threshold",
				"speed", domain.FormatSpeed(speed),
				"threshold_knots", c.threshold,
			)
		}
	} else {
		c.logger.Warn("could not determine wind speed during this check")
	}

	record := domain.NewCheckRecord(speed, gust, c.threshold)
	if err := c.snapshots.SaveLastCheck(record); err != nil {
		c.logger.Error("failed to save last check record", "error", err)
	}
	if c.feed != nil {
		if err := c.feed.Publish(ctx, record); err != nil {
			c.logger.Error("failed to publish check record to feed", "error", err)
		}
	}

	c.recordMetrics(record, time.Since(start))
	c.ready.Store(true)
	return record
}

// observe fetches and extracts the current wind speed and gust in knots.
// Both are nil on a no-data cycle.
func (c *Checker) observe(ctx context.Context) (speed, gust *float64) {
	fetchStart := time.Now()
	page, err := c.fetcher.Fetch(ctx, c.pageURL)
	if err != nil {
		c.logger.Error("failed to fetch weather page", "error", err)
		return nil, nil
	}
	c.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	if c.debugFiles {
		c.snapshots.SaveScreenshot(page.Screenshot)
	}

	obs := c.extractor.ExtractHTML(page.HTML)
	c.logger.Info("weather data extracted", "fields", len(obs))

	// Keep the markup around whenever a wind field resisted every
	// strategy; it is the only way to diagnose layout changes offline.
	_, haveWind := obs[domain.FieldWindSpeed]
	_, haveGust := obs[domain.FieldGustSpeed]
	if c.debugFiles && (!haveWind || !haveGust) {
		c.snapshots.SaveHTML(page.HTML)
	}

	speed = c.parseField(obs, domain.FieldWindSpeed)
	gust = c.parseField(obs, domain.FieldGustSpeed)
	return speed, gust
}

// parseField converts one extracted field to knots, or nil when the field
// is absent or unparseable. Parse failures are routine (a layout change,
// a stray match), not errors.
func (c *Checker) parseField(obs domain.Observation, key string) *float64 {
	text, ok := obs[key]
	if !ok {
		return nil
	}

	m, ok := domain.ParseMeasurement(text)
	if !ok {
		c.logger.Warn("could not extract numeric value", "field", key, "text", text)
		c.metrics.ParseFailures.WithLabelValues(key).Inc()
		return nil
	}

	knots := domain.ToKnots(m.Value, m.Unit, c.logger)
	c.logger.Info("parsed measurement",
		"field", key,
		"value", m.Value,
		"unit", m.Unit,
		"knots", knots,
	)
	return &knots
}

func (c *Checker) recordMetrics(record domain.CheckRecord, elapsed time.Duration) {
	c.metrics.CheckDuration.Observe(elapsed.Seconds())

	if record.WindSpeed == nil {
		c.metrics.ChecksTotal.WithLabelValues("no_data").Inc()
		c.metrics.AboveThreshold.Set(0)
		return
	}

	c.metrics.ChecksTotal.WithLabelValues("data").Inc()
	c.metrics.WindSpeedKnots.Set(*record.WindSpeed)
	if record.WindGust != nil {
		c.metrics.WindGustKnots.Set(*record.WindGust)
	}
	c.metrics.BeaufortScale.Set(float64(record.BeaufortScale))
	if record.AboveThreshold {
		c.metrics.AboveThreshold.Set(1)
	} else {
		c.metrics.AboveThreshold.Set(0)
	}
}
