// Package notify delivers wind alerts over the configured channels.
// Channel failures are logged and absorbed: alerting infrastructure being
// down must never take the monitoring loop with it.
package notify

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/windwatch/internal/observability"
)

// Alert carries the values that triggered a notification. Message content
// is the channel's concern, not the caller's.
type Alert struct {
	SpeedKnots float64
	GustKnots  *float64
	Threshold  float64
}

// Notifier sends one alert over one channel.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Dispatcher fans an alert out to the channels selected by the
// notification method. One channel's failure never prevents the others
// from being attempted.
type Dispatcher struct {
	method   string
	email    Notifier
	telegram Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewDispatcher creates a dispatcher for the given method selector
// (email, telegram, or both).
func NewDispatcher(method string, email, telegram Notifier, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{
		method:   method,
		email:    email,
		telegram: telegram,
		logger:   logger,
		metrics:  metrics,
	}
}

// Dispatch sends the alert via the configured method(s) and reports
// whether at least one channel delivered.
func (d *Dispatcher) Dispatch(ctx context.Context, alert Alert) bool {
	switch d.method {
	case "telegram":
		return d.send(ctx, "telegram", d.telegram, alert)
	case "email":
		return d.send(ctx, "email", d.email, alert)
	case "both":
		emailOK := d.send(ctx, "email", d.email, alert)
		telegramOK := d.send(ctx, "telegram", d.telegram, alert)
		return emailOK || telegramOK
	default:
		d.logger.Warn("unknown notification method, defaulting to email", "method", d.method)
		return d.send(ctx, "email", d.email, alert)
	}
}

func (d *Dispatcher) send(ctx context.Context, channel string, n Notifier, alert Alert) bool {
	if err := n.Notify(ctx, alert); err != nil {
		d.logger.Error("notification failed", "channel", channel, "error", err)
		d.metrics.Notifications.WithLabelValues(channel, "error").Inc()
		return false
	}
	d.logger.Info("notification sent", "channel", channel)
	d.metrics.Notifications.WithLabelValues(channel, "success").Inc()
	return true
}
