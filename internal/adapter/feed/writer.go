// Package feed publishes check records to a Kafka topic so external
// dashboards can consume the same data as the snapshot file without
// polling it. The feed is optional and disabled by default.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/windwatch/internal/config"
	"github.com/couchcryptid/windwatch/internal/domain"
)

// Writer produces check records to the configured Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the check-record feed.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one check record.
func (w *Writer) Publish(ctx context.Context, record domain.CheckRecord) error {
	msg, err := serializeToMessage(record)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a CheckRecord into a Kafka message keyed by
// cycle outcome so consumers can partition data and no-data cycles.
func serializeToMessage(record domain.CheckRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize check record: %w", err)
	}

	outcome := "data"
	if record.WindSpeed == nil {
		outcome = "no_data"
	}

	return kafkago.Message{
		Key:   []byte(outcome),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "above_threshold", Value: []byte(strconv.FormatBool(record.AboveThreshold))},
			{Key: "checked_at", Value: []byte(record.Datetime)},
		},
	}, nil
}
