package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNewCheckRecord(t *testing.T) {
	frozen := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("data cycle above threshold", func(t *testing.T) {
		speed, gust := 18.2, 24.7
		record := NewCheckRecord(&speed, &gust, 15)

		assert.Equal(t, frozen.Unix(), record.Timestamp)
		assert.Equal(t, "2026-08-25 14:30:00", record.Datetime)
		assert.Equal(t, &speed, record.WindSpeed)
		assert.Equal(t, &gust, record.WindGust)
		assert.Equal(t, "Fresh breeze", record.WindDescription)
		assert.Equal(t, 5, record.BeaufortScale)
		assert.Equal(t, 15.0, record.Threshold)
		assert.True(t, record.AboveThreshold)
	})

	t.Run("threshold comparison is inclusive", func(t *testing.T) {
		exact := 15.0
		record := NewCheckRecord(&exact, nil, 15)
		assert.True(t, record.AboveThreshold)

		below := 14.99
		record = NewCheckRecord(&below, nil, 15)
		assert.False(t, record.AboveThreshold)
	})

	t.Run("no-data cycle", func(t *testing.T) {
		record := NewCheckRecord(nil, nil, 15)

		assert.Nil(t, record.WindSpeed)
		assert.Nil(t, record.WindGust)
		assert.Equal(t, "Unknown", record.WindDescription)
		assert.Equal(t, 0, record.BeaufortScale)
		assert.False(t, record.AboveThreshold)
	})
}
