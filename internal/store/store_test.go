package store

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/windwatch/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(filepath.Join(dir, "debug", "last_check.json"), filepath.Join(dir, "debug"), logger)
	require.NoError(t, err)
	return s
}

func sampleRecord(speed float64) domain.CheckRecord {
	return domain.NewCheckRecord(&speed, nil, 15)
}

func TestStore_LastCheckRoundTrip(t *testing.T) {
	s := newTestStore(t)

	saved := sampleRecord(18.2)
	require.NoError(t, s.SaveLastCheck(saved))

	loaded, err := s.LoadLastCheck()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStore_SaveOverwritesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveLastCheck(sampleRecord(10)))
	require.NoError(t, s.SaveLastCheck(sampleRecord(20)))

	loaded, err := s.LoadLastCheck()
	require.NoError(t, err)
	require.NotNil(t, loaded.WindSpeed)
	assert.Equal(t, 20.0, *loaded.WindSpeed)
}

func TestStore_LoadBeforeFirstSave(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadLastCheck()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStore_SnapshotIsHumanReadable(t *testing.T) {
	// The snapshot doubles as a debugging aid, so it is written indented
	// with the documented field names.
	s := newTestStore(t)
	require.NoError(t, s.SaveLastCheck(sampleRecord(18.2)))

	data, err := os.ReadFile(s.lastCheckPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"wind_speed\": 18.2")
	assert.Contains(t, string(data), "\"above_threshold\": true")
}

func TestStore_DebugArtifacts(t *testing.T) {
	s := newTestStore(t)

	s.SaveHTML("<html><body>wind 19 mph</body></html>")
	data, err := os.ReadFile(filepath.Join(s.debugDir, "last_page.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "wind 19 mph")

	s.SaveScreenshot([]byte{0x89, 'P', 'N', 'G'})
	png, err := os.ReadFile(filepath.Join(s.debugDir, "last_page.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}

func TestStore_EmptyScreenshotSkipped(t *testing.T) {
	s := newTestStore(t)

	s.SaveScreenshot(nil)
	_, err := os.Stat(filepath.Join(s.debugDir, "last_page.png"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
