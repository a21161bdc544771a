// Package store persists the single-slot last-check snapshot and the
// debug artifacts used for offline diagnosis of extraction failures.
// Persistence is advisory: writes are serialized by the single-threaded
// scheduler and failures are never fatal to a check cycle.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/windwatch/internal/domain"
)

// Store writes the last-check snapshot and debug artifacts to disk.
type Store struct {
	lastCheckPath string
	debugDir      string
	logger        *slog.Logger
}

// New creates a store rooted at the configured paths, creating the debug
// directory if needed.
func New(lastCheckPath, debugDir string, logger *slog.Logger) (*Store, error) {
	for _, dir := range []string{filepath.Dir(lastCheckPath), debugDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return &Store{
		lastCheckPath: lastCheckPath,
		debugDir:      debugDir,
		logger:        logger,
	}, nil
}

// SaveLastCheck overwrites the snapshot with this cycle's record.
func (s *Store) SaveLastCheck(record domain.CheckRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal check record: %w", err)
	}
	if err := os.WriteFile(s.lastCheckPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.lastCheckPath, err)
	}
	s.logger.Debug("saved last check record", "path", s.lastCheckPath)
	return nil
}

// LoadLastCheck reads the current snapshot. Returns fs.ErrNotExist before
// the first completed cycle.
func (s *Store) LoadLastCheck() (domain.CheckRecord, error) {
	data, err := os.ReadFile(s.lastCheckPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CheckRecord{}, err
		}
		return domain.CheckRecord{}, fmt.Errorf("read %s: %w", s.lastCheckPath, err)
	}
	var record domain.CheckRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.CheckRecord{}, fmt.Errorf("unmarshal %s: %w", s.lastCheckPath, err)
	}
	return record, nil
}

// SaveHTML persists the rendered page markup for offline diagnosis.
func (s *Store) SaveHTML(markup string) {
	path := filepath.Join(s.debugDir, "last_page.html")
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		s.logger.Warn("could not save page markup", "path", path, "error", err)
		return
	}
	s.logger.Debug("saved page markup", "path", path)
}

// SaveScreenshot persists the rendered page screenshot.
func (s *Store) SaveScreenshot(png []byte) {
	if len(png) == 0 {
		return
	}
	path := filepath.Join(s.debugDir, "last_page.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		s.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	s.logger.Debug("saved screenshot", "path", path)
}
