// Package store persists the deadline list and the per-day notebook as
// small JSON documents. Reads and writes are whole-document and
// synchronous; the stores assume the single-threaded event loop and take
// no locks.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
)

// DefaultDir resolves the application data directory, following
// XDG_DATA_HOME with a ~/.local/share fallback.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "deadline-countdown")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DeadlineStore manages the JSON deadline document.
type DeadlineStore struct {
	path string
	log  *zap.SugaredLogger
}

// NewDeadlineStore opens (or creates) the deadline document at path.
// An empty path resolves to the default data directory.
func NewDeadlineStore(path string, log *zap.SugaredLogger) (*DeadlineStore, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("determine data dir: %w", err)
		}
		path = filepath.Join(dir, "deadlines.json")
	}
	s := &DeadlineStore{path: path, log: log}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("create deadline document: %w", err)
		}
	}
	return s, nil
}

// Path returns the location of the persisted document.
func (s *DeadlineStore) Path() string { return s.path }

// Load returns all valid deadline records in document order. A missing or
// unparseable document yields an empty list; records with an impossible
// date or time are skipped and logged, never surfaced.
func (s *DeadlineStore) Load() []model.Deadline {
	records := s.loadAll()
	valid := records[:0]
	for _, r := range records {
		if !jalali.ValidateDate(r.DueDate) || !jalali.ValidateClock(r.DueTime) {
			s.log.Warnw("skipping malformed deadline record",
				"course", r.Course, "date", r.DueDate, "time", r.DueTime)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// loadAll reads the raw document without per-record validation, so
// read-modify-write operations never drop rows they did not touch.
func (s *DeadlineStore) loadAll() []model.Deadline {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warnw("read deadline document", "path", s.path, "error", err)
		}
		return nil
	}
	var records []model.Deadline
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warnw("corrupt deadline document, treating as empty", "path", s.path, "error", err)
		return nil
	}
	return records
}

// SaveAll replaces the whole document with exactly records, in order.
func (s *DeadlineStore) SaveAll(records []model.Deadline) error {
	return s.write(records)
}

// Upsert inserts or updates a record keyed by course name. The stored
// completed flag is preserved on update; completion changes go through
// SetCompleted.
func (s *DeadlineStore) Upsert(rec model.Deadline) error {
	records := s.loadAll()
	for i, r := range records {
		if r.Course == rec.Course {
			rec.Completed = r.Completed
			records[i] = rec
			return s.write(records)
		}
	}
	return s.write(append(records, rec))
}

// SetCompleted sets the completed flag of the first record matching
// course. A missing course is a silent no-op and leaves the document
// untouched.
func (s *DeadlineStore) SetCompleted(course string, done bool) error {
	records := s.loadAll()
	for i, r := range records {
		if r.Course == course {
			records[i].Completed = done
			return s.write(records)
		}
	}
	return nil
}

func (s *DeadlineStore) write(records []model.Deadline) error {
	if records == nil {
		records = []model.Deadline{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deadline document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write deadline document: %w", err)
	}
	return nil
}
