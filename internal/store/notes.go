package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NoteStore manages the per-day notebook: one JSON object mapping Jalali
// day strings to free-text note content, kept in its own notes area.
type NoteStore struct {
	path string
	log  *zap.SugaredLogger
}

// NewNoteStore opens (or creates) the notes document at path. An empty
// path resolves to a notes/ subdirectory of the default data dir.
func NewNoteStore(path string, log *zap.SugaredLogger) (*NoteStore, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("determine data dir: %w", err)
		}
		notesDir := filepath.Join(dir, "notes")
		if err := os.MkdirAll(notesDir, 0o755); err != nil {
			return nil, fmt.Errorf("create notes dir: %w", err)
		}
		path = filepath.Join(notesDir, "notes.json")
	}
	s := &NoteStore{path: path, log: log}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.write(map[string]string{}); err != nil {
			return nil, fmt.Errorf("create notes document: %w", err)
		}
	}
	return s, nil
}

// LoadNote returns the note text for day, or "" when absent or when the
// document cannot be read.
func (s *NoteStore) LoadNote(day string) string {
	return s.loadAll()[day]
}

// SaveNote sets the note text for day and rewrites the document. There is
// no delete operation; clearing a note stores the empty string.
func (s *NoteStore) SaveNote(day, text string) error {
	notes := s.loadAll()
	notes[day] = text
	return s.write(notes)
}

// IsEditable reports whether the notebook page for day may still be
// edited: today and future days are writable, past days are read-only.
// Canonical "YYYY-MM-DD" day strings compare correctly as text.
func IsEditable(day, today string) bool {
	return day >= today
}

func (s *NoteStore) loadAll() map[string]string {
	notes := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warnw("read notes document", "path", s.path, "error", err)
		}
		return notes
	}
	if err := json.Unmarshal(data, &notes); err != nil {
		s.log.Warnw("corrupt notes document, treating as empty", "path", s.path, "error", err)
		return map[string]string{}
	}
	return notes
}

func (s *NoteStore) write(notes map[string]string) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notes document: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write notes document: %w", err)
	}
	return nil
}
