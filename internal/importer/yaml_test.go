package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaserZarifi/Deadline-Countdown/internal/logging"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
)

func newTestStore(t *testing.T) *store.DeadlineStore {
	t.Helper()
	s, err := store.NewDeadlineStore(filepath.Join(t.TempDir(), "deadlines.json"), logging.Nop())
	require.NoError(t, err)
	return s
}

func TestImport(t *testing.T) {
	s := newTestStore(t)
	n, err := Import(s, `
deadlines:
  - course: "OS"
    date: "1403-04-20"
    time: "14:00"
  - course: "DB"
    date: "1403-05-01"
    time: "8:30:00"
    completed: true
  - course: "AI"
    date: "1403-04-25"
`)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	loaded := s.Load()
	require.Len(t, loaded, 3)
	assert.Equal(t, model.Deadline{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00"}, loaded[0])
	assert.Equal(t, "08:30:00", loaded[1].DueTime)
	assert.True(t, loaded[1].Completed)
	assert.Equal(t, "00:00:00", loaded[2].DueTime)
}

func TestImportUpsertsByCourse(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveAll([]model.Deadline{
		{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00", Completed: true},
	}))

	n, err := Import(s, `
deadlines:
  - course: "OS"
    date: "1403-04-28"
    time: "10:00"
`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	loaded := s.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "1403-04-28", loaded[0].DueDate)
	assert.True(t, loaded[0].Completed, "upsert must not reset the completed flag")
}

func TestImportExplicitCompletedFalseClearsFlag(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveAll([]model.Deadline{
		{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00", Completed: true},
	}))

	n, err := Import(s, `
deadlines:
  - course: "OS"
    date: "1403-04-20"
    time: "14:00"
    completed: false
`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	loaded := s.Load()
	require.Len(t, loaded, 1)
	assert.False(t, loaded[0].Completed, "an explicit completed: false must clear the stored flag")
}

func TestImportRejectsWholeBatchOnBadEntry(t *testing.T) {
	s := newTestStore(t)
	_, err := Import(s, `
deadlines:
  - course: "OS"
    date: "1403-04-20"
  - course: "bad"
    date: "1403-13-40"
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Empty(t, s.Load(), "nothing may be written when any entry is invalid")
}

func TestImportErrors(t *testing.T) {
	s := newTestStore(t)

	_, err := Import(s, "deadlines: []")
	assert.Error(t, err)

	_, err = Import(s, ":::")
	assert.Error(t, err)

	_, err = Import(s, `
deadlines:
  - date: "1403-04-20"
`)
	assert.Error(t, err)

	_, err = Import(s, `
deadlines:
  - course: "OS"
    date: "1403-04-20"
    time: "24:00"
`)
	assert.Error(t, err)
}
