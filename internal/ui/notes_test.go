package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/logging"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
)

func newTestNotebook(t *testing.T) notebook {
	t.Helper()
	s, err := store.NewNoteStore(filepath.Join(t.TempDir(), "notes.json"), logging.Nop())
	require.NoError(t, err)
	return newNotebook(s)
}

func typeRunes(n *notebook, s string) tea.Cmd {
	return n.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNotebookDebouncedCommit(t *testing.T) {
	n := newTestNotebook(t)
	now := time.Now()
	n.open(jalali.Today(now), now)

	cmd := typeRunes(&n, "exam at 9")
	require.NotNil(t, cmd, "an edit must arm the debounce timer")
	assert.True(t, n.dirty)

	// Debounce expiry for the current generation commits the note.
	require.NoError(t, n.commit(noteSaveMsg{day: n.day, seq: n.seq}))
	assert.False(t, n.dirty)
	assert.Equal(t, "exam at 9", n.store.LoadNote(n.day))
}

func TestNotebookStaleDebounceIgnored(t *testing.T) {
	n := newTestNotebook(t)
	now := time.Now()
	n.open(jalali.Today(now), now)

	typeRunes(&n, "a")
	stale := noteSaveMsg{day: n.day, seq: n.seq}
	typeRunes(&n, "b") // re-arms: the first timer is now stale

	require.NoError(t, n.commit(stale))
	assert.True(t, n.dirty, "a stale timer must not commit")
	assert.Equal(t, "", n.store.LoadNote(n.day))

	require.NoError(t, n.commit(noteSaveMsg{day: n.day, seq: n.seq}))
	assert.Equal(t, "ab", n.store.LoadNote(n.day))
}

func TestNotebookFlushOnNavigate(t *testing.T) {
	n := newTestNotebook(t)
	now := time.Now()
	today := jalali.Today(now)
	n.open(today, now)

	typeRunes(&n, "pending edit")
	require.True(t, n.dirty)

	// Moving to another day must commit synchronously, not drop the edit.
	_, err := n.navigate(1, now)
	require.NoError(t, err)
	assert.Equal(t, "pending edit", n.store.LoadNote(today))
	assert.Equal(t, jalali.AddDays(today, 1), n.day)
	assert.False(t, n.dirty)
}

func TestNotebookPastDayReadOnly(t *testing.T) {
	n := newTestNotebook(t)
	now := time.Now()
	yesterday := jalali.AddDays(jalali.Today(now), -1)
	require.NoError(t, n.store.SaveNote(yesterday, "history"))

	n.open(yesterday, now)
	assert.False(t, n.editable())
	assert.Equal(t, "history", n.text.Value())

	cmd := typeRunes(&n, "tampering")
	assert.Nil(t, cmd)
	assert.False(t, n.dirty)
	assert.Equal(t, "history", n.text.Value())
}

func TestNotebookFlushWithoutEditsIsNoop(t *testing.T) {
	n := newTestNotebook(t)
	now := time.Now()
	n.open(jalali.Today(now), now)
	require.NoError(t, n.flush())
	assert.Equal(t, "", n.store.LoadNote(n.day))
}
