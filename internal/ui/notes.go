package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
)

// noteDebounce is how long the notebook waits after the last keystroke
// before committing the day's note.
const noteDebounce = 750 * time.Millisecond

// noteSaveMsg fires when a debounce window elapses. seq identifies the
// keystroke generation that armed it; stale generations are ignored.
type noteSaveMsg struct {
	day string
	seq int
}

// notebook is the per-day notes editor. Edits are committed after a
// debounce, and always flushed synchronously before leaving the day.
type notebook struct {
	store *store.NoteStore
	day   string
	today string
	text  textarea.Model
	dirty bool
	seq   int
}

func newNotebook(s *store.NoteStore) notebook {
	ta := textarea.New()
	ta.Placeholder = "Notes for the day..."
	ta.CharLimit = 0
	return notebook{store: s, text: ta}
}

// open loads the page for day and focuses the editor when the day is
// still writable. Today's date is captured here so editability stays
// consistent for the whole visit.
func (n *notebook) open(day string, now time.Time) tea.Cmd {
	n.day = day
	n.today = jalali.Today(now)
	n.text.SetValue(n.store.LoadNote(day))
	n.dirty = false
	n.seq++
	if n.editable() {
		return n.text.Focus()
	}
	n.text.Blur()
	return nil
}

func (n *notebook) editable() bool {
	return store.IsEditable(n.day, n.today)
}

// flush commits a pending edit immediately. Safe to call at any time;
// it is required before navigating away or closing the window.
func (n *notebook) flush() error {
	if !n.dirty {
		return nil
	}
	n.dirty = false
	n.seq++
	return n.store.SaveNote(n.day, n.text.Value())
}

// update feeds a message to the textarea and re-arms the debounce timer
// whenever the content changed.
func (n *notebook) update(msg tea.Msg) tea.Cmd {
	if !n.editable() {
		return nil
	}
	before := n.text.Value()
	var cmd tea.Cmd
	n.text, cmd = n.text.Update(msg)
	if n.text.Value() != before {
		n.dirty = true
		n.seq++
		day, seq := n.day, n.seq
		return tea.Batch(cmd, tea.Tick(noteDebounce, func(time.Time) tea.Msg {
			return noteSaveMsg{day: day, seq: seq}
		}))
	}
	return cmd
}

// commit handles a debounce expiry. Only the latest generation for the
// currently open day writes; everything else was superseded.
func (n *notebook) commit(msg noteSaveMsg) error {
	if msg.day != n.day || msg.seq != n.seq || !n.dirty {
		return nil
	}
	n.dirty = false
	return n.store.SaveNote(n.day, n.text.Value())
}

// navigate flushes the current page and opens the page delta days away.
func (n *notebook) navigate(delta int, now time.Time) (tea.Cmd, error) {
	if err := n.flush(); err != nil {
		return nil, err
	}
	day := jalali.AddDays(n.day, delta)
	if day == "" {
		day = jalali.Today(now)
	}
	return n.open(day, now), nil
}

func (n *notebook) view() string {
	header := titleStyle.Render("Notebook") + "  " + statusStyle.Render(n.day)
	hint := "ctrl+h: prev day • ctrl+l: next day • ctrl+t: today • esc: back"
	if !n.editable() {
		hint = "read-only (past day) • " + hint
	}
	return header + "\n\n" + n.text.View() + "\n\n" + statusStyle.Render(hint)
}
