// Package ui implements the terminal widget: a live countdown board, a
// batch deadline editor and a per-day notebook, all driven by a single
// bubbletea event loop with a 1-second tick.
package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
	"github.com/YaserZarifi/Deadline-Countdown/internal/report"
	"github.com/YaserZarifi/Deadline-Countdown/internal/store"
)

type appState int

const (
	stateCountdown appState = iota
	stateManage
	stateNotes
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type keyMap struct {
	Edit   key.Binding
	Notes  key.Binding
	Toggle key.Binding
	Copy   key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit deadlines"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notebook"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle done"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy summary"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the top-level bubbletea model for the widget.
type Model struct {
	state     appState
	deadlines *store.DeadlineStore
	notes     *store.NoteStore
	log       *zap.SugaredLogger
	now       func() time.Time

	board board
	form  editor
	book  notebook

	keys   keyMap
	err    error
	width  int
	height int
}

type rowsLoadedMsg []model.Row
type tickMsg time.Time

// NewModel creates the widget model over the two stores.
func NewModel(deadlines *store.DeadlineStore, notes *store.NoteStore, log *zap.SugaredLogger) Model {
	return Model{
		state:     stateCountdown,
		deadlines: deadlines,
		notes:     notes,
		log:       log,
		now:       time.Now,
		book:      newNotebook(notes),
		keys:      newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRows, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadRows is the full-rebuild path: reload the store, recompute every
// countdown, re-sort.
func (m Model) loadRows() tea.Msg {
	return rowsLoadedMsg(BuildRows(m.deadlines.Load(), m.now(), m.log))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.book.text.SetWidth(msg.Width - h - 2)
		m.book.text.SetHeight(msg.Height - v - 6)
		return m, nil

	case rowsLoadedMsg:
		m.board.rebuild([]model.Row(msg))
		m.err = nil
		return m, nil

	case tickMsg:
		// The tick path only touches keys already on the board; structural
		// changes wait for the next full rebuild.
		if m.state == stateCountdown {
			m.board.tick(m.deadlines.Load(), m.now())
		}
		return m, tick()

	case noteSaveMsg:
		if err := m.book.commit(msg); err != nil {
			m.err = err
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		if err := m.book.flush(); err != nil {
			m.log.Warnw("flush note on quit", "error", err)
		}
		return m, tea.Quit
	}

	switch m.state {
	case stateCountdown:
		return m.updateCountdown(msg)
	case stateManage:
		return m.updateManage(msg)
	case stateNotes:
		return m.updateNotes(msg)
	}

	return m, nil
}

func (m Model) updateCountdown(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		m.board.moveCursor(-1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		m.board.moveCursor(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		if row, ok := m.board.selected(); ok {
			if err := m.deadlines.SetCompleted(row.Deadline.Course, !row.Deadline.Completed); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.loadRows
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Edit):
		m.state = stateManage
		m.form = newEditor(m.deadlines.Load())
		return m, m.form.focusCurrent()

	case key.Matches(keyMsg, m.keys.Notes):
		m.state = stateNotes
		return m, m.book.open(jalali.Today(m.now()), m.now())

	case key.Matches(keyMsg, m.keys.Copy):
		if err := clipboard.WriteAll(report.Summary(m.deadlines.Load(), m.now())); err != nil {
			m.err = err
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateManage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			records, invalid := m.form.collect()
			if invalid != nil {
				// Block the whole batch and keep the form open for correction.
				m.form.setInvalid(invalid)
				return m, nil
			}
			// The form never shows the completed flag, so carry it over from
			// the stored records before the full-replace save.
			existing := make(map[string]bool)
			for _, d := range m.deadlines.Load() {
				existing[d.Course] = d.Completed
			}
			for i := range records {
				records[i].Completed = existing[records[i].Course]
			}
			if err := m.deadlines.SaveAll(records); err != nil {
				m.err = err
				return m, nil
			}
			m.state = stateCountdown
			return m, m.loadRows
		case "esc":
			m.state = stateCountdown
			return m, m.loadRows
		case "ctrl+n":
			return m, m.form.addRow()
		case "ctrl+d":
			return m, m.form.deleteRow()
		}
	}

	return m, m.form.update(msg)
}

func (m Model) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if err := m.book.flush(); err != nil {
				m.err = err
				return m, nil
			}
			m.state = stateCountdown
			return m, m.loadRows
		case "ctrl+h":
			cmd, err := m.book.navigate(-1, m.now())
			if err != nil {
				m.err = err
			}
			return m, cmd
		case "ctrl+l":
			cmd, err := m.book.navigate(1, m.now())
			if err != nil {
				m.err = err
			}
			return m, cmd
		case "ctrl+t":
			if err := m.book.flush(); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.book.open(jalali.Today(m.now()), m.now())
		}
	}

	return m, m.book.update(msg)
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateManage:
		return appStyle.Render(m.form.view() + errView)
	case stateNotes:
		return appStyle.Render(m.book.view() + errView)
	default:
		header := titleStyle.Render("Deadline Countdown") + "  " +
			statusStyle.Render(jalali.Today(m.now()))
		help := statusStyle.Render("e: edit • n: notebook • enter/x: toggle done • c: copy • q: quit")
		return appStyle.Render(header + "\n\n" + m.board.view(m.width) + "\n" + help + errView)
	}
}
