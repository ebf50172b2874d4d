package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
)

// timeInput is a two-field 24-hour time entry (hour, minute).
type timeInput struct {
	fields [2]textinput.Model // 0:HH, 1:MM
	focus  int
}

func newTimeInput() timeInput {
	placeholders := [2]string{"HH", "MM"}

	var fields [2]textinput.Model
	for i := 0; i < 2; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 2
		ti.Width = 4
		ti.Validate = digitsOnly
		fields[i] = ti
	}

	return timeInput{fields: fields}
}

func (t *timeInput) Focus() tea.Cmd {
	return t.focusField(0)
}

func (t *timeInput) Blur() {
	for i := range t.fields {
		t.fields[i].Blur()
	}
}

// SetValue fills the fields from a stored "HH:MM:SS" string.
func (t *timeInput) SetValue(tod string) {
	parts := strings.SplitN(tod, ":", 3)
	for i := 0; i < 2; i++ {
		if i < len(parts) {
			t.fields[i].SetValue(parts[i])
		} else {
			t.fields[i].SetValue("")
		}
	}
}

// Value assembles the stored "HH:MM:SS" form. Blank fields mean midnight.
func (t *timeInput) Value() (string, error) {
	hh := strings.TrimSpace(t.fields[0].Value())
	mm := strings.TrimSpace(t.fields[1].Value())
	if hh == "" {
		hh = "0"
	}
	if mm == "" {
		mm = "0"
	}
	if !jalali.ValidateTime(hh, mm) {
		return "", fmt.Errorf("invalid time: %s:%s", hh, mm)
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return fmt.Sprintf("%02d:%02d:00", h, m), nil
}

func (t *timeInput) AtStart() bool { return t.focus == 0 }
func (t *timeInput) AtEnd() bool   { return t.focus == 1 }

func (t *timeInput) focusField(idx int) tea.Cmd {
	t.focus = idx
	var cmds []tea.Cmd
	for i := range t.fields {
		if i == idx {
			cmds = append(cmds, t.fields[i].Focus())
		} else {
			t.fields[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (t timeInput) Update(msg tea.Msg) (timeInput, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right":
			if t.focus < 1 {
				cmd := t.focusField(t.focus + 1)
				return t, cmd
			}
			return t, nil
		case "shift+tab", "left":
			if t.focus > 0 {
				cmd := t.focusField(t.focus - 1)
				return t, cmd
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.fields[t.focus], cmd = t.fields[t.focus].Update(msg)
	return t, cmd
}

func (t timeInput) View() string {
	return t.fields[0].View() + ":" + t.fields[1].View()
}
