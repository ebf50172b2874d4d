package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
)

// editor column indices.
const (
	colCourse = iota
	colDate
	colTime
	colCount
)

// editRow is one editable deadline line: course name, Jalali date, time.
type editRow struct {
	course textinput.Model
	date   dateInput
	time   timeInput
}

func newEditRow() editRow {
	course := textinput.New()
	course.Placeholder = "Course name..."
	course.CharLimit = 64
	course.Width = 24

	return editRow{
		course: course,
		date:   newDateInput(),
		time:   newTimeInput(),
	}
}

func editRowFrom(d model.Deadline) editRow {
	r := newEditRow()
	r.course.SetValue(d.Course)
	r.date.SetValue(d.DueDate)
	r.time.SetValue(d.DueTime)
	return r
}

func (r *editRow) isBlank() bool {
	return strings.TrimSpace(r.course.Value()) == "" && r.date.IsEmpty()
}

func (r *editRow) blur() {
	r.course.Blur()
	r.date.Blur()
	r.time.Blur()
}

func (r *editRow) view(active bool) string {
	cursor := "  "
	if active {
		cursor = "> "
	}
	return cursor + r.course.View() + "  " + r.date.View() + "  " + r.time.View()
}

// editor is the batch deadline form: every row is validated on save and no
// row is committed while any is invalid.
type editor struct {
	rows    []editRow
	row     int
	col     int
	errText string
}

func newEditor(records []model.Deadline) editor {
	e := editor{}
	for _, d := range records {
		e.rows = append(e.rows, editRowFrom(d))
	}
	if len(e.rows) == 0 {
		e.rows = append(e.rows, newEditRow())
	}
	return e
}

func (e *editor) focusCurrent() tea.Cmd {
	for i := range e.rows {
		e.rows[i].blur()
	}
	if len(e.rows) == 0 {
		return nil
	}
	r := &e.rows[e.row]
	switch e.col {
	case colCourse:
		return r.course.Focus()
	case colDate:
		return r.date.Focus()
	default:
		return r.time.Focus()
	}
}

func (e *editor) addRow() tea.Cmd {
	e.rows = append(e.rows, newEditRow())
	e.row = len(e.rows) - 1
	e.col = colCourse
	return e.focusCurrent()
}

func (e *editor) deleteRow() tea.Cmd {
	if len(e.rows) == 0 {
		return nil
	}
	e.rows = append(e.rows[:e.row], e.rows[e.row+1:]...)
	if e.row >= len(e.rows) {
		e.row = len(e.rows) - 1
	}
	if e.row < 0 {
		e.row = 0
	}
	if len(e.rows) == 0 {
		return nil
	}
	e.col = colCourse
	return e.focusCurrent()
}

// next and prev walk the focus across columns and rows, delegating to the
// multi-field inputs until their inner focus hits a boundary.
func (e *editor) next() tea.Cmd {
	if e.col < colCount-1 {
		e.col++
	} else if e.row < len(e.rows)-1 {
		e.row++
		e.col = colCourse
	} else {
		return nil
	}
	return e.focusCurrent()
}

func (e *editor) prev() tea.Cmd {
	if e.col > colCourse {
		e.col--
	} else if e.row > 0 {
		e.row--
		e.col = colTime
	} else {
		return nil
	}
	return e.focusCurrent()
}

func (e *editor) update(msg tea.Msg) tea.Cmd {
	if len(e.rows) == 0 {
		return nil
	}
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.String() {
		case "tab":
			if e.col == colDate && !e.rows[e.row].date.AtEnd() {
				break // let the date input advance its own subfield
			}
			if e.col == colTime && !e.rows[e.row].time.AtEnd() {
				break
			}
			return e.next()
		case "shift+tab":
			if e.col == colDate && !e.rows[e.row].date.AtStart() {
				break
			}
			if e.col == colTime && !e.rows[e.row].time.AtStart() {
				break
			}
			return e.prev()
		case "up":
			if e.row > 0 {
				e.row--
				return e.focusCurrent()
			}
			return nil
		case "down":
			if e.row < len(e.rows)-1 {
				e.row++
				return e.focusCurrent()
			}
			return nil
		}
	}

	r := &e.rows[e.row]
	var cmd tea.Cmd
	switch e.col {
	case colCourse:
		r.course, cmd = r.course.Update(msg)
	case colDate:
		r.date, cmd = r.date.Update(msg)
	default:
		r.time, cmd = r.time.Update(msg)
	}
	return cmd
}

// collect validates every non-blank row and assembles the records to
// save. When any row is invalid it returns the 1-based indices of the bad
// rows and no records: the batch must not be partially committed.
func (e *editor) collect() ([]model.Deadline, []int) {
	var records []model.Deadline
	var invalid []int

	for i := range e.rows {
		r := &e.rows[i]
		if r.isBlank() {
			continue
		}

		course := strings.TrimSpace(r.course.Value())
		date, dateErr := r.date.Value()
		tod, timeErr := r.time.Value()
		if course == "" || dateErr != nil || timeErr != nil || !jalali.ValidateDate(date) {
			invalid = append(invalid, i+1)
			continue
		}

		records = append(records, model.Deadline{
			Course:  course,
			DueDate: date,
			DueTime: tod,
		})
	}

	if len(invalid) > 0 {
		return nil, invalid
	}
	return records, nil
}

func (e *editor) setInvalid(rows []int) {
	parts := make([]string, len(rows))
	for i, n := range rows {
		parts[i] = fmt.Sprintf("%d", n)
	}
	e.errText = "invalid date/time in row(s): " + strings.Join(parts, ", ")
}

func (e *editor) view() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Manage Deadlines"))
	sb.WriteString("\n\n")
	for i := range e.rows {
		sb.WriteString(e.rows[i].view(i == e.row))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("tab: next field • ctrl+n: new row • ctrl+d: delete row • enter: save all • esc: cancel"))
	if e.errText != "" {
		sb.WriteString("\n" + errorStyle.Render(e.errText))
	}
	return sb.String()
}
