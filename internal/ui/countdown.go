package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
)

// tierColors maps urgency tiers to terminal colors, most urgent last,
// mirroring the original widget's green-to-red banding.
var tierColors = map[model.Tier]string{
	model.TierSafe:     "34",  // green
	model.Tier12:       "112", // light green
	model.Tier10:       "148", // yellow green
	model.Tier8:        "226", // yellow
	model.Tier6:        "220", // gold
	model.Tier4:        "214", // orange
	model.Tier2:        "202", // orange red
	model.TierCritical: "196", // red
	model.TierDone:     "241", // neutral gray
}

// board is the keyed registry behind the countdown view: one row per
// visible course. A full rebuild replaces the whole registry; a tick
// update only refreshes rows already present and retracts vanished keys.
type board struct {
	order  []string
	rows   map[string]model.Row
	cursor int
}

// BuildRows derives display rows from the stored records at instant now.
// Records that fail to parse are logged and skipped so one corrupt row
// never hides the rest; the result is sorted for display.
func BuildRows(records []model.Deadline, now time.Time, log *zap.SugaredLogger) []model.Row {
	rows := make([]model.Row, 0, len(records))
	for _, d := range records {
		c, err := d.Compute(now)
		if err != nil {
			log.Warnw("skipping unparseable deadline",
				"course", d.Course, "date", d.DueDate, "time", d.DueTime, "error", err)
			continue
		}
		rows = append(rows, model.Row{Deadline: d, Countdown: c})
	}
	model.SortRows(rows)
	return rows
}

// rebuild replaces the registry contents. The cursor is clamped so it
// stays on a row after shrinking.
func (b *board) rebuild(rows []model.Row) {
	b.order = b.order[:0]
	b.rows = make(map[string]model.Row, len(rows))
	for _, r := range rows {
		b.order = append(b.order, r.Deadline.Course)
		b.rows[r.Deadline.Course] = r
	}
	b.clampCursor()
}

// tick refreshes rows in place from the freshly loaded records. Keys no
// longer present are retracted; new keys are deliberately not picked up
// here, they appear on the next full rebuild.
func (b *board) tick(records []model.Deadline, now time.Time) {
	byCourse := make(map[string]model.Deadline, len(records))
	for _, d := range records {
		byCourse[d.Course] = d
	}

	kept := b.order[:0]
	for _, course := range b.order {
		d, ok := byCourse[course]
		if !ok {
			delete(b.rows, course)
			continue
		}
		c, err := d.Compute(now)
		if err != nil {
			delete(b.rows, course)
			continue
		}
		b.rows[course] = model.Row{Deadline: d, Countdown: c}
		kept = append(kept, course)
	}
	b.order = kept
	b.clampCursor()
}

func (b *board) clampCursor() {
	if b.cursor >= len(b.order) {
		b.cursor = len(b.order) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *board) selected() (model.Row, bool) {
	if len(b.order) == 0 {
		return model.Row{}, false
	}
	return b.rows[b.order[b.cursor]], true
}

func (b *board) moveCursor(delta int) {
	b.cursor += delta
	b.clampCursor()
}

func (b *board) len() int { return len(b.order) }

// view renders the countdown list: one colored "countdown | date | course"
// line and an elapsed-fraction bar per deadline.
func (b *board) view(width int) string {
	if len(b.order) == 0 {
		return statusStyle.Render("no deadlines yet, press e to add some")
	}

	barWidth := width - 4
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}

	var out string
	for i, course := range b.order {
		r := b.rows[course]
		tier := model.UrgencyTier(r.Countdown.DaysRemaining, r.Deadline.Completed)
		color := tierColors[tier]

		line := r.Countdown.Label + " | " + r.Deadline.DueDate + " | " + r.Deadline.Course
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if r.Countdown.Expired && !r.Deadline.Completed {
			style = style.Strikethrough(true).Italic(true).Foreground(lipgloss.Color("241"))
		}
		if r.Deadline.Completed {
			style = style.Strikethrough(true)
		}

		cursor := "  "
		if i == b.cursor {
			cursor = "> "
		}

		bar := progress.New(progress.WithSolidFill(ansiToHex(color)))
		bar.Width = barWidth
		bar.ShowPercentage = false

		out += cursor + style.Render(line) + "\n"
		out += "  " + bar.ViewAs(float64(r.Countdown.Progress)/100) + "\n"
	}
	return out
}

// ansiToHex maps the tier palette to hex values for the progress fill,
// which only accepts full colors.
func ansiToHex(ansi string) string {
	switch ansi {
	case "34":
		return "#00af00"
	case "112":
		return "#87d700"
	case "148":
		return "#afd700"
	case "226":
		return "#ffff00"
	case "220":
		return "#ffd700"
	case "214":
		return "#ffaf00"
	case "202":
		return "#ff5f00"
	case "196":
		return "#ff0000"
	default:
		return "#626262"
	}
}
