// Package report renders plain-text views of the deadline list for use
// outside the TUI (clipboard export, one-shot printing).
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
)

// Summary returns a text table of all deadlines with their countdown state
// at instant now, sorted the same way the widget displays them. Records
// that fail to parse are listed at the bottom rather than dropped, so an
// exported summary never hides data.
func Summary(records []model.Deadline, now time.Time) string {
	var rows []model.Row
	var broken []model.Deadline
	for _, d := range records {
		c, err := d.Compute(now)
		if err != nil {
			broken = append(broken, d)
			continue
		}
		rows = append(rows, model.Row{Deadline: d, Countdown: c})
	}
	model.SortRows(rows)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Deadlines as of %s\n\n", jalali.Today(now)))

	if len(rows) == 0 && len(broken) == 0 {
		sb.WriteString("(no deadlines)\n")
		return sb.String()
	}

	for _, r := range rows {
		mark := "[ ]"
		if r.Deadline.Completed {
			mark = "[x]"
		}
		sb.WriteString(fmt.Sprintf("%s %s | %s %s | %s (%d%%)\n",
			mark,
			r.Countdown.Label,
			r.Deadline.DueDate,
			r.Deadline.DueTime,
			r.Deadline.Course,
			r.Countdown.Progress,
		))
	}

	if len(broken) > 0 {
		sb.WriteString("\nunreadable entries:\n")
		for _, d := range broken {
			sb.WriteString(fmt.Sprintf("- %s (%s %s)\n", d.Course, d.DueDate, d.DueTime))
		}
	}
	return sb.String()
}
