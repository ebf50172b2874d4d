package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/YaserZarifi/Deadline-Countdown/internal/jalali"
)

// FinishedLabel is the fixed countdown text shown once a deadline has passed.
const FinishedLabel = "پایان یافته"

// Deadline represents a single tracked deadline as stored on disk.
type Deadline struct {
	Course    string
	DueDate   string // Jalali day, "YYYY-MM-DD"
	DueTime   string // "HH:MM:SS"
	Completed bool
}

// deadlineDoc is the legacy persisted shape: the completed flag is a "0"/"1"
// string so existing documents keep loading byte-for-byte.
type deadlineDoc struct {
	Course  string `json:"course"`
	Date    string `json:"deadline_shamsi"`
	Time    string `json:"deadline_time"`
	Checked string `json:"checked"`
}

func (d Deadline) MarshalJSON() ([]byte, error) {
	checked := "0"
	if d.Completed {
		checked = "1"
	}
	return json.Marshal(deadlineDoc{
		Course:  d.Course,
		Date:    d.DueDate,
		Time:    d.DueTime,
		Checked: checked,
	})
}

func (d *Deadline) UnmarshalJSON(data []byte) error {
	var doc deadlineDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	d.Course = doc.Course
	d.DueDate = doc.Date
	d.DueTime = doc.Time
	d.Completed = doc.Checked == "1"
	return nil
}

// Countdown is the per-tick derived state of a deadline. It is never persisted.
type Countdown struct {
	Remaining     time.Duration
	Expired       bool
	DaysRemaining int
	// Progress is the elapsed share of the window from start of today to the
	// due instant, in percent, clamped to [0,100].
	Progress int
	Label    string
}

// Compute derives the countdown state of d at instant now. An unparseable
// date or time returns an error so the caller can skip the record.
func (d Deadline) Compute(now time.Time) (Countdown, error) {
	due, err := jalali.ParseDateTime(d.DueDate, d.DueTime)
	if err != nil {
		return Countdown{}, err
	}

	remaining := int64(due.Sub(now).Seconds())
	windowTotal := int64(due.Sub(jalali.StartOfDay(now)).Seconds())
	elapsed := windowTotal - remaining

	progress := 100
	if windowTotal > 0 {
		progress = int(math.Round(100 * float64(elapsed) / float64(windowTotal)))
		if progress < 0 {
			progress = 0
		} else if progress > 100 {
			progress = 100
		}
	}

	c := Countdown{
		Remaining: time.Duration(remaining) * time.Second,
		Progress:  progress,
	}
	if remaining < 0 {
		c.Expired = true
		c.Label = FinishedLabel
		return c, nil
	}

	c.DaysRemaining = int(remaining / 86400)
	c.Label = fmt.Sprintf("%d:%02d:%02d:%02d",
		remaining/86400,
		(remaining%86400)/3600,
		(remaining%3600)/60,
		remaining%60,
	)
	return c, nil
}

// Tier is an urgency band derived from the days left until a deadline.
// Lower values are more urgent; TierDone marks completed records.
type Tier int

const (
	TierCritical Tier = iota // <= 2 days
	Tier2                    // > 2
	Tier4                    // > 4
	Tier6                    // > 6
	Tier8                    // > 8
	Tier10                   // > 10
	Tier12                   // > 12
	TierSafe                 // > 14
	TierDone
)

// UrgencyTier maps days remaining (and the completed flag) to a Tier.
func UrgencyTier(days int, completed bool) Tier {
	if completed {
		return TierDone
	}
	switch {
	case days > 14:
		return TierSafe
	case days > 12:
		return Tier12
	case days > 10:
		return Tier10
	case days > 8:
		return Tier8
	case days > 6:
		return Tier6
	case days > 4:
		return Tier4
	case days > 2:
		return Tier2
	default:
		return TierCritical
	}
}

// Row is the presentation-facing pairing of a deadline and its derived
// countdown, as handed to the renderer.
type Row struct {
	Deadline  Deadline
	Countdown Countdown
}

// SortRows orders rows for display: incomplete first, then soonest-due.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Deadline.Completed != b.Deadline.Completed {
			return !a.Deadline.Completed
		}
		return a.Countdown.DaysRemaining < b.Countdown.DaysRemaining
	})
}
