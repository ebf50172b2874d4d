// Package jalali holds the calendar and time-of-day arithmetic for the
// Jalali (Shamsi) calendar used by every stored date in this app.
package jalali

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// ValidateTime reports whether hour and minute form a valid 24-hour
// time of day. Non-numeric input is simply invalid.
func ValidateTime(hour, minute string) bool {
	h, err := strconv.Atoi(strings.TrimSpace(hour))
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(strings.TrimSpace(minute))
	if err != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// ValidateDate reports whether date is a real Jalali calendar day written
// as exactly three dash-separated integers (e.g. "1403-04-20").
func ValidateDate(date string) bool {
	y, m, d, ok := splitDate(date)
	if !ok {
		return false
	}
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	// ptime normalizes out-of-range components the way time.Date does, so
	// an impossible day (Esfand 30th of a common year) survives construction
	// but lands on a different calendar day. Round-trip to catch it.
	t := ptime.Date(y, ptime.Month(m), d, 0, 0, 0, 0, time.Local)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// ValidateClock reports whether tod is a valid stored "HH:MM:SS" time of day.
func ValidateClock(tod string) bool {
	_, _, _, err := splitTime(tod)
	return err == nil
}

// ParseDateTime parses a stored Jalali date plus a "HH:MM:SS" time of day
// into the Gregorian instant it denotes, in the local time zone.
func ParseDateTime(date, tod string) (time.Time, error) {
	y, m, d, ok := splitDate(date)
	if !ok || !ValidateDate(date) {
		return time.Time{}, fmt.Errorf("invalid jalali date %q", date)
	}
	hh, mm, ss, err := splitTime(tod)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", tod, err)
	}
	return ptime.Date(y, ptime.Month(m), d, hh, mm, ss, 0, time.Local).Time(), nil
}

// StartOfDay returns midnight of the Jalali day containing now.
func StartOfDay(now time.Time) time.Time {
	p := ptime.New(now)
	return ptime.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, now.Location()).Time()
}

// Today returns the canonical day string of the Jalali day containing now.
func Today(now time.Time) string {
	return FormatDate(now)
}

// FormatDate renders t's Jalali calendar day as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	p := ptime.New(t)
	return fmt.Sprintf("%04d-%02d-%02d", p.Year(), int(p.Month()), p.Day())
}

// AddDays returns the canonical day string n Jalali days after day.
// day must be a valid Jalali day; the zero string is returned otherwise.
func AddDays(day string, n int) string {
	if !ValidateDate(day) {
		return ""
	}
	y, m, d, _ := splitDate(day)
	t := ptime.Date(y, ptime.Month(m), d, 12, 0, 0, 0, time.Local).Time()
	return FormatDate(t.AddDate(0, 0, n))
}

func splitDate(date string) (y, m, d int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}

func splitTime(tod string) (hh, mm, ss int, err error) {
	parts := strings.Split(tod, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("want HH:MM:SS, got %q", tod)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, convErr
		}
		nums[i] = n
	}
	hh, mm, ss = nums[0], nums[1], nums[2]
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 || ss < 0 || ss > 59 {
		return 0, 0, 0, fmt.Errorf("out of range: %q", tod)
	}
	return hh, mm, ss, nil
}
