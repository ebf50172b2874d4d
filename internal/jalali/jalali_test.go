package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTime(t *testing.T) {
	cases := []struct {
		hour, minute string
		want         bool
	}{
		{"23", "59", true},
		{"0", "0", true},
		{"00", "30", true},
		{"24", "00", false},
		{"-1", "30", false},
		{"12", "60", false},
		{"ab", "30", false},
		{"12", "", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ValidateTime(c.hour, c.minute), "%s:%s", c.hour, c.minute)
	}
}

func TestValidateDate(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"1403-04-20", true},
		{"1403-12-30", true},  // 1403 is a leap year
		{"1404-12-30", false}, // 1404 is not
		{"1403-01-31", true},
		{"1403-07-31", false}, // Mehr has 30 days
		{"1403-13-01", false},
		{"1403-00-10", false},
		{"1403-13-40", false},
		{"1403-4-20-1", false},
		{"1403/04/20", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ValidateDate(c.date), c.date)
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	due, err := ParseDateTime("1403-04-20", "14:30:00")
	require.NoError(t, err)
	assert.Equal(t, "1403-04-20", FormatDate(due))
	assert.Equal(t, 14, due.Hour())
	assert.Equal(t, 30, due.Minute())
}

func TestParseDateTimeRejectsGarbage(t *testing.T) {
	for _, c := range [][2]string{
		{"1403-13-40", "10:00:00"},
		{"1403-04-20", "25:00:00"},
		{"1403-04-20", "10:00"},
		{"1403-04-20", "aa:bb:cc"},
	} {
		_, err := ParseDateTime(c[0], c[1])
		assert.Error(t, err, "%s %s", c[0], c[1])
	}
}

func TestStartOfDay(t *testing.T) {
	due, err := ParseDateTime("1403-04-20", "14:30:00")
	require.NoError(t, err)

	start := StartOfDay(due)
	assert.Equal(t, "1403-04-20", FormatDate(start))
	assert.Equal(t, time.Duration(14*time.Hour+30*time.Minute), due.Sub(start))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "1403-05-01", AddDays("1403-04-31", 1)) // Tir has 31 days
	assert.Equal(t, "1403-04-30", AddDays("1403-05-01", -2))
	assert.Equal(t, "", AddDays("bogus", 1))
	assert.Equal(t, "", AddDays("1403-13-40", 1), "an impossible day must not be normalized")
}

func TestTodayTracksNow(t *testing.T) {
	now := time.Now()
	assert.Equal(t, FormatDate(now), Today(now))
}
