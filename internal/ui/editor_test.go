package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaserZarifi/Deadline-Countdown/internal/model"
)

func TestEditorCollectRoundTrip(t *testing.T) {
	records := []model.Deadline{
		{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00"},
		{Course: "DB", DueDate: "1403-05-01", DueTime: "08:30:00"},
	}
	e := newEditor(records)

	got, invalid := e.collect()
	require.Nil(t, invalid)
	require.Len(t, got, 2)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[1], got[1])
}

func TestEditorCollectReportsInvalidRows(t *testing.T) {
	e := newEditor(nil)
	e.rows[0].course.SetValue("OS")
	e.rows[0].date.SetValue("1403-13-40")
	e.addRow()
	e.rows[1].course.SetValue("DB")
	e.rows[1].date.SetValue("1403-05-01")
	e.rows[1].time.SetValue("99:00:00")
	e.addRow()
	e.rows[2].course.SetValue("AI")
	e.rows[2].date.SetValue("1403-04-25")

	got, invalid := e.collect()
	assert.Nil(t, got, "an invalid batch must not commit anything")
	assert.Equal(t, []int{1, 2}, invalid)

	e.setInvalid(invalid)
	assert.Contains(t, e.errText, "1, 2")
}

func TestEditorSkipsBlankRows(t *testing.T) {
	e := newEditor(nil) // starts with one blank row
	e.addRow()
	e.rows[1].course.SetValue("OS")
	e.rows[1].date.SetValue("1403-04-20")

	got, invalid := e.collect()
	require.Nil(t, invalid)
	require.Len(t, got, 1)
	assert.Equal(t, "OS", got[0].Course)
	assert.Equal(t, "00:00:00", got[0].DueTime, "blank time means midnight")
}

func TestEditorRowManagement(t *testing.T) {
	e := newEditor([]model.Deadline{
		{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00"},
	})
	require.Len(t, e.rows, 1)

	e.addRow()
	assert.Len(t, e.rows, 2)
	assert.Equal(t, 1, e.row)

	e.deleteRow()
	assert.Len(t, e.rows, 1)
	assert.Equal(t, 0, e.row)

	e.deleteRow()
	assert.Empty(t, e.rows)
	got, invalid := e.collect()
	assert.Nil(t, invalid)
	assert.Empty(t, got)
}

func TestEditorFocusTraversal(t *testing.T) {
	e := newEditor([]model.Deadline{
		{Course: "OS", DueDate: "1403-04-20", DueTime: "14:00:00"},
		{Course: "DB", DueDate: "1403-05-01", DueTime: "08:30:00"},
	})
	e.focusCurrent()

	e.next()
	assert.Equal(t, colDate, e.col)
	e.next()
	assert.Equal(t, colTime, e.col)
	e.next()
	assert.Equal(t, 1, e.row)
	assert.Equal(t, colCourse, e.col)

	e.prev()
	assert.Equal(t, 0, e.row)
	assert.Equal(t, colTime, e.col)
}
