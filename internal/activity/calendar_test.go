package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFill(t *testing.T) {
	series := []Record{
		{Date: "2024-01-02", Count: 3, Level: 4},
		{Date: "2023-12-25", Count: 9, Level: 4}, // outside range
	}

	got := Fill(series, day("2024-01-01"), day("2024-01-03"))

	assert.Equal(t, []Record{
		{Date: "2024-01-01"},
		{Date: "2024-01-02", Count: 3, Level: 4},
		{Date: "2024-01-03"},
	}, got)
}

func TestFill_InvertedRange(t *testing.T) {
	assert.Nil(t, Fill(nil, day("2024-01-05"), day("2024-01-01")))
}

func TestFill_IgnoresTimeOfDay(t *testing.T) {
	from := day("2024-02-28").Add(23 * time.Hour)
	to := day("2024-03-01").Add(time.Hour)

	got := Fill(nil, from, to)

	require.Len(t, got, 3) // 2024 is a leap year
	assert.Equal(t, "2024-02-29", got[1].Date)
}

func TestWeeks(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	days := Fill(nil, day("2024-01-03"), day("2024-01-13"))

	weeks := Weeks(days)

	require.Len(t, weeks, 2)
	require.Len(t, weeks[0], 7)
	assert.Equal(t, "", weeks[0][0].Date, "Sunday padding")
	assert.Equal(t, "", weeks[0][2].Date, "Tuesday padding")
	assert.Equal(t, "2024-01-03", weeks[0][3].Date)
	assert.Equal(t, "2024-01-06", weeks[0][6].Date)
	assert.Equal(t, "2024-01-07", weeks[1][0].Date)
	assert.Len(t, weeks[1], 7)
}

func TestWeeks_Empty(t *testing.T) {
	assert.Nil(t, Weeks(nil))
}
