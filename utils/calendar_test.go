package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, SaoPauloTZ)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(civil(2025, time.January, 4)))  // Saturday
	assert.True(t, IsWeekend(civil(2025, time.January, 5)))  // Sunday
	assert.False(t, IsWeekend(civil(2025, time.January, 6))) // Monday
	assert.False(t, IsWeekend(civil(2025, time.January, 10)))
}

func TestIsWeekendRespectsOffset(t *testing.T) {
	// Saturday 01:30 UTC is still Friday evening at UTC-3.
	fridayNight := time.Date(2025, time.January, 4, 1, 30, 0, 0, time.UTC)
	assert.False(t, IsWeekend(fridayNight))
}

func TestWeekID(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{civil(2025, time.January, 6), "2025-W02"},
		{civil(2025, time.June, 18), "2025-W25"},
		// ISO week 1 of 2025 starts on Monday Dec 30, 2024.
		{civil(2024, time.December, 30), "2025-W01"},
		// Jan 1, 2023 is a Sunday and belongs to the previous ISO year.
		{civil(2023, time.January, 1), "2022-W52"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekID(tc.date), "date %s", tc.date)
	}
}

func TestStartOfDay(t *testing.T) {
	late := time.Date(2025, time.March, 12, 23, 59, 59, 0, SaoPauloTZ)
	got := StartOfDay(late)
	assert.Equal(t, "2025-03-12", FormatDay(got))
	assert.Equal(t, 0, got.Hour())

	// 01:30 UTC converts to the previous civil day at UTC-3.
	utc := time.Date(2025, time.March, 12, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11", FormatDay(StartOfDay(utc)))
}

func TestPreviousWorkday(t *testing.T) {
	monday := civil(2025, time.January, 6)
	assert.Equal(t, "2025-01-03", FormatDay(PreviousWorkday(monday))) // Friday

	wednesday := civil(2025, time.January, 8)
	assert.Equal(t, "2025-01-07", FormatDay(PreviousWorkday(wednesday)))
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2025, time.July, 9, 14, 5, 30, 0, SaoPauloTZ)
	assert.Equal(t, "2025-07-09", FormatDay(ts))
	assert.Equal(t, "14:05:30", FormatTimeBR(ts))
	assert.Equal(t, "09/07/2025", FormatDateBR(ts))
}
