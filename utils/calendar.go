package utils

import (
	"fmt"
	"time"
)

// SaoPauloTZ is the fixed UTC-3 reference offset for all civil dates in the
// system. Brazil no longer observes daylight saving, so the offset never shifts.
var SaoPauloTZ = time.FixedZone("UTC-3", -3*60*60)

// CurrentTime returns the current instant adjusted to the fixed UTC-3 offset.
func CurrentTime() time.Time {
	return time.Now().In(SaoPauloTZ)
}

// CurrentDate returns midnight of today's civil date in the fixed offset.
func CurrentDate() time.Time {
	return StartOfDay(CurrentTime())
}

// StartOfDay returns midnight of t's civil date in the fixed offset.
func StartOfDay(t time.Time) time.Time {
	t = t.In(SaoPauloTZ)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, SaoPauloTZ)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.In(SaoPauloTZ).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekID returns the ISO-8601 week identifier for t, formatted "YYYY-Www".
// Weeks start on Monday; week 1 is the week containing the year's first Thursday.
func WeekID(t time.Time) string {
	year, week := t.In(SaoPauloTZ).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// PreviousWorkday returns the workday immediately before t's civil date:
// the preceding Friday when t is a Monday, otherwise the previous day.
func PreviousWorkday(t time.Time) time.Time {
	d := StartOfDay(t)
	if d.Weekday() == time.Monday {
		return d.AddDate(0, 0, -3)
	}
	return d.AddDate(0, 0, -1)
}

// FormatDay renders a civil date as "2006-01-02".
func FormatDay(t time.Time) string {
	return t.In(SaoPauloTZ).Format("2006-01-02")
}

// FormatTimeBR renders the time-of-day in the Brazilian "HH:MM:SS" style.
func FormatTimeBR(t time.Time) string {
	return t.In(SaoPauloTZ).Format("15:04:05")
}

// FormatDateBR renders the date in the Brazilian "DD/MM/YYYY" style.
func FormatDateBR(t time.Time) string {
	return t.In(SaoPauloTZ).Format("02/01/2006")
}
