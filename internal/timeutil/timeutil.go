// Package timeutil holds the date handling shared by snapshot files, which
// are named by the UTC day they were written.
package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDate reports whether value is a well-formed YYYY-MM-DD date.
func IsDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// DaysBetween counts whole UTC days from earlier to later.
func DaysBetween(earlier, later time.Time) int {
	a := time.Date(earlier.UTC().Year(), earlier.UTC().Month(), earlier.UTC().Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(later.UTC().Year(), later.UTC().Month(), later.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
