package onboarding

import (
	"fmt"
	"time"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday midnight of the calendar week containing t.
func StartOfWeek(t time.Time) time.Time {
	start := StartOfDay(t)
	// In Go, Monday == 1 and Sunday == 0.
	offset := (int(start.Weekday()) + 6) % 7
	return start.AddDate(0, 0, -offset)
}

// SameDay reports whether a and b fall on the same calendar day, evaluated in
// b's location. Time of day is ignored.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ArrivesThisWeek reports whether arrival falls inside the Monday-to-Sunday
// week containing now.
func ArrivesThisWeek(arrival, now time.Time) bool {
	weekStart := StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	arrival = arrival.In(now.Location())
	return !arrival.Before(weekStart) && arrival.Before(weekEnd)
}

// ArrivesTomorrow reports whether arrival falls on the calendar day after now.
func ArrivesTomorrow(arrival, now time.Time) bool {
	return SameDay(arrival, StartOfDay(now).AddDate(0, 0, 1))
}

// FormatWeek renders the ISO week containing t as "2006-W02".
func FormatWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeek resolves a "2006-W02" ISO week reference to the Monday midnight
// of that week, in the supplied location.
func ParseWeek(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var year, week int
	if _, err := fmt.Sscanf(value, "%d-W%d", &year, &week); err != nil {
		return time.Time{}, fmt.Errorf("invalid week reference %q: %w", value, err)
	}
	if week < 1 || week > 53 {
		return time.Time{}, fmt.Errorf("invalid week reference %q: week out of range", value)
	}

	// January 4th always belongs to ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	mondayOfWeek1 := StartOfWeek(jan4)
	return mondayOfWeek1.AddDate(0, 0, (week-1)*7), nil
}
