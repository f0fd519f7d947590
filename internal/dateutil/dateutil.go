// Package dateutil parses the date arguments the CLI accepts: absolute
// YYYY-MM-DD dates, relative keywords, and validated date ranges.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot book in the past")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange is a validated inclusive date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates a start/end pair. An empty start means today; an
// empty end collapses the range to the start day.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		if end, err = ParseDate(endDate); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD date. Empty input means today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseRelativeDate resolves a date argument against a reference day.
// Accepted forms, case-insensitive: "" or "today", "tomorrow", "next-week"
// (same weekday plus seven days), a weekday name or "next-"weekday (the next
// future occurrence, never today), and absolute YYYY-MM-DD. Absolute dates
// before the reference day return ErrDateInPast.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)

	switch input := strings.ToLower(strings.TrimSpace(s)); {
	case input == "" || input == "today":
		return today, nil
	case input == "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case input == "next-week":
		return today.AddDate(0, 0, 7), nil
	default:
		name := strings.TrimPrefix(input, "next-")
		if day, ok := weekdays[name]; ok {
			return nextWeekday(today, day), nil
		}

		t, err := time.Parse(dayFormat, input)
		if err != nil {
			return time.Time{}, ErrInvalidDateFormat
		}
		if t.Before(today) {
			return time.Time{}, ErrDateInPast
		}
		return t, nil
	}
}

// nextWeekday returns the next occurrence of target strictly after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := (int(target) - int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, days+1)
}
