package utils

import (
	"fmt"
	"time"
)

// dateLayouts are tried in order when a label or CSV cell is parsed as a date.
var dateLayouts = []string{
	ShortDashDateLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	ShortSlashDateLayout,
	"02-Jan-2006",
	"02/01/2006",
}

func GenerateDates(startDate, endDate time.Time, interval time.Duration) ([]time.Time, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("endDate must be after startDate")
	}

	var dates []time.Time
	for currentDate := startDate; currentDate.Before(endDate) || currentDate.Equal(endDate); currentDate = currentDate.Add(interval) {
		dates = append(dates, currentDate)
	}

	return dates, nil
}

// ParseDate parses s with the first matching layout in dateLayouts.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q: %w", s, lastErr)
}

// MonthStart truncates t to midnight on the first day of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns midnight on the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// DayStart truncates t to midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDayMonth renders a date label as "02-Jan". Labels that are not dates
// are returned unchanged.
func FormatDayMonth(label string) string {
	t, err := ParseDate(label)
	if err != nil {
		return label
	}
	return t.Format(DayMonthLayout)
}

// CalendarOrder gives the sort key of a calendar position, ignoring the year.
func CalendarOrder(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}
