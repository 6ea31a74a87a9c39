package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20|21)[0-9]{2})(?:[^0-9]|$)`)

// FindYear infers the calendar year a column label refers to. It understands
// bare years ("2021"), labels containing a year ("Cal 2021", "2021 fwd") and
// dates ("2021-03-01").
func FindYear(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}
	if t, err := ParseDate(label); err == nil {
		return t.Year(), true
	}
	match := yearPattern.FindStringSubmatch(label)
	if match == nil {
		return 0, false
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// FindYears maps every label with a detectable year to that year. Labels
// without one are left out.
func FindYears(labels []string) map[string]int {
	years := make(map[string]int, len(labels))
	for _, label := range labels {
		if year, ok := FindYear(label); ok {
			years[label] = year
		}
	}
	return years
}

// YearOffsets maps every label with a detectable year to year - currentYear.
func YearOffsets(labels []string, currentYear int) map[string]int {
	offsets := make(map[string]int, len(labels))
	for label, year := range FindYears(labels) {
		offsets[label] = year - currentYear
	}
	return offsets
}
