package schemas

import (
	"image/color"

	"github.com/go-gota/gota/dataframe"
)

// Frequency is the sampling interval detected for a series.
type Frequency int

const (
	FrequencyUnknown Frequency = iota
	FrequencyDaily
	FrequencyWeekly
	FrequencyMonthly
)

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// StyleRecord is the line styling for one year. Hidden is advisory: the line
// starts switched off but the data is still plotted.
type StyleRecord struct {
	Colour string
	RGBA   color.RGBA
	Width  int
	Hidden bool
}

// YearRange is an inclusive span of calendar years.
type YearRange struct {
	Start int
	End   int
}

// LastNYears is the n complete years before currentYear.
func LastNYears(n, currentYear int) YearRange {
	return YearRange{Start: currentYear - n, End: currentYear - 1}
}

func BetweenYears(start, end int) YearRange {
	if start > end {
		start, end = end, start
	}
	return YearRange{Start: start, End: end}
}

func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// MinMaxBand holds per-row extremes over a set of year columns.
type MinMaxBand struct {
	Frame   dataframe.DataFrame
	Years   int
	Columns []string
}

// Trace is one line of a seasonal chart.
type Trace struct {
	Name   string
	X      []string
	Y      []float64
	Style  StyleRecord
	Dashed bool
}

type SeasonalChart struct {
	Title     string
	Frequency Frequency
	Traces    []Trace
}

type SeasonalReport struct {
	Chart   *SeasonalChart
	Summary *dataframe.DataFrame
	Band    *MinMaxBand
}
