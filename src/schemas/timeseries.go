package schemas

import (
	"math"
	"time"
)

// Observation is one dated value. A NaN Value marks a missing observation.
type Observation struct {
	Date  time.Time
	Value float64
}

// TimeSeries is a named sequence of observations with strictly increasing dates.
type TimeSeries struct {
	Name         string
	Observations []Observation
}

func NewTimeSeries(name string, dates []time.Time, values []float64) TimeSeries {
	n := len(dates)
	if len(values) < n {
		n = len(values)
	}
	observations := make([]Observation, n)
	for i := 0; i < n; i++ {
		observations[i] = Observation{Date: dates[i], Value: values[i]}
	}
	return TimeSeries{Name: name, Observations: observations}
}

func (ts TimeSeries) Len() int {
	return len(ts.Observations)
}

func (ts TimeSeries) Empty() bool {
	return len(ts.Observations) == 0
}

// First returns the earliest observation. It panics on an empty series.
func (ts TimeSeries) First() Observation {
	return ts.Observations[0]
}

// Last returns the latest observation. It panics on an empty series.
func (ts TimeSeries) Last() Observation {
	return ts.Observations[len(ts.Observations)-1]
}

func (ts TimeSeries) Dates() []time.Time {
	dates := make([]time.Time, len(ts.Observations))
	for i, o := range ts.Observations {
		dates[i] = o.Date
	}
	return dates
}

func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts.Observations))
	for i, o := range ts.Observations {
		values[i] = o.Value
	}
	return values
}

// DropNA returns a copy without missing observations.
func (ts TimeSeries) DropNA() TimeSeries {
	kept := make([]Observation, 0, len(ts.Observations))
	for _, o := range ts.Observations {
		if !math.IsNaN(o.Value) {
			kept = append(kept, o)
		}
	}
	return TimeSeries{Name: ts.Name, Observations: kept}
}
