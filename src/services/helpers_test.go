package services_test

import (
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/services"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// monthlySeries builds n month-start observations from start, valued by fn.
func monthlySeries(name string, start time.Time, n int, fn func(time.Time) float64) schemas.TimeSeries {
	ts := schemas.TimeSeries{Name: name}
	for i := 0; i < n; i++ {
		d := start.AddDate(0, i, 0)
		ts.Observations = append(ts.Observations, schemas.Observation{Date: d, Value: fn(d)})
	}
	return ts
}

// dailySeries builds one observation per day between from and to inclusive,
// skipping weekends when businessDays is set.
func dailySeries(name string, from, to time.Time, businessDays bool, fn func(time.Time) float64) schemas.TimeSeries {
	ts := schemas.TimeSeries{Name: name}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if businessDays && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		ts.Observations = append(ts.Observations, schemas.Observation{Date: d, Value: fn(d)})
	}
	return ts
}

func newSeasonalService() *services.SeasonalService {
	return services.NewSeasonalService(config.DefaultConfig().Seasonal)
}
