package services

import (
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

type SeasonalServiceI interface {
	InferFrequency(ts schemas.TimeSeries) schemas.Frequency
	Seasonalise(ctx context.Context, ts schemas.TimeSeries) (*dataframe.DataFrame, error)
	SeasonaliseAs(ctx context.Context, ts schemas.TimeSeries, freq schemas.Frequency) (*dataframe.DataFrame, error)
	SeasonaliseFilled(ctx context.Context, ts schemas.TimeSeries) (*dataframe.DataFrame, error)
	FillGaps(df dataframe.DataFrame, freq schemas.Frequency) dataframe.DataFrame
	FormatForward(fwd schemas.TimeSeries, lastHistorical time.Time) schemas.TimeSeries
	ResampleMonthly(ts schemas.TimeSeries) schemas.TimeSeries
	Concat(hist, fwd schemas.TimeSeries) schemas.TimeSeries
}

type SeasonalService struct {
	dailyFillLimit  int
	weeklyFillLimit int
}

func NewSeasonalService(cfg config.SeasonalConfig) *SeasonalService {
	if cfg.DailyFillLimit <= 0 {
		cfg.DailyFillLimit = 4
	}
	if cfg.WeeklyFillLimit <= 0 {
		cfg.WeeklyFillLimit = 7
	}
	return &SeasonalService{
		dailyFillLimit:  cfg.DailyFillLimit,
		weeklyFillLimit: cfg.WeeklyFillLimit,
	}
}

// InferFrequency classifies the sampling interval of ts. Series on the first
// of consecutive months are monthly; otherwise the median gap decides.
func (ss *SeasonalService) InferFrequency(ts schemas.TimeSeries) schemas.Frequency {
	if ts.Len() < 2 {
		return schemas.FrequencyUnknown
	}
	if ss.isMonthStart(ts) {
		return schemas.FrequencyMonthly
	}

	gaps := make([]float64, 0, ts.Len()-1)
	for i := 1; i < ts.Len(); i++ {
		gap := ts.Observations[i].Date.Sub(ts.Observations[i-1].Date).Hours() / 24
		gaps = append(gaps, gap)
	}
	sort.Float64s(gaps)
	median := stat.Quantile(0.5, stat.Empirical, gaps, nil)

	switch {
	case median <= 0:
		return schemas.FrequencyUnknown
	case median < 4.5:
		// business-day series have a median gap of one day
		return schemas.FrequencyDaily
	case median < 10.5:
		return schemas.FrequencyWeekly
	case median >= 26 && median <= 32:
		return schemas.FrequencyMonthly
	default:
		return schemas.FrequencyUnknown
	}
}

func (ss *SeasonalService) isMonthStart(ts schemas.TimeSeries) bool {
	prev := -1
	for _, o := range ts.Observations {
		if o.Date.Day() != 1 {
			return false
		}
		month := o.Date.Year()*12 + int(o.Date.Month())
		if prev >= 0 && month != prev+1 {
			return false
		}
		prev = month
	}
	return true
}

// Seasonalise reshapes ts into one column per calendar year, rows aligned by
// calendar position.
func (ss *SeasonalService) Seasonalise(ctx context.Context, ts schemas.TimeSeries) (*dataframe.DataFrame, error) {
	return ss.SeasonaliseAs(ctx, ts, ss.InferFrequency(ts))
}

// SeasonaliseAs is Seasonalise with a known frequency. Monthly data is indexed
// by month name, everything else by day and month.
func (ss *SeasonalService) SeasonaliseAs(ctx context.Context, ts schemas.TimeSeries, freq schemas.Frequency) (*dataframe.DataFrame, error) {
	logger := utils.LoggerFromContext(ctx)

	// calendar position key -> row label, shared by every year
	positions := map[int]string{}
	valuesByYear := map[int]map[int]float64{}
	for _, o := range ts.Observations {
		key, label := ss.calendarPosition(o.Date, freq)
		positions[key] = label
		if _, ok := valuesByYear[o.Date.Year()]; !ok {
			valuesByYear[o.Date.Year()] = map[int]float64{}
		}
		valuesByYear[o.Date.Year()][key] = o.Value
	}

	keys := make([]int, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	labels := make([]string, len(keys))
	for i, key := range keys {
		labels[i] = positions[key]
	}

	// one column per year, oldest first
	years := make([]int, 0, len(valuesByYear))
	for year := range valuesByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	df := utils.NewPositionFrame(labels)
	for _, year := range years {
		column := make([]float64, len(keys))
		for i, key := range keys {
			value, ok := valuesByYear[year][key]
			if !ok {
				value = math.NaN()
			}
			column[i] = value
		}
		df = utils.WithFloatColumn(df, strconv.Itoa(year), column)
	}
	if df.Err != nil {
		return nil, df.Err
	}

	logger.WithFields(logrus.Fields{
		"series":    ts.Name,
		"frequency": freq.String(),
		"rows":      len(labels),
		"years":     len(years),
	}).Debug("seasonalised series")

	return &df, nil
}

func (ss *SeasonalService) calendarPosition(date time.Time, freq schemas.Frequency) (int, string) {
	if freq == schemas.FrequencyMonthly {
		return int(date.Month()) * 100, date.Format(utils.MonthLayout)
	}
	return utils.CalendarOrder(date), date.Format(utils.DayMonthLayout)
}

// SeasonaliseFilled seasonalises ts and bridges short gaps for its frequency.
func (ss *SeasonalService) SeasonaliseFilled(ctx context.Context, ts schemas.TimeSeries) (*dataframe.DataFrame, error) {
	freq := ss.InferFrequency(ts)
	df, err := ss.SeasonaliseAs(ctx, ts, freq)
	if err != nil {
		return nil, err
	}
	filled := ss.FillGaps(*df, freq)
	return &filled, nil
}

// FillGaps forward-fills each year column, at most dailyFillLimit rows for
// daily data and weeklyFillLimit rows for weekly data. Other frequencies are
// returned untouched.
func (ss *SeasonalService) FillGaps(df dataframe.DataFrame, freq schemas.Frequency) dataframe.DataFrame {
	var limit int
	switch freq {
	case schemas.FrequencyDaily:
		limit = ss.dailyFillLimit
	case schemas.FrequencyWeekly:
		limit = ss.weeklyFillLimit
	default:
		return df
	}

	for _, name := range utils.ValueColumns(df) {
		df = utils.WithFloatColumn(df, name, forwardFill(utils.FloatColumn(df, name), limit))
	}
	return df
}

// forwardFill fills at most limit consecutive NaNs after each valid value.
func forwardFill(values []float64, limit int) []float64 {
	filled := make([]float64, len(values))
	copy(filled, values)

	last := math.NaN()
	run := 0
	for i, v := range values {
		if !math.IsNaN(v) {
			last = v
			run = 0
			continue
		}
		run++
		if !math.IsNaN(last) && run <= limit {
			filled[i] = last
		}
	}
	return filled
}

// FormatForward turns a forward curve into daily rows starting on the last
// historical date, so its seasonal labels line up with the history.
func (ss *SeasonalService) FormatForward(fwd schemas.TimeSeries, lastHistorical time.Time) schemas.TimeSeries {
	if fwd.Empty() {
		return fwd
	}

	start := utils.DayStart(lastHistorical)
	observations := []schemas.Observation{}
	carried := math.NaN()
	for i, o := range fwd.Observations {
		if !math.IsNaN(o.Value) {
			carried = o.Value
		}
		from := utils.DayStart(o.Date)
		to := utils.MonthEnd(o.Date)
		// each point covers the days up to the next point
		if i+1 < fwd.Len() {
			to = utils.DayStart(fwd.Observations[i+1].Date).AddDate(0, 0, -1)
		}
		dates, err := utils.GenerateDates(from, to, 24*time.Hour)
		if err != nil {
			continue
		}
		for _, date := range dates {
			if date.Before(start) {
				continue
			}
			observations = append(observations, schemas.Observation{Date: date, Value: carried})
		}
	}

	return schemas.TimeSeries{Name: fwd.Name, Observations: observations}
}

// ResampleMonthly averages ts into month-start observations. Months whose
// values are all missing stay as NaN.
func (ss *SeasonalService) ResampleMonthly(ts schemas.TimeSeries) schemas.TimeSeries {
	observations := []schemas.Observation{}
	var bucket []float64
	var current time.Time

	flush := func() {
		if current.IsZero() {
			return
		}
		mean := math.NaN()
		if valid := utils.DropNaN(bucket); len(valid) > 0 {
			mean = stat.Mean(valid, nil)
		}
		observations = append(observations, schemas.Observation{Date: current, Value: mean})
	}

	// observations are date ordered, so a month is one contiguous run
	for _, o := range ts.Observations {
		month := utils.MonthStart(o.Date)
		if !month.Equal(current) {
			flush()
			current = month
			bucket = bucket[:0]
		}
		bucket = append(bucket, o.Value)
	}
	flush()

	return schemas.TimeSeries{Name: ts.Name, Observations: observations}
}

// Concat appends fwd to hist along the time axis. Historical observations on
// or after the first forward date are replaced by the forward series.
func (ss *SeasonalService) Concat(hist, fwd schemas.TimeSeries) schemas.TimeSeries {
	if fwd.Empty() {
		return hist
	}
	cutoff := fwd.First().Date
	observations := make([]schemas.Observation, 0, hist.Len()+fwd.Len())
	for _, o := range hist.Observations {
		if o.Date.Before(cutoff) {
			observations = append(observations, o)
		}
	}
	observations = append(observations, fwd.Observations...)

	return schemas.TimeSeries{Name: hist.Name, Observations: observations}
}
