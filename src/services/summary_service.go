package services

import (
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Labels of the aggregate rows appended after the month rows, in output order.
const (
	RowQ1     = "Q1"
	RowQ2     = "Q2"
	RowQ3     = "Q3"
	RowQ4     = "Q4"
	RowWinter = "Q1+Q4"
	RowSummer = "Q2+Q3"
	RowYear   = "Year"
)

var summaryRows = []string{RowQ1, RowQ2, RowQ3, RowQ4, RowWinter, RowSummer, RowYear}

type SummaryServiceI interface {
	SeasonalSummary(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries) (*dataframe.DataFrame, error)
}

type SummaryService struct {
	seasonal *SeasonalService
}

func NewSummaryService(seasonal *SeasonalService) *SummaryService {
	return &SummaryService{seasonal: seasonal}
}

// SeasonalSummary builds the month-by-year table of monthly means followed by
// quarterly, half-year and full-year averages, all rounded to 2 dp.
func (ss *SummaryService) SeasonalSummary(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries) (*dataframe.DataFrame, error) {
	if hist.Empty() {
		return nil, fmt.Errorf("%w: no historical observations for %q", ErrInsufficientData, hist.Name)
	}
	logger := utils.LoggerFromContext(ctx)

	combined := ss.seasonal.ResampleMonthly(hist)
	if fwd != nil && !fwd.Empty() {
		monthlyFwd := ss.seasonal.ResampleMonthly(*fwd)
		combined = ss.seasonal.Concat(combined, monthlyFwd)
	}

	seas, err := ss.seasonal.SeasonaliseAs(ctx, combined, schemas.FrequencyMonthly)
	if err != nil {
		return nil, fmt.Errorf("failed to seasonalise %q: %w", hist.Name, err)
	}

	monthRows := ss.monthLabels()
	labels := append(append([]string{}, monthRows...), summaryRows...)
	df := utils.NewPositionFrame(labels)

	// Month rows first, then the aggregate rows
	years := utils.ValueColumns(*seas)
	for _, year := range years {
		months := ss.alignToCalendar(*seas, year)
		column := make([]float64, 0, len(labels))
		for _, v := range months {
			column = append(column, utils.RoundTo(v, 2))
		}
		for _, v := range ss.aggregates(months) {
			column = append(column, utils.RoundTo(v, 2))
		}
		df = utils.WithFloatColumn(df, year, column)
	}
	if df.Err != nil {
		return nil, df.Err
	}

	logger.WithFields(logrus.Fields{
		"series": hist.Name,
		"years":  len(years),
	}).Debug("built seasonal summary")

	return &df, nil
}

func (ss *SummaryService) monthLabels() []string {
	labels := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		labels[m-1] = time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC).Format(utils.MonthLayout)
	}
	return labels
}

// alignToCalendar returns the twelve month values of one year column, NaN for
// months the seasonal table does not have.
func (ss *SummaryService) alignToCalendar(seas dataframe.DataFrame, column string) []float64 {
	months := make([]float64, 12)
	for i := range months {
		months[i] = math.NaN()
	}
	values := utils.FloatColumn(seas, column)
	for i, label := range utils.PositionLabels(seas) {
		t, err := time.Parse(utils.MonthLayout, label)
		if err != nil {
			continue
		}
		months[t.Month()-1] = values[i]
	}
	return months
}

// aggregates computes the summaryRows values from twelve month values.
func (ss *SummaryService) aggregates(months []float64) []float64 {
	quarters := make([]float64, 4)
	for q := 0; q < 4; q++ {
		quarters[q] = nanMean(months[q*3 : q*3+3])
	}
	return []float64{
		quarters[0],
		quarters[1],
		quarters[2],
		quarters[3],
		nanMean([]float64{quarters[0], quarters[3]}),
		nanMean([]float64{quarters[1], quarters[2]}),
		nanMean(months),
	}
}

// nanMean is the mean of the non-NaN values, or NaN if there are none.
func nanMean(values []float64) float64 {
	valid := utils.DropNaN(values)
	if len(valid) == 0 {
		return math.NaN()
	}
	return stat.Mean(valid, nil)
}
