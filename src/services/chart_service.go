package services

import (
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus"
)

// ChartOptions controls SeasonalLineChart. A zero CurrentYear is read from the
// service clock.
type ChartOptions struct {
	Title         string
	IncludeChange bool
	CurrentYear   int
}

type ChartServiceI interface {
	SeasonalLineChart(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries, opts ChartOptions) (*schemas.SeasonalChart, error)
	ForwardHistory(df dataframe.DataFrame) dataframe.DataFrame
}

type ChartService struct {
	seasonal *SeasonalService
	styling  *StylingService
	delta    *DeltaService
	clock    utils.Clock
}

func NewChartService(seasonal *SeasonalService, styling *StylingService, delta *DeltaService, clock utils.Clock) *ChartService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &ChartService{
		seasonal: seasonal,
		styling:  styling,
		delta:    delta,
		clock:    clock,
	}
}

// SeasonalLineChart prepares one line per historical year and, when fwd is
// given, one dashed line per forward year. Nothing is drawn here.
func (cs *ChartService) SeasonalLineChart(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries, opts ChartOptions) (*schemas.SeasonalChart, error) {
	logger := utils.LoggerFromContext(ctx)

	currentYear := opts.CurrentYear
	if currentYear == 0 {
		currentYear = cs.clock.CurrentYear()
	}

	freq := cs.seasonal.InferFrequency(hist)
	seas, err := cs.seasonal.SeasonaliseAs(ctx, hist, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to seasonalise %q: %w", hist.Name, err)
	}
	filled := cs.seasonal.FillGaps(*seas, freq)

	chart := &schemas.SeasonalChart{
		Title:     opts.Title,
		Frequency: freq,
		Traces:    cs.traces(filled, currentYear, false),
	}

	if opts.IncludeChange {
		summary, err := cs.delta.DeltaSummary(hist)
		if err != nil {
			logger.WithError(err).WithField("series", hist.Name).Warn("skipping change summary in chart title")
		} else {
			chart.Title = fmt.Sprintf("%s   %s", opts.Title, summary)
		}
	}

	if fwd != nil && !fwd.Empty() {
		overlay := *fwd
		// monthly history keeps the forward curve monthly
		if freq != schemas.FrequencyMonthly && !hist.Empty() {
			overlay = cs.seasonal.FormatForward(overlay, hist.Last().Date)
		}
		fwdSeas, err := cs.seasonal.Seasonalise(ctx, overlay)
		if err != nil {
			return nil, fmt.Errorf("failed to seasonalise forward curve %q: %w", fwd.Name, err)
		}
		chart.Traces = append(chart.Traces, cs.traces(*fwdSeas, currentYear, true)...)
	}

	logger.WithFields(logrus.Fields{
		"series": hist.Name,
		"traces": len(chart.Traces),
	}).Debug("prepared seasonal line chart")

	return chart, nil
}

func (cs *ChartService) traces(seas dataframe.DataFrame, currentYear int, dashed bool) []schemas.Trace {
	seas = utils.SortYearColumns(seas)
	labels := utils.PositionLabels(seas)
	columns := utils.ValueColumns(seas)
	styles := cs.styling.StylesForColumns(columns, currentYear)

	traces := make([]schemas.Trace, len(columns))
	for i, name := range columns {
		traces[i] = schemas.Trace{
			Name:   name,
			X:      labels,
			Y:      utils.FloatColumn(seas, name),
			Style:  styles[i],
			Dashed: dashed,
		}
	}
	return traces
}

// ForwardHistory relabels dated curve columns as "02-Jan" for a legend.
// Columns that are not dates keep their names. When two curves share a day
// and month, the later one is labelled "02-Jan-2006" instead.
func (cs *ChartService) ForwardHistory(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		label := utils.FormatDayMonth(name)
		if label == name {
			continue
		}
		if utils.HasColumn(df, label) {
			date, err := utils.ParseDate(name)
			if err != nil {
				continue
			}
			label = date.Format(utils.DayMonthYearLayout)
		}
		if !utils.HasColumn(df, label) {
			df = df.Rename(label, name)
		}
	}
	return df
}
