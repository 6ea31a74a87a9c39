package services

import (
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type BandServiceI interface {
	MinMaxBand(ctx context.Context, df dataframe.DataFrame, yearRange schemas.YearRange) (*schemas.MinMaxBand, error)
}

type BandService struct {
	outlierStdDevs float64
	minYears       int
}

func NewBandService(cfg config.BandConfig) *BandService {
	if cfg.OutlierStdDevs <= 0 {
		cfg.OutlierStdDevs = 1.5
	}
	if cfg.MinYears <= 0 {
		cfg.MinYears = 2
	}
	return &BandService{
		outlierStdDevs: cfg.OutlierStdDevs,
		minYears:       cfg.MinYears,
	}
}

// MinMaxBand computes the per-row range of the year columns of a seasonal
// table that fall in yearRange. It returns a nil band when fewer than
// minYears columns qualify.
func (bs *BandService) MinMaxBand(ctx context.Context, df dataframe.DataFrame, yearRange schemas.YearRange) (*schemas.MinMaxBand, error) {
	logger := utils.LoggerFromContext(ctx)

	columns := bs.dropEmptyColumns(df)
	columns = bs.dropSparseColumns(ctx, df, columns)

	years := utils.FindYears(columns)
	selected := make([]string, 0, len(columns))
	for _, name := range columns {
		if year, ok := years[name]; ok && yearRange.Contains(year) {
			selected = append(selected, name)
		}
	}

	if len(selected) < bs.minYears {
		logger.WithFields(logrus.Fields{
			"start":    yearRange.Start,
			"end":      yearRange.End,
			"selected": len(selected),
		}).Debug("not enough years for a min-max band")
		return nil, nil
	}

	sub := utils.SelectValueColumns(df, selected)
	if sub.Err != nil {
		return nil, sub.Err
	}
	data := make([][]float64, len(selected))
	for i, name := range selected {
		data[i] = utils.FloatColumn(sub, name)
	}

	// Rows where every selected year is missing stay NaN
	rows := df.Nrow()
	mins := make([]float64, rows)
	maxs := make([]float64, rows)
	row := make([]float64, len(selected))
	for r := 0; r < rows; r++ {
		for c := range selected {
			row[c] = data[c][r]
		}
		valid := utils.DropNaN(row)
		if len(valid) == 0 {
			mins[r], maxs[r] = math.NaN(), math.NaN()
			continue
		}
		mins[r] = floats.Min(valid)
		maxs[r] = floats.Max(valid)
	}

	minSeries := series.New(mins, series.Float, utils.MinColumn)
	maxSeries := series.New(maxs, series.Float, utils.MaxColumn)
	var frame dataframe.DataFrame
	if utils.HasColumn(df, utils.PositionColumn) {
		frame = dataframe.New(df.Col(utils.PositionColumn), minSeries, maxSeries)
	} else {
		frame = dataframe.New(minSeries, maxSeries)
	}
	if frame.Err != nil {
		return nil, frame.Err
	}

	return &schemas.MinMaxBand{
		Frame:   frame,
		Years:   len(selected),
		Columns: selected,
	}, nil
}

func (bs *BandService) dropEmptyColumns(df dataframe.DataFrame) []string {
	var kept []string
	for _, name := range utils.ValueColumns(df) {
		values := utils.FloatColumn(df, name)
		if len(values) > 0 && utils.NullCount(values) < len(values) {
			kept = append(kept, name)
		}
	}
	return kept
}

// dropSparseColumns removes columns whose null count is more than
// outlierStdDevs standard deviations from the mean null count. Nothing is
// removed when every column is fully populated.
func (bs *BandService) dropSparseColumns(ctx context.Context, df dataframe.DataFrame, columns []string) []string {
	if len(columns) < 2 {
		return columns
	}

	counts := make([]float64, len(columns))
	anyNulls := false
	for i, name := range columns {
		counts[i] = float64(utils.NullCount(utils.FloatColumn(df, name)))
		if counts[i] > 0 {
			anyNulls = true
		}
	}
	if !anyNulls {
		return columns
	}

	mean, std := stat.MeanStdDev(counts, nil)
	if std == 0 {
		return columns
	}

	kept := make([]string, 0, len(columns))
	var dropped []string
	for i, name := range columns {
		if math.Abs(counts[i]-mean) > bs.outlierStdDevs*std {
			dropped = append(dropped, name)
			continue
		}
		kept = append(kept, name)
	}
	if len(dropped) > 0 {
		utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
			"dropped":   dropped,
			"meanNulls": mean,
			"stdNulls":  std,
		}).Debug("dropped sparse columns from min-max band")
	}
	return kept
}
