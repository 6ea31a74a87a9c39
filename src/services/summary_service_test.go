package services_test

import (
	"commodplot/src/services"
	"commodplot/src/utils"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthValue(d time.Time) float64 {
	return float64(d.Month())
}

func TestSeasonalSummary(t *testing.T) {
	service := services.NewSummaryService(newSeasonalService())
	hist := monthlySeries("brent", date(2022, 1, 1), 24, monthValue)

	df, err := service.SeasonalSummary(context.Background(), hist, nil)
	require.NoError(t, err)

	labels := utils.PositionLabels(*df)
	require.Len(t, labels, 19)
	assert.Equal(t, "Jan", labels[0])
	assert.Equal(t, "Dec", labels[11])
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4", "Q1+Q4", "Q2+Q3", "Year"}, labels[12:])
	assert.Equal(t, []string{"2022", "2023"}, utils.ValueColumns(*df))

	col := utils.FloatColumn(*df, "2022")
	assert.Equal(t, []float64{2, 5, 8, 11, 6.5, 6.5, 6.5}, col[12:])
}

func TestSeasonalSummaryWithForward(t *testing.T) {
	service := services.NewSummaryService(newSeasonalService())
	hist := monthlySeries("brent", date(2022, 1, 1), 24, monthValue)
	fwd := monthlySeries("brent fwd", date(2023, 12, 1), 4, func(time.Time) float64 { return 100 })

	df, err := service.SeasonalSummary(context.Background(), hist, &fwd)
	require.NoError(t, err)
	assert.Equal(t, []string{"2022", "2023", "2024"}, utils.ValueColumns(*df))

	y2023 := utils.FloatColumn(*df, "2023")
	assert.Equal(t, 100.0, y2023[11])
	assert.Equal(t, 40.33, y2023[15])
	assert.Equal(t, 13.83, y2023[18])

	y2024 := utils.FloatColumn(*df, "2024")
	assert.Equal(t, []float64{100, 100, 100}, y2024[:3])
	assert.True(t, math.IsNaN(y2024[3]))
	assert.Equal(t, 100.0, y2024[12])
	assert.True(t, math.IsNaN(y2024[13]))
	assert.Equal(t, 100.0, y2024[16])
	assert.True(t, math.IsNaN(y2024[17]))
	assert.Equal(t, 100.0, y2024[18])
}

func TestSeasonalSummaryFromDaily(t *testing.T) {
	service := services.NewSummaryService(newSeasonalService())
	hist := dailySeries("gas", date(2023, 1, 1), date(2023, 3, 31), true, monthValue)

	df, err := service.SeasonalSummary(context.Background(), hist, nil)
	require.NoError(t, err)
	require.Equal(t, 19, df.Nrow())

	col := utils.FloatColumn(*df, "2023")
	assert.Equal(t, []float64{1, 2, 3}, col[:3])
	assert.True(t, math.IsNaN(col[3]))
	assert.Equal(t, 2.0, col[12])
	assert.Equal(t, 2.0, col[18])
}

func TestSeasonalSummaryEmpty(t *testing.T) {
	service := services.NewSummaryService(newSeasonalService())
	hist := monthlySeries("empty", date(2022, 1, 1), 0, monthValue)

	_, err := service.SeasonalSummary(context.Background(), hist, nil)
	assert.True(t, errors.Is(err, services.ErrInsufficientData))
}
