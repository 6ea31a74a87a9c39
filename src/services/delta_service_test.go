package services_test

import (
	"commodplot/src/schemas"
	"commodplot/src/services"
	"commodplot/src/utils"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(values ...float64) schemas.TimeSeries {
	dates := make([]time.Time, len(values))
	for i := range values {
		dates[i] = date(2024, 1, 1).AddDate(0, 0, i)
	}
	return schemas.NewTimeSeries("price", dates, values)
}

func TestDeltaSummary(t *testing.T) {
	service := services.NewDeltaService()

	tests := []struct {
		name     string
		values   []float64
		expected string
	}{
		{"rise", []float64{40, 45, 50}, "50.0   Δ: +5.0"},
		{"fall", []float64{60, 50, 45}, "45.0   Δ: -5.0"},
		{"flat", []float64{5, 5}, "5.0   Δ: 0.0"},
		{"skips missing", []float64{45, math.NaN(), 50.257, math.NaN()}, "50.26   Δ: +5.26"},
		{"rounds", []float64{1.1, 2.226}, "2.23   Δ: +1.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := service.DeltaSummary(seriesOf(tt.values...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, summary)
		})
	}
}

func TestDeltaSummaryInsufficientData(t *testing.T) {
	service := services.NewDeltaService()

	for _, values := range [][]float64{{}, {50}, {math.NaN(), 50, math.NaN()}} {
		_, err := service.DeltaSummary(seriesOf(values...))
		assert.True(t, errors.Is(err, services.ErrInsufficientData), "values %v", values)
	}
}

func TestDeltaSummaryFromDataFrame(t *testing.T) {
	service := services.NewDeltaService()
	df := utils.NewPositionFrame([]string{"01-Jan", "02-Jan", "03-Jan"})
	df = utils.WithFloatColumn(df, "brent", []float64{70, 72.5, 71})
	df = utils.WithFloatColumn(df, "wti", []float64{65, 66, 68})

	first, err := service.DeltaSummaryFromDataFrame(df, "")
	require.NoError(t, err)
	assert.Equal(t, "71.0   Δ: -1.5", first)

	wti, err := service.DeltaSummaryFromDataFrame(df, "wti")
	require.NoError(t, err)
	assert.Equal(t, "68.0   Δ: +2.0", wti)

	_, err = service.DeltaSummaryFromDataFrame(utils.NewPositionFrame([]string{"a"}), "")
	assert.True(t, errors.Is(err, services.ErrInsufficientData))
}

func TestDeltaSummaryFromIntColumn(t *testing.T) {
	service := services.NewDeltaService()
	df := dataframe.New(
		series.New([]string{"2024-01-01", "2024-01-02"}, series.String, "date"),
		series.New([]int{45, 50}, series.Int, "price"),
	)

	summary, err := service.DeltaSummaryFromDataFrame(df, "")
	require.NoError(t, err)
	assert.Equal(t, "50.0   Δ: +5.0", summary)

	named, err := service.DeltaSummaryFromDataFrame(df, "price")
	require.NoError(t, err)
	assert.Equal(t, summary, named)
}
