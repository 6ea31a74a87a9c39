package utils_test

//nolint:depguard
import (
	"commodplot/src/utils"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeasonalFrameHelpers(t *testing.T) {
	df := utils.NewPositionFrame([]string{"Jan", "Feb", "Mar"})
	df = utils.WithFloatColumn(df, "2022", []float64{1, math.NaN(), 3})
	df = utils.WithFloatColumn(df, "2020", []float64{4, 5, 6})
	df = utils.WithFloatColumn(df, "curve", []float64{7, 8, 9})

	assert.NoError(t, df.Err)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, utils.PositionLabels(df))
	assert.Equal(t, []string{"2022", "2020", "curve"}, utils.ValueColumns(df))
	assert.True(t, utils.HasColumn(df, "2020"))
	assert.False(t, utils.HasColumn(df, "2021"))
	assert.Nil(t, utils.FloatColumn(df, "2021"))

	values := utils.FloatColumn(df, "2022")
	assert.Equal(t, 1, utils.NullCount(values))
	assert.Equal(t, []float64{1, 3}, utils.DropNaN(values))

	sorted := utils.SortYearColumns(df)
	assert.Equal(t, []string{utils.PositionColumn, "2020", "2022", "curve"}, sorted.Names())

	replaced := utils.WithFloatColumn(df, "2020", []float64{0, 0, 0})
	assert.Equal(t, df.Ncol(), replaced.Ncol())
	assert.Equal(t, []float64{0, 0, 0}, utils.FloatColumn(replaced, "2020"))
}

func TestSelectValueColumns(t *testing.T) {
	df := utils.NewPositionFrame([]string{"01-Jan", "02-Jan"})
	df = utils.WithFloatColumn(df, "2020", []float64{1, 2})
	df = utils.WithFloatColumn(df, "2021", []float64{3, 4})

	selected := utils.SelectValueColumns(df, []string{"2021"})

	assert.Equal(t, []string{utils.PositionColumn, "2021"}, selected.Names())
	assert.Equal(t, 2, selected.Nrow())
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		input    float64
		places   int
		expected float64
	}{
		{1.005, 1, 1.0},
		{2.346, 2, 2.35},
		{-5.0, 2, -5.0},
		{1.0 / 3.0, 2, 0.33},
		{-0.001, 2, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, utils.RoundTo(tt.input, tt.places), 1e-9)
	}
	assert.True(t, math.IsNaN(utils.RoundTo(math.NaN(), 2)))
	assert.False(t, math.Signbit(utils.RoundTo(-0.001, 2)))
}
