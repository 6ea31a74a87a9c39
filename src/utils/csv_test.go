package utils_test

import (
	"commodplot/src/utils"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTimeSeriesCSV(t *testing.T) {
	csvData := `date,brent,wti
2024-01-03,80.5,75.1
2024-01-02,NA,74.0
2024-01-04,81.25,76.3`

	ts, err := utils.ReadTimeSeriesCSV(strings.NewReader(csvData), "", "")
	require.NoError(t, err)

	assert.Equal(t, "brent", ts.Name)
	require.Equal(t, 3, ts.Len())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ts.First().Date)
	assert.True(t, math.IsNaN(ts.Observations[0].Value))
	assert.Equal(t, 80.5, ts.Observations[1].Value)
	assert.Equal(t, 81.25, ts.Last().Value)

	wti, err := utils.ReadTimeSeriesCSV(strings.NewReader(csvData), "date", "wti")
	require.NoError(t, err)
	assert.Equal(t, []float64{74.0, 75.1, 76.3}, wti.Values())
}

func TestTimeSeriesFromDataFrameErrors(t *testing.T) {
	df := dataframe.ReadCSV(strings.NewReader("date,price\nyesterday,1\n"))

	_, err := utils.TimeSeriesFromDataFrame(df, "", "")
	assert.Error(t, err)

	_, err = utils.TimeSeriesFromDataFrame(df, "date", "volume")
	assert.Error(t, err)

	single := dataframe.ReadCSV(strings.NewReader("date\n2024-01-01\n"))
	_, err = utils.TimeSeriesFromDataFrame(single, "", "")
	assert.Error(t, err)
}
