package utils

import (
	"commodplot/src/schemas"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadTimeSeriesCSV reads a dated CSV with a header row. dateCol defaults to
// the first column and valueCol to the first column after it.
func ReadTimeSeriesCSV(r io.Reader, dateCol, valueCol string) (schemas.TimeSeries, error) {
	df := dataframe.ReadCSV(r,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return schemas.TimeSeries{}, fmt.Errorf("failed to read csv: %w", df.Err)
	}
	return TimeSeriesFromDataFrame(df, dateCol, valueCol)
}

// TimeSeriesFromDataFrame extracts one named series from a frame sharing a
// date column. Cells that are not numbers become missing observations.
func TimeSeriesFromDataFrame(df dataframe.DataFrame, dateCol, valueCol string) (schemas.TimeSeries, error) {
	names := df.Names()
	if len(names) < 2 {
		return schemas.TimeSeries{}, fmt.Errorf("need a date column and a value column, got %d columns", len(names))
	}
	if dateCol == "" {
		dateCol = names[0]
	}
	if valueCol == "" {
		for _, name := range names {
			if name != dateCol {
				valueCol = name
				break
			}
		}
	}
	if !HasColumn(df, dateCol) {
		return schemas.TimeSeries{}, fmt.Errorf("date column %q not found", dateCol)
	}
	if !HasColumn(df, valueCol) {
		return schemas.TimeSeries{}, fmt.Errorf("value column %q not found", valueCol)
	}

	dateRecords := df.Col(dateCol).Records()
	valueRecords := df.Col(valueCol).Records()
	observations := make([]schemas.Observation, 0, len(dateRecords))
	for i, raw := range dateRecords {
		date, err := ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return schemas.TimeSeries{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		observations = append(observations, schemas.Observation{
			Date:  date,
			Value: parseValue(valueRecords[i]),
		})
	}
	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})

	return schemas.TimeSeries{Name: valueCol, Observations: observations}, nil
}

func parseValue(raw string) float64 {
	raw = strings.TrimSpace(strings.Trim(raw, "\""))
	switch raw {
	case "", "NA", "NaN", "nan", "null":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
