package utils

//nolint:depguard
import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NewPositionFrame starts a seasonal frame holding only the Position index column.
func NewPositionFrame(positions []string) dataframe.DataFrame {
	return dataframe.New(series.New(positions, series.String, PositionColumn))
}

// WithFloatColumn adds, or replaces, a float column on df.
func WithFloatColumn(df dataframe.DataFrame, name string, values []float64) dataframe.DataFrame {
	return df.Mutate(series.New(values, series.Float, name))
}

// PositionLabels returns the index labels of a seasonal frame.
func PositionLabels(df dataframe.DataFrame) []string {
	if !HasColumn(df, PositionColumn) {
		return nil
	}
	return df.Col(PositionColumn).Records()
}

// ValueColumns returns every column name except the Position index, in frame order.
func ValueColumns(df dataframe.DataFrame) []string {
	var names []string
	for _, name := range df.Names() {
		if name != PositionColumn {
			names = append(names, name)
		}
	}
	return names
}

// FloatColumn returns a copy of a column as floats. Missing values are NaN.
func FloatColumn(df dataframe.DataFrame, name string) []float64 {
	if !HasColumn(df, name) {
		return nil
	}
	return df.Col(name).Float()
}

// SelectValueColumns keeps the Position index plus the named columns.
func SelectValueColumns(df dataframe.DataFrame, names []string) dataframe.DataFrame {
	keep := make([]string, 0, len(names)+1)
	if HasColumn(df, PositionColumn) {
		keep = append(keep, PositionColumn)
	}
	keep = append(keep, names...)
	return df.Select(keep)
}

// SortYearColumns orders value columns by detected year, keeping Position first.
// Columns without a year go last in name order.
func SortYearColumns(df dataframe.DataFrame) dataframe.DataFrame {
	names := ValueColumns(df)
	years := FindYears(names)
	sort.SliceStable(names, func(i, j int) bool {
		yi, okI := years[names[i]]
		yj, okJ := years[names[j]]
		switch {
		case okI && okJ:
			if yi != yj {
				return yi < yj
			}
			return names[i] < names[j]
		case okI != okJ:
			return okI
		default:
			return names[i] < names[j]
		}
	})
	return SelectValueColumns(df, names)
}

// NullCount counts NaN entries.
func NullCount(values []float64) int {
	count := 0
	for _, v := range values {
		if math.IsNaN(v) {
			count++
		}
	}
	return count
}

// DropNaN returns the non-NaN entries of values.
func DropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// RoundTo rounds v half away from zero to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	rounded := math.Round(v*scale) / scale
	if rounded == 0 {
		return 0
	}
	return rounded
}

// HasColumn checks whether a DataFrame contains a given column
func HasColumn(df dataframe.DataFrame, colName string) bool {
	for _, name := range df.Names() {
		if name == colName {
			return true
		}
	}
	return false
}
