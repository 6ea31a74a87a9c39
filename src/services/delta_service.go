package services

import (
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

type DeltaServiceI interface {
	DeltaSummary(ts schemas.TimeSeries) (string, error)
	DeltaSummaryFromDataFrame(df dataframe.DataFrame, column string) (string, error)
}

type DeltaService struct{}

func NewDeltaService() *DeltaService {
	return &DeltaService{}
}

// DeltaSummary describes the latest change of ts, e.g. "50.0   Δ: +5.0".
// Missing values are skipped, so the two points compared need not be adjacent.
func (ds *DeltaService) DeltaSummary(ts schemas.TimeSeries) (string, error) {
	return ds.summarise(ts.Name, ts.Values())
}

// DeltaSummaryFromDataFrame summarises one column of df. An empty column name
// picks the first numeric column.
func (ds *DeltaService) DeltaSummaryFromDataFrame(df dataframe.DataFrame, column string) (string, error) {
	if column == "" {
		for _, name := range df.Names() {
			// whole-number prices load as Int; Float() converts them
			switch df.Col(name).Type() {
			case series.Float, series.Int:
				column = name
			}
			if column != "" {
				break
			}
		}
	}
	if column == "" || !utils.HasColumn(df, column) {
		return "", fmt.Errorf("%w: no numeric column to summarise", ErrInsufficientData)
	}
	return ds.summarise(column, df.Col(column).Float())
}

func (ds *DeltaService) summarise(name string, values []float64) (string, error) {
	valid := utils.DropNaN(values)
	if len(valid) < 2 {
		return "", fmt.Errorf("%w: %q has %d valid observations, need 2", ErrInsufficientData, name, len(valid))
	}

	// the two most recent valid points, wherever the gaps are
	latest := valid[len(valid)-1]
	previous := valid[len(valid)-2]
	delta := utils.RoundTo(latest-previous, 2)

	sign := ""
	if delta > 0 {
		sign = "+"
	}

	return fmt.Sprintf("%s   Δ: %s%s", formatRounded(latest), sign, formatRounded(delta)), nil
}

// formatRounded prints v rounded to 2 dp with at least one fractional digit.
func formatRounded(v float64) string {
	v = utils.RoundTo(v, 2)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
