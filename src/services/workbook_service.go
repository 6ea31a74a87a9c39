package services

import (
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	BandSheet    = "Band"
	ChartSheet   = "Chart"
)

var traceHeader = []string{"Trace", utils.PositionColumn, "Value", "Dashed"}

type WorkbookServiceI interface {
	SeasonalWorkbook(ctx context.Context, report *schemas.SeasonalReport) (*excelize.File, error)
}

type WorkbookService struct{}

func NewWorkbookService() *WorkbookService {
	return &WorkbookService{}
}

// SeasonalWorkbook lays report out as an xlsx workbook held in memory. The
// caller owns the returned file and must Close it.
func (ws *WorkbookService) SeasonalWorkbook(ctx context.Context, report *schemas.SeasonalReport) (*excelize.File, error) {
	if report == nil || report.Summary == nil {
		return nil, fmt.Errorf("%w: report has no summary table", ErrInsufficientData)
	}

	f := excelize.NewFile()
	// the default sheet becomes the summary so it stays first and active
	f.SetSheetName("Sheet1", SummarySheet)

	err := setFrameInFile(f, SummarySheet, *report.Summary)
	if err != nil {
		f.Close()
		return nil, err
	}

	if report.Band != nil {
		_, err = f.NewSheet(BandSheet)
		if err != nil {
			f.Close()
			return nil, err
		}
		err = setFrameInFile(f, BandSheet, report.Band.Frame)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	if report.Chart != nil {
		_, err = f.NewSheet(ChartSheet)
		if err != nil {
			f.Close()
			return nil, err
		}
		err = setTracesInFile(f, ChartSheet, report.Chart.Traces)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"sheets": f.GetSheetList(),
	}).Debug("built seasonal workbook")

	return f, nil
}

// setFrameInFile writes df with a header row. NaN values leave the cell empty.
func setFrameInFile(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	for c, name := range df.Names() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		err = f.SetCellStr(sheetName, cell, name)
		if err != nil {
			return err
		}

		col := df.Col(name)
		if col.Type() == series.Float {
			for r, v := range col.Float() {
				if math.IsNaN(v) {
					continue
				}
				cell, err = excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				err = f.SetCellFloat(sheetName, cell, v, -1, 64)
				if err != nil {
					return err
				}
			}
			continue
		}
		for r, v := range col.Records() {
			cell, err = excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			err = f.SetCellStr(sheetName, cell, v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func setTracesInFile(f *excelize.File, sheetName string, traces []schemas.Trace) error {
	header := make([]interface{}, len(traceHeader))
	for i, h := range traceHeader {
		header[i] = h
	}
	err := f.SetSheetRow(sheetName, "A1", &header)
	if err != nil {
		return err
	}

	// Row 1 is the header
	row := 2
	for _, trace := range traces {
		for i, label := range trace.X {
			values := []interface{}{trace.Name, label, nil, trace.Dashed}
			if i < len(trace.Y) && !math.IsNaN(trace.Y[i]) {
				values[2] = trace.Y[i]
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			err = f.SetSheetRow(sheetName, cell, &values)
			if err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
