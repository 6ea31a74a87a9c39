package services_test

import (
	"bytes"
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/services"
	"commodplot/src/utils"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSeasonalWorkbook(t *testing.T) {
	reportService := services.NewReportServiceFromConfig(config.DefaultConfig(), utils.FixedClock(2024))
	hist := monthlySeries("brent", date(2022, 1, 1), 30, monthValue)
	report, err := reportService.GenerateSeasonalReport(context.Background(), hist, nil, services.ReportOptions{
		Title:       "Brent",
		ShadedYears: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Band)

	f, err := services.NewWorkbookService().SeasonalWorkbook(context.Background(), report)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{services.SummarySheet, services.BandSheet, services.ChartSheet}, f.GetSheetList())

	cell := func(sheet, name string) string {
		value, err := f.GetCellValue(sheet, name)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Position", cell(services.SummarySheet, "A1"))
	assert.Equal(t, "2022", cell(services.SummarySheet, "B1"))
	assert.Equal(t, "2024", cell(services.SummarySheet, "D1"))
	assert.Equal(t, "Jan", cell(services.SummarySheet, "A2"))
	assert.Equal(t, "Q1", cell(services.SummarySheet, "A14"))
	assert.Equal(t, "2", cell(services.SummarySheet, "B14"))
	assert.Equal(t, "", cell(services.SummarySheet, "D9"))

	assert.Equal(t, "min", cell(services.BandSheet, "B1"))
	assert.Equal(t, "max", cell(services.BandSheet, "C1"))

	assert.Equal(t, "Trace", cell(services.ChartSheet, "A1"))
	assert.Equal(t, "2022", cell(services.ChartSheet, "A2"))
	assert.Equal(t, "Jan", cell(services.ChartSheet, "B2"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer reopened.Close()
	rows, err := reopened.GetRows(services.ChartSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1+3*12)
}

func TestSeasonalWorkbookWithoutBand(t *testing.T) {
	df := utils.NewPositionFrame([]string{"Jan"})
	df = utils.WithFloatColumn(df, "2024", []float64{1})

	f, err := services.NewWorkbookService().SeasonalWorkbook(context.Background(), &schemas.SeasonalReport{Summary: &df})
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{services.SummarySheet}, f.GetSheetList())
}

func TestSeasonalWorkbookWithoutSummary(t *testing.T) {
	_, err := services.NewWorkbookService().SeasonalWorkbook(context.Background(), &schemas.SeasonalReport{})
	assert.True(t, errors.Is(err, services.ErrInsufficientData))

	_, err = services.NewWorkbookService().SeasonalWorkbook(context.Background(), nil)
	assert.True(t, errors.Is(err, services.ErrInsufficientData))
}
