package services

import (
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"context"
	"fmt"
	"sync"

	"github.com/go-gota/gota/dataframe"
)

// ReportOptions configures GenerateSeasonalReport. ShadedRange overrides
// ShadedYears; a zero CurrentYear is read from the service clock.
type ReportOptions struct {
	Title         string
	IncludeChange bool
	CurrentYear   int
	ShadedYears   int
	ShadedRange   *schemas.YearRange
}

type ReportServiceI interface {
	GenerateSeasonalReport(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries, opts ReportOptions) (*schemas.SeasonalReport, error)
}

type ReportService struct {
	seasonal    *SeasonalService
	chart       *ChartService
	summary     *SummaryService
	band        *BandService
	clock       utils.Clock
	shadedYears int
}

func NewReportService(seasonal *SeasonalService, chart *ChartService, summary *SummaryService, band *BandService, clock utils.Clock, shadedYears int) *ReportService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	if shadedYears <= 0 {
		shadedYears = 5
	}
	return &ReportService{
		seasonal:    seasonal,
		chart:       chart,
		summary:     summary,
		band:        band,
		clock:       clock,
		shadedYears: shadedYears,
	}
}

// NewReportServiceFromConfig wires every service from cfg.
func NewReportServiceFromConfig(cfg *config.Config, clock utils.Clock) *ReportService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	if cfg.Service.CurrentYear != 0 {
		clock = utils.FixedClock(cfg.Service.CurrentYear)
	}
	seasonal := NewSeasonalService(cfg.Seasonal)
	styling := NewStylingService(cfg.Styling)
	chart := NewChartService(seasonal, styling, NewDeltaService(), clock)
	return NewReportService(
		seasonal,
		chart,
		NewSummaryService(seasonal),
		NewBandService(cfg.Band),
		clock,
		cfg.Band.ShadedYears,
	)
}

// GenerateSeasonalReport builds the chart data, summary table and min-max band
// for one series concurrently.
func (rs *ReportService) GenerateSeasonalReport(ctx context.Context, hist schemas.TimeSeries, fwd *schemas.TimeSeries, opts ReportOptions) (*schemas.SeasonalReport, error) {
	currentYear := opts.CurrentYear
	if currentYear == 0 {
		currentYear = rs.clock.CurrentYear()
	}
	yearRange := schemas.LastNYears(rs.shadedYears, currentYear)
	if opts.ShadedYears > 0 {
		yearRange = schemas.LastNYears(opts.ShadedYears, currentYear)
	}
	if opts.ShadedRange != nil {
		yearRange = *opts.ShadedRange
	}

	// Each goroutine writes only its own result
	var chart *schemas.SeasonalChart
	var summary *dataframe.DataFrame
	var band *schemas.MinMaxBand

	var wg sync.WaitGroup
	wg.Add(3)
	var errChan = make(chan error, 3)

	go func() {
		defer wg.Done()
		var err error
		chart, err = rs.chart.SeasonalLineChart(ctx, hist, fwd, ChartOptions{
			Title:         opts.Title,
			IncludeChange: opts.IncludeChange,
			CurrentYear:   currentYear,
		})
		if err != nil {
			errChan <- fmt.Errorf("chart: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		summary, err = rs.summary.SeasonalSummary(ctx, hist, fwd)
		if err != nil {
			errChan <- fmt.Errorf("summary: %w", err)
		}
	}()

	// The band is drawn over filled history only, never the forward curve
	go func() {
		defer wg.Done()
		seas, err := rs.seasonal.SeasonaliseFilled(ctx, hist)
		if err != nil {
			errChan <- fmt.Errorf("band: %w", err)
			return
		}
		band, err = rs.band.MinMaxBand(ctx, *seas, yearRange)
		if err != nil {
			errChan <- fmt.Errorf("band: %w", err)
		}
	}()

	// Wait for all goroutines to finish
	wg.Wait()
	close(errChan)
	if err := <-errChan; err != nil {
		return nil, err
	}

	return &schemas.SeasonalReport{
		Chart:   chart,
		Summary: summary,
		Band:    band,
	}, nil
}
