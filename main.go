package main

import (
	"commodplot/src/config"
	"commodplot/src/services"
	"commodplot/src/utils"
	"context"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Reads a dated CSV (date column first) from stdin and writes the seasonal
// summary to stdout, as CSV or as an xlsx workbook depending on output.format.
func main() {
	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}
	if err := run(cfg); err != nil {
		log.Println(err, "Couldn't run")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)
	ctx := utils.WithLogger(context.Background(), logger)

	hist, err := utils.ReadTimeSeriesCSV(os.Stdin, "", "")
	if err != nil {
		return err
	}

	reportService := services.NewReportServiceFromConfig(cfg, utils.RealClock{})
	report, err := reportService.GenerateSeasonalReport(ctx, hist, nil, services.ReportOptions{
		Title:         hist.Name,
		IncludeChange: true,
	})
	if err != nil {
		return err
	}

	fields := logrus.Fields{
		"title":     report.Chart.Title,
		"frequency": report.Chart.Frequency.String(),
		"traces":    len(report.Chart.Traces),
	}
	if report.Band != nil {
		fields["bandYears"] = report.Band.Years
	}
	logger.WithFields(fields).Info("seasonal report ready")

	if cfg.Output.Format != "xlsx" {
		return report.Summary.WriteCSV(os.Stdout)
	}

	f, err := services.NewWorkbookService().SeasonalWorkbook(ctx, report)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(os.Stdout)
}
