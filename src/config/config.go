package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Seasonal SeasonalConfig `mapstructure:"seasonal"`
	Styling  StylingConfig  `mapstructure:"styling"`
	Band     BandConfig     `mapstructure:"band"`
	Output   OutputConfig   `mapstructure:"output"`
}

type ServiceConfig struct {
	Name string `mapstructure:"name"`
	// CurrentYear pins the reference year; zero means read it from the clock.
	CurrentYear int `mapstructure:"currentYear"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type SeasonalConfig struct {
	DailyFillLimit  int `mapstructure:"dailyFillLimit"`
	WeeklyFillLimit int `mapstructure:"weeklyFillLimit"`
}

type StylingConfig struct {
	DefaultColour      string `mapstructure:"defaultColour"`
	Width              int    `mapstructure:"width"`
	CurrentYearWidth   int    `mapstructure:"currentYearWidth"`
	HiddenBeforeOffset int    `mapstructure:"hiddenBeforeOffset"`
}

type BandConfig struct {
	// OutlierStdDevs is a tuning knob, not a derived constant.
	OutlierStdDevs float64 `mapstructure:"outlierStdDevs"`
	MinYears       int     `mapstructure:"minYears"`
	ShadedYears    int     `mapstructure:"shadedYears"`
}

type OutputConfig struct {
	// Format is "csv" or "xlsx".
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"service.name":               "commodplot",
	"service.currentYear":        0,
	"logging.level":              "info",
	"logging.toFile":             false,
	"logging.filePath":           "commodplot.log",
	"seasonal.dailyFillLimit":    4,
	"seasonal.weeklyFillLimit":   7,
	"styling.defaultColour":      "khaki",
	"styling.width":              2,
	"styling.currentYearWidth":   3,
	"styling.hiddenBeforeOffset": -5,
	"band.outlierStdDevs":        1.5,
	"band.minYears":              2,
	"band.shadedYears":           5,
	"output.format":              "csv",
}

// DefaultConfig returns the configuration used when no settings file is present.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{Name: "commodplot"},
		Logging: LoggingConfig{Level: "info", FilePath: "commodplot.log"},
		Seasonal: SeasonalConfig{
			DailyFillLimit:  4,
			WeeklyFillLimit: 7,
		},
		Styling: StylingConfig{
			DefaultColour:      "khaki",
			Width:              2,
			CurrentYearWidth:   3,
			HiddenBeforeOffset: -5,
		},
		Band: BandConfig{
			OutlierStdDevs: 1.5,
			MinYears:       2,
			ShadedYears:    5,
		},
		Output: OutputConfig{Format: "csv"},
	}
}

// LoadConfig reads appsettings.yaml from path. Environment variables prefixed
// with COMMODPLOT_ override file values, e.g. COMMODPLOT_BAND_MINYEARS.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("COMMODPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
