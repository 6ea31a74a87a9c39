package services

import (
	"commodplot/src/config"
	"commodplot/src/schemas"
	"commodplot/src/utils"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

type StylingServiceI interface {
	YearLineStyle(year, currentYear int) schemas.StyleRecord
	YearLineStyleFromLabel(label string, currentYear int) (schemas.StyleRecord, error)
	StylesByColumn(labels []string, currentYear int) map[string]schemas.StyleRecord
	StylesForColumns(labels []string, currentYear int) []schemas.StyleRecord
	DefaultStyle() schemas.StyleRecord
}

type StylingService struct {
	defaultColour      string
	width              int
	currentYearWidth   int
	hiddenBeforeOffset int
}

func NewStylingService(cfg config.StylingConfig) *StylingService {
	if cfg.DefaultColour == "" {
		cfg.DefaultColour = utils.DefaultLineColour
	}
	if cfg.Width <= 0 {
		cfg.Width = 2
	}
	if cfg.CurrentYearWidth <= 0 {
		cfg.CurrentYearWidth = 3
	}
	if cfg.HiddenBeforeOffset == 0 {
		cfg.HiddenBeforeOffset = -5
	}
	return &StylingService{
		defaultColour:      cfg.DefaultColour,
		width:              cfg.Width,
		currentYearWidth:   cfg.CurrentYearWidth,
		hiddenBeforeOffset: cfg.HiddenBeforeOffset,
	}
}

// YearLineStyle gives the line style of year relative to currentYear.
func (ss *StylingService) YearLineStyle(year, currentYear int) schemas.StyleRecord {
	return ss.offsetStyle(year - currentYear)
}

func (ss *StylingService) offsetStyle(offset int) schemas.StyleRecord {
	colour := utils.GetYearLineColour(offset, ss.defaultColour)

	width := ss.width
	if offset == 0 {
		width = ss.currentYearWidth
	}

	return schemas.StyleRecord{
		Colour: colour,
		RGBA:   resolveColour(colour),
		Width:  width,
		Hidden: offset < ss.hiddenBeforeOffset,
	}
}

// YearLineStyleFromLabel accepts a year written as a string, e.g. "2021".
func (ss *StylingService) YearLineStyleFromLabel(label string, currentYear int) (schemas.StyleRecord, error) {
	year, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return schemas.StyleRecord{}, fmt.Errorf("invalid year %q: %w", label, err)
	}
	return ss.YearLineStyle(year, currentYear), nil
}

// DefaultStyle is used for columns whose year cannot be detected.
func (ss *StylingService) DefaultStyle() schemas.StyleRecord {
	return schemas.StyleRecord{
		Colour: ss.defaultColour,
		RGBA:   resolveColour(ss.defaultColour),
		Width:  ss.width,
	}
}

// StylesByColumn styles each column label by the year detected in it.
func (ss *StylingService) StylesByColumn(labels []string, currentYear int) map[string]schemas.StyleRecord {
	offsets := utils.YearOffsets(labels, currentYear)
	styles := make(map[string]schemas.StyleRecord, len(labels))
	for _, label := range labels {
		offset, ok := offsets[label]
		if !ok {
			styles[label] = ss.DefaultStyle()
			continue
		}
		styles[label] = ss.offsetStyle(offset)
	}
	return styles
}

// StylesForColumns is StylesByColumn ordered like labels.
func (ss *StylingService) StylesForColumns(labels []string, currentYear int) []schemas.StyleRecord {
	byColumn := ss.StylesByColumn(labels, currentYear)
	styles := make([]schemas.StyleRecord, len(labels))
	for i, label := range labels {
		styles[i] = byColumn[label]
	}
	return styles
}

// resolveColour looks up a CSS colour name; unknown names resolve to the zero colour.
func resolveColour(name string) color.RGBA {
	return colornames.Map[strings.ToLower(name)]
}
