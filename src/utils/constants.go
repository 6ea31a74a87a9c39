package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

// Calendar position layouts used as row labels of seasonal tables.
const (
	DayMonthLayout     = "02-Jan"
	DayMonthYearLayout = "02-Jan-2006"
	MonthLayout        = "Jan"
)

// PositionColumn is the index column of every seasonal frame.
const PositionColumn = "Position"

const (
	MinColumn = "min"
	MaxColumn = "max"
)

// DefaultLineColour is used for years outside the palette.
const DefaultLineColour = "khaki"

// YearLineColours maps a year offset (year - current year) to a CSS colour name.
// Recent years get saturated colours, older ones fade to greys, and the
// current year is always black.
var YearLineColours = map[int]string{
	-10: "gainsboro",
	-9:  "lightgray",
	-8:  "silver",
	-7:  "darkgray",
	-6:  "gray",
	-5:  "darkorchid",
	-4:  "purple",
	-3:  "blue",
	-2:  "green",
	-1:  "orange",
	0:   "black",
	1:   "red",
	2:   "orangered",
	3:   "paleturquoise",
	4:   "lightseagreen",
}

// GetYearLineColour returns the palette colour for an offset, or fallback when
// the offset has no entry.
func GetYearLineColour(offset int, fallback string) string {
	if colour, ok := YearLineColours[offset]; ok {
		return colour
	}
	return fallback
}
