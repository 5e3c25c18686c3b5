package domain

import (
	"fmt"
	"strings"
)

// Reading represents a single particulate concentration measurement
// reported by a sensor. Readings are immutable once loaded; the dataset
// replaces its whole collection on reload rather than mutating entries.
type Reading struct {
	ZipCode       string  `json:"zip_code" validate:"required"`
	TimeOfDay     string  `json:"time_of_day" validate:"required"`
	Concentration float64 `json:"concentration" validate:"min=0"`
}

// Field returns the reading's value for the given category axis.
func (r Reading) Field(cat Category) string {
	if cat == CategoryZipCode {
		return r.ZipCode
	}
	return r.TimeOfDay
}

// Category identifies which reading field a label or filter operation
// targets.
type Category int

const (
	CategoryZipCode Category = iota
	CategoryTimeOfDay
)

// Other returns the opposite category axis.
func (c Category) Other() Category {
	if c == CategoryZipCode {
		return CategoryTimeOfDay
	}
	return CategoryZipCode
}

// Valid reports whether the category is one of the two known axes.
func (c Category) Valid() bool {
	return c == CategoryZipCode || c == CategoryTimeOfDay
}

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryZipCode:
		return "zip_code"
	case CategoryTimeOfDay:
		return "time_of_day"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory converts a wire/CLI representation into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zip_code", "zip", "zipcode":
		return CategoryZipCode, nil
	case "time_of_day", "time", "timeofday":
		return CategoryTimeOfDay, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// Stat identifies which summary statistic a report should display.
type Stat int

const (
	StatMin Stat = iota
	StatAvg
	StatMax
)

// String implements fmt.Stringer.
func (s Stat) String() string {
	switch s {
	case StatMin:
		return "min"
	case StatAvg:
		return "avg"
	case StatMax:
		return "max"
	default:
		return fmt.Sprintf("stat(%d)", int(s))
	}
}

// ParseStat converts a wire/CLI representation into a Stat.
func ParseStat(s string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimum":
		return StatMin, nil
	case "avg", "average", "mean":
		return StatAvg, nil
	case "max", "maximum":
		return StatMax, nil
	default:
		return 0, fmt.Errorf("unknown statistic %q", s)
	}
}

// Summary holds the aggregate statistics for a set of matched readings.
type Summary struct {
	Min   float64 `json:"min"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Value returns the summary field selected by stat.
func (s Summary) Value(stat Stat) float64 {
	switch stat {
	case StatMin:
		return s.Min
	case StatMax:
		return s.Max
	default:
		return s.Avg
	}
}
