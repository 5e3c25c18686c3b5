// Package dataset holds the in-memory collection of air quality sensor
// readings and answers cross-tabulated summary statistics over it.
//
// A DataSet is either empty or loaded. Loading replaces the whole reading
// collection and rebuilds the per-category label registries with every label
// active; reloading never merges with prior filter state. Every query except
// the load operations fails with an EMPTY_DATASET error while empty.
package dataset

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// MaxHeaderLen is the longest accepted display header.
const MaxHeaderLen = 30

var validate = validator.New()

// Config holds formatting options for rendered reports.
type Config struct {
	// Placeholder is rendered in place of a statistic when a cell has no
	// matching readings.
	Placeholder string
}

// DefaultConfig returns the standard report formatting.
func DefaultConfig() Config {
	return Config{Placeholder: "N/A"}
}

// labelRegistry tracks the distinct labels of one category in
// first-occurrence order, each with an active flag.
type labelRegistry struct {
	order  []string
	active map[string]bool
}

func newLabelRegistry() *labelRegistry {
	return &labelRegistry{active: make(map[string]bool)}
}

func (r *labelRegistry) add(label string) {
	if _, seen := r.active[label]; !seen {
		r.order = append(r.order, label)
		r.active[label] = true
	}
}

// DataSet owns the loaded readings and both label registries. It is not
// safe for concurrent use; callers with concurrent access serialize
// externally.
type DataSet struct {
	header      string
	logger      *slog.Logger
	placeholder string
	readings    []domain.Reading
	labels      map[domain.Category]*labelRegistry
}

// New creates an empty dataset with the given display header.
// Returns a VALIDATION error when the header exceeds MaxHeaderLen.
func New(header string, logger *slog.Logger, cfg Config) (*DataSet, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultConfig().Placeholder
	}

	d := &DataSet{
		logger:      logger,
		placeholder: cfg.Placeholder,
		labels: map[domain.Category]*labelRegistry{
			domain.CategoryZipCode:   newLabelRegistry(),
			domain.CategoryTimeOfDay: newLabelRegistry(),
		},
	}
	if err := d.SetHeader(header); err != nil {
		return nil, err
	}
	return d, nil
}

// Header returns the display header.
func (d *DataSet) Header() string {
	return d.header
}

// SetHeader replaces the display header, enforcing the length rule.
func (d *DataSet) SetHeader(header string) error {
	if err := validate.Var(header, "max=30"); err != nil {
		return errors.NewValidationError("header must be 30 characters or fewer").
			WithContext("length", len(header))
	}
	d.header = header
	return nil
}

// Loaded reports whether a successful load has happened.
func (d *DataSet) Loaded() bool {
	return len(d.readings) > 0
}

// Count returns the number of loaded readings.
func (d *DataSet) Count() int {
	return len(d.readings)
}

// commit replaces the reading collection and rebuilds both registries with
// every discovered label active. Called only after a full successful parse.
func (d *DataSet) commit(readings []domain.Reading) {
	d.readings = readings
	for cat := range d.labels {
		reg := newLabelRegistry()
		for _, reading := range readings {
			reg.add(reading.Field(cat))
		}
		d.labels[cat] = reg
	}
}

// Labels returns every distinct label for the category, active or not, in
// first-occurrence order from the loaded source. The slice is a copy.
func (d *DataSet) Labels(cat domain.Category) ([]string, error) {
	if !d.Loaded() {
		return nil, errors.NewEmptyDatasetError("labels")
	}
	reg := d.labels[cat]
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out, nil
}

// ActiveLabels returns the category's labels whose flag is set, in the same
// order as Labels.
func (d *DataSet) ActiveLabels(cat domain.Category) ([]string, error) {
	if !d.Loaded() {
		return nil, errors.NewEmptyDatasetError("active labels")
	}
	reg := d.labels[cat]
	out := make([]string, 0, len(reg.order))
	for _, label := range reg.order {
		if reg.active[label] {
			out = append(out, label)
		}
	}
	return out, nil
}

// ToggleLabel flips the active flag for label in the category's registry.
func (d *DataSet) ToggleLabel(cat domain.Category, label string) error {
	if !d.Loaded() {
		return errors.NewEmptyDatasetError("toggle")
	}
	reg := d.labels[cat]
	if _, ok := reg.active[label]; !ok {
		return errors.NewNotFoundError("label "+label).
			WithContext("category", cat.String())
	}
	reg.active[label] = !reg.active[label]
	d.logger.Debug("label toggled",
		slog.String("category", cat.String()),
		slog.String("label", label),
		slog.Bool("active", reg.active[label]))
	return nil
}

// CrossTabStatistics summarizes the concentrations of readings matching
// both the zip code and time-of-day labels. Activation state is ignored
// here; it only gates which labels report iteration visits.
func (d *DataSet) CrossTabStatistics(zipLabel, timeLabel string) (domain.Summary, error) {
	if !d.Loaded() {
		return domain.Summary{}, errors.NewEmptyDatasetError("cross-table statistics")
	}
	var values []float64
	for _, reading := range d.readings {
		if reading.ZipCode == zipLabel && reading.TimeOfDay == timeLabel {
			values = append(values, reading.Concentration)
		}
	}
	if len(values) == 0 {
		return domain.Summary{}, errors.NewNoMatchingItemsError(
			"no readings for zip " + zipLabel + " at " + timeLabel)
	}
	return summarize(values), nil
}

// TableStatistics summarizes concentrations for the readings whose
// rowCat field equals label, counting only readings whose opposite-axis
// value is currently active. This is the one query gated by activation
// state; it is intentionally asymmetric with CrossTabStatistics.
func (d *DataSet) TableStatistics(rowCat domain.Category, label string) (domain.Summary, error) {
	if !d.Loaded() {
		return domain.Summary{}, errors.NewEmptyDatasetError("table statistics")
	}
	other := rowCat.Other()
	activeOther := d.labels[other].active

	var values []float64
	for _, reading := range d.readings {
		if reading.Field(rowCat) == label && activeOther[reading.Field(other)] {
			values = append(values, reading.Concentration)
		}
	}
	if len(values) == 0 {
		return domain.Summary{}, errors.NewNoMatchingItemsError(
			"no active readings for " + rowCat.String() + " " + label)
	}
	return summarize(values), nil
}

func summarize(values []float64) domain.Summary {
	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return domain.Summary{
		Min:   min,
		Avg:   sum / float64(len(values)),
		Max:   max,
		Count: len(values),
	}
}
