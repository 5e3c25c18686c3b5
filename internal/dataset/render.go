package dataset

import (
	"fmt"
	"io"

	"aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// WriteCrossTable renders the zip × time grid of the requested statistic.
// Columns are the currently active time-of-day labels, rows the currently
// active zip codes, both in registry order. Cells with no matching readings
// render the placeholder instead of failing; the raw pairwise statistics
// deliberately ignore activation, which only selects the labels iterated
// here.
func (d *DataSet) WriteCrossTable(w io.Writer, stat domain.Stat) error {
	if !d.Loaded() {
		return errors.NewEmptyDatasetError("cross table")
	}
	timeLabels, err := d.ActiveLabels(domain.CategoryTimeOfDay)
	if err != nil {
		return err
	}
	zipLabels, err := d.ActiveLabels(domain.CategoryZipCode)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-7s", "")
	for _, timeLabel := range timeLabels {
		fmt.Fprintf(w, "%8s", timeLabel)
	}
	fmt.Fprintln(w)

	for _, zipLabel := range zipLabels {
		fmt.Fprintf(w, "%-7s", zipLabel)
		for _, timeLabel := range timeLabels {
			summary, err := d.CrossTabStatistics(zipLabel, timeLabel)
			switch {
			case errors.IsNoMatchingItems(err):
				fmt.Fprintf(w, "%8s", d.placeholder)
			case err != nil:
				return err
			default:
				fmt.Fprintf(w, "%8.2f", summary.Value(stat))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteFieldTable renders one min/avg/max row per active label of rowCat,
// preceded by the active opposite-axis labels describing the filter in
// effect. Rows whose statistics have no matches render a placeholder
// triple.
func (d *DataSet) WriteFieldTable(w io.Writer, rowCat domain.Category) error {
	if !d.Loaded() {
		return errors.NewEmptyDatasetError("field table")
	}
	otherLabels, err := d.ActiveLabels(rowCat.Other())
	if err != nil {
		return err
	}
	rowLabels, err := d.ActiveLabels(rowCat)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "The following data are from sensors matching these criteria:")
	fmt.Fprintln(w)
	for _, label := range otherLabels {
		fmt.Fprintf(w, "- %s\n", label)
	}
	fmt.Fprintf(w, "%-8s%-8s%-8s%-8s\n", "", "Minimum", "Average", "Maximum")

	for _, label := range rowLabels {
		fmt.Fprintf(w, "%-7s", label)
		summary, err := d.TableStatistics(rowCat, label)
		switch {
		case errors.IsNoMatchingItems(err):
			fmt.Fprintf(w, "%8s%8s%8s", d.placeholder, d.placeholder, d.placeholder)
		case err != nil:
			return err
		default:
			fmt.Fprintf(w, "%8.2f%8.2f%8.2f", summary.Min, summary.Avg, summary.Max)
		}
		fmt.Fprintln(w)
	}
	return nil
}
