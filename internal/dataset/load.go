package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// Column layout of the sensor export. The first row is a header; data rows
// carry at least six fields.
const (
	colZipCode       = 1
	colTimeOfDay     = 4
	colConcentration = 5
	minFields        = 6
)

// Load reads the CSV source and replaces the dataset contents, returning
// the number of readings loaded. The replace is atomic: a parse failure on
// any row leaves the previous readings and registries untouched.
func (d *DataSet) Load(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip the header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, errors.NewParsingError("source has no header row", err)
		}
		return 0, errors.NewParsingError("failed to read header row", err)
	}

	var readings []domain.Reading
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.NewParsingError(fmt.Sprintf("failed to read row %d", row), err)
		}
		reading, err := parseRow(record)
		if err != nil {
			return 0, errors.NewParsingError(fmt.Sprintf("invalid row %d", row), err)
		}
		readings = append(readings, reading)
	}

	d.commit(readings)
	d.logger.Info("dataset loaded",
		slog.Int("records", len(readings)),
		slog.Int("zip_codes", len(d.labels[domain.CategoryZipCode].order)),
		slog.Int("time_buckets", len(d.labels[domain.CategoryTimeOfDay].order)))
	return len(readings), nil
}

// LoadFile opens path, loads it as CSV and closes it before returning.
func (d *DataSet) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.NewStorageError("failed to open data file", err).
			WithContext("path", path)
	}
	defer f.Close()
	return d.Load(f)
}

func parseRow(record []string) (domain.Reading, error) {
	if len(record) < minFields {
		return domain.Reading{}, fmt.Errorf("expected at least %d fields, got %d", minFields, len(record))
	}
	concentration, err := strconv.ParseFloat(record[colConcentration], 64)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("concentration %q is not numeric: %w", record[colConcentration], err)
	}
	return domain.Reading{
		ZipCode:       record[colZipCode],
		TimeOfDay:     record[colTimeOfDay],
		Concentration: concentration,
	}, nil
}
