package dataset

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"aircli/internal/errors"
	"aircli/pkg/contracts/domain"
)

// LoadExcel reads sensor readings from an XLSX workbook. The sheet follows
// the same column contract as the CSV export: a header row, then data rows
// with the zip code, time bucket and concentration in columns 1, 4 and 5.
// Sheet may be empty to use the workbook's first sheet. Same atomic
// replace-or-fail semantics as Load.
func (d *DataSet) LoadExcel(path, sheet string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, errors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return 0, errors.NewParsingError("sheet has no header row", nil)
	}

	readings := make([]domain.Reading, 0, len(rows)-1)
	for i, row := range rows[1:] {
		reading, err := parseRow(row)
		if err != nil {
			return 0, errors.NewParsingError(fmt.Sprintf("invalid row %d", i+2), err)
		}
		readings = append(readings, reading)
	}

	d.commit(readings)
	d.logger.Info("dataset loaded from workbook",
		slog.String("sheet", sheet),
		slog.Int("records", len(readings)))
	return len(readings), nil
}
