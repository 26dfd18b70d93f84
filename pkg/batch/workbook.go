package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formcalc/pkg/model"
)

// SheetName names the sheet written by Write.
const SheetName = "Results"

var header = []any{"formula", "a", "b", "c", "result", "flagged"}

// Write stores report as a workbook on w, one row per evaluated line.
func Write(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("batch: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("batch: write header: %w", err)
	}

	for i, row := range report.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("batch: row %d: %w", row.Line, err)
		}
		values := make([]any, 0, len(header))
		values = append(values, row.Formula)
		for slot := 0; slot < model.SlotCount; slot++ {
			if slot < len(row.Values) {
				values = append(values, row.Values[slot])
			} else {
				values = append(values, "")
			}
		}
		result := row.Result
		if row.Error != "" {
			result = row.Error
		}
		values = append(values, result, flaggedList(row.Flagged))
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("batch: row %d: %w", row.Line, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("batch: write workbook: %w", err)
	}
	return nil
}

func flaggedList(slots []model.Slot) string {
	names := make([]string, len(slots))
	for i, slot := range slots {
		names[i] = slot.String()
	}
	return strings.Join(names, " ")
}
