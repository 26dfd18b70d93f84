// Package batch evaluates many formulas at once from a spreadsheet. Each row
// of the first sheet holds a formula identifier followed by the values of
// slots A, B and C. The first non-blank row is skipped as a header when its
// first cell is not a known formula.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/validation"
)

// ErrEmptySheet is returned when the workbook holds no rows to evaluate.
var ErrEmptySheet = errors.New("batch: sheet has no rows")

// Row is the evaluation of one spreadsheet line.
type Row struct {
	Line    int          `json:"line"`
	Formula string       `json:"formula"`
	Values  []string     `json:"values"`
	Valid   bool         `json:"valid"`
	Result  string       `json:"result,omitempty"`
	Flagged []model.Slot `json:"flagged,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Report summarises a batch run.
type Report struct {
	Count   int   `json:"count"`
	Valid   int   `json:"valid"`
	Results []Row `json:"results"`
}

// Evaluate reads a workbook from r and evaluates every row with evaluator.
// Unknown formula identifiers are reported on their row, not as errors.
func Evaluate(ctx context.Context, evaluator form.Evaluator, r io.Reader) (Report, error) {
	if evaluator == nil {
		return Report{}, errors.New("batch: evaluator is nil")
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("batch: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Report{}, fmt.Errorf("batch: read rows: %w", err)
	}
	return EvaluateRows(ctx, evaluator, rows)
}

// EvaluateRows evaluates rows already read from a sheet. Line numbers are
// 1-based to match the spreadsheet.
func EvaluateRows(ctx context.Context, evaluator form.Evaluator, rows [][]string) (Report, error) {
	report := Report{Results: []Row{}}
	first := true
	for i, cells := range rows {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		if blankRow(cells) {
			continue
		}
		row := evaluateRow(evaluator, i+1, cells)
		if first {
			first = false
			if row.Error != "" {
				continue
			}
		}
		report.Results = append(report.Results, row)
		if row.Valid {
			report.Valid++
		}
	}
	if len(report.Results) == 0 {
		return Report{}, ErrEmptySheet
	}
	report.Count = len(report.Results)
	return report, nil
}

func evaluateRow(evaluator form.Evaluator, line int, cells []string) Row {
	row := Row{Line: line, Formula: strings.TrimSpace(cells[0])}

	kind, err := model.ParseKind(row.Formula)
	if err != nil {
		row.Error = err.Error()
		return row
	}

	values := make([]string, 0, model.SlotCount)
	for _, cell := range cells[1:] {
		if len(values) == model.SlotCount {
			break
		}
		values = append(values, strings.TrimSpace(cell))
	}
	row.Values = values

	outcome := evaluator.Evaluate(kind, rowFields(kind, values))
	row.Valid = outcome.Valid()
	row.Result = outcome.Text
	row.Flagged = outcome.FlaggedSlots()
	return row
}

// rowFields builds the fields of a row. Cells may use exponent notation, but
// a negative value is blanked for formulas that only take non-negative
// quantities so the engine flags it.
func rowFields(kind model.FormulaKind, values []string) model.Fields {
	fields := model.FieldsOf(values...)
	if validation.AllowsNegative(kind) {
		return fields
	}
	for i, value := range values {
		if strings.HasPrefix(value, "-") {
			slot := model.Slots()[i]
			fields = fields.With(slot, fields.Get(slot).WithValue(""))
		}
	}
	return fields
}

func blankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
