package validation

import "github.com/goliatone/go-formcalc/pkg/model"

// FieldIssue describes one required slot that does not hold a complete number.
type FieldIssue struct {
	Slot    string `json:"slot"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// Result summarises a submit-time check of every required slot.
type Result struct {
	Valid  bool         `json:"valid"`
	Issues []FieldIssue `json:"issues,omitempty"`
}

// DefaultInvalidMessage is shown next to flagged fields when no translation
// is available.
const DefaultInvalidMessage = "Enter a valid number"

// CheckFields validates the slots required by kind. Slots outside the required
// set are ignored.
func CheckFields(kind model.FormulaKind, fields model.Fields) Result {
	result := Result{Valid: true}
	for _, slot := range model.Spec(kind).Required {
		if IsCompleteNumber(fields.Get(slot).Value) {
			continue
		}
		result.Valid = false
		result.Issues = append(result.Issues, FieldIssue{
			Slot:    slot.String(),
			Label:   model.DefaultLabel(kind, slot),
			Message: DefaultInvalidMessage,
		})
	}
	return result
}
