package validation

import (
	"math"
	"regexp"
	"strconv"

	"github.com/goliatone/go-formcalc/pkg/model"
)

var (
	signedEditPattern   = regexp.MustCompile(`^-?[0-9]*\.?[0-9]*$`)
	unsignedEditPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)
)

// IsAcceptableEdit reports whether candidate is a valid partial or complete
// numeric literal: an optional leading minus (only when allowNegative), digits,
// at most one decimal point, digits. The empty string is always acceptable so
// a field can be cleared.
func IsAcceptableEdit(candidate string, allowNegative bool) bool {
	if candidate == "" {
		return true
	}
	if allowNegative {
		return signedEditPattern.MatchString(candidate)
	}
	return unsignedEditPattern.MatchString(candidate)
}

// IsCompleteNumber reports whether value is non-empty and parses as a finite
// 32-bit float. Partial edits such as "-", "." or "" are rejected.
func IsCompleteNumber(value string) bool {
	_, ok := ParseNumber(value)
	return ok
}

// ParseNumber parses value as a finite 32-bit float.
func ParseNumber(value string) (float32, bool) {
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, false
	}
	if math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return float32(parsed), true
}

// ApplyEdit returns field holding candidate when the edit is acceptable and
// field unchanged otherwise. The error flag is left as is; it only changes on
// the next evaluation.
func ApplyEdit(field model.Field, candidate string, allowNegative bool) model.Field {
	if !IsAcceptableEdit(candidate, allowNegative) {
		return field
	}
	return field.WithValue(candidate)
}

// AllowsNegative reports whether the inputs of kind may carry a minus sign.
// Only the quadratic coefficients can be negative; every other formula works
// on physical quantities.
func AllowsNegative(kind model.FormulaKind) bool {
	return model.Spec(kind).AllowNegative
}
