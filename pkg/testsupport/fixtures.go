// Package testsupport holds fixture and golden helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcalc/pkg/model"
)

// FormulaCase is one reference evaluation loaded from a JSON fixture.
type FormulaCase struct {
	Name    string            `json:"name"`
	Formula model.FormulaKind `json:"formula"`
	Values  []string          `json:"values"`
	Locale  string            `json:"locale,omitempty"`
	Valid   bool              `json:"valid"`
	Want    string            `json:"want,omitempty"`
	Flagged []model.Slot      `json:"flagged,omitempty"`
}

// Fields builds the input fields of the case.
func (c FormulaCase) Fields() model.Fields {
	return model.FieldsOf(c.Values...)
}

// LoadFormulaCases reads a JSON array of FormulaCase values.
func LoadFormulaCases(path string) ([]FormulaCase, error) {
	if path == "" {
		return nil, errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture: %w", err)
	}
	var out []FormulaCase
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal fixture: %w", err)
	}
	return out, nil
}

// MustLoadFormulaCases is LoadFormulaCases failing the test on error.
func MustLoadFormulaCases(t *testing.T, path string) []FormulaCase {
	t.Helper()

	cases, err := LoadFormulaCases(path)
	if err != nil {
		t.Fatalf("load formula cases: %v", err)
	}
	return cases
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
