package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormula is returned when a formula identifier does not match any
// FormulaKind.
var ErrUnknownFormula = errors.New("model: unknown formula")

// KindSpec describes the inputs a formula needs and how they are presented.
type KindSpec struct {
	Kind          FormulaKind
	ID            string
	TitleKey      string
	Title         string
	Required      []Slot
	AllowNegative bool
	Labels        map[Slot]string
}

var kindSpecs = [...]KindSpec{
	GeneralQuadratic: {
		Kind:          GeneralQuadratic,
		ID:            "quadratic",
		Title:         "Quadratic formula",
		Required:      []Slot{SlotA, SlotB, SlotC},
		AllowNegative: true,
		Labels: map[Slot]string{
			SlotA: "Value A",
			SlotB: "Value B",
			SlotC: "Value C",
		},
	},
	Pythagoras: {
		Kind:     Pythagoras,
		ID:       "pythagoras",
		Title:    "Pythagoras",
		Required: []Slot{SlotA, SlotB},
		Labels: map[Slot]string{
			SlotA: "Value A",
			SlotB: "Value B",
		},
	},
	CylinderArea: {
		Kind:     CylinderArea,
		ID:       "cylinder-area",
		Title:    "Cylinder area",
		Required: []Slot{SlotA, SlotB},
		Labels: map[Slot]string{
			SlotA: "Radius",
			SlotB: "Height",
		},
	},
	GravitationLaw: {
		Kind:     GravitationLaw,
		ID:       "gravitation",
		Title:    "Law of gravitation",
		Required: []Slot{SlotA, SlotB, SlotC},
		Labels: map[Slot]string{
			SlotA: "Mass 1",
			SlotB: "Mass 2",
			SlotC: "Distance",
		},
	},
}

func init() {
	for i := range kindSpecs {
		kindSpecs[i].TitleKey = "formulas." + kindSpecs[i].ID
	}
}

// Kinds returns the selectable formulas in their fixed display order.
func Kinds() []FormulaKind {
	return []FormulaKind{GeneralQuadratic, Pythagoras, CylinderArea, GravitationLaw}
}

// Valid reports whether k is one of the declared formulas.
func (k FormulaKind) Valid() bool {
	return k >= GeneralQuadratic && k <= GravitationLaw
}

// String returns the stable identifier used by catalogs and HTTP payloads.
func (k FormulaKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("formula(%d)", int(k))
	}
	return kindSpecs[k].ID
}

// MarshalText encodes the formula as its identifier.
func (k FormulaKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormula, int(k))
	}
	return []byte(kindSpecs[k].ID), nil
}

// UnmarshalText decodes an identifier produced by MarshalText.
func (k *FormulaKind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a formula identifier (case-insensitive).
func ParseKind(raw string) (FormulaKind, error) {
	id := strings.ToLower(strings.TrimSpace(raw))
	for _, spec := range kindSpecs {
		if spec.ID == id {
			return spec.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, raw)
}

// Spec returns the metadata for k. Unknown kinds yield the zero KindSpec.
func Spec(k FormulaKind) KindSpec {
	if !k.Valid() {
		return KindSpec{}
	}
	spec := kindSpecs[k]
	spec.Required = append([]Slot(nil), spec.Required...)
	labels := make(map[Slot]string, len(spec.Labels))
	for slot, label := range spec.Labels {
		labels[slot] = label
	}
	spec.Labels = labels
	return spec
}

// Requires reports whether slot is an input of k.
func (s KindSpec) Requires(slot Slot) bool {
	for _, required := range s.Required {
		if required == slot {
			return true
		}
	}
	return false
}
