package model

import (
	"fmt"
	"strings"
)

// FormulaKind enumerates the formulas the calculator can evaluate. The set is
// closed; switch statements over it are expected to be exhaustive.
type FormulaKind int

const (
	GeneralQuadratic FormulaKind = iota
	Pythagoras
	CylinderArea
	GravitationLaw
)

// Slot identifies one of the three numeric inputs. Its meaning depends on the
// active formula (radius/height, mass/distance, coefficients...).
type Slot int

const (
	SlotA Slot = iota
	SlotB
	SlotC
)

// SlotCount is the number of input slots held by a FormState.
const SlotCount = 3

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{SlotA, SlotB, SlotC}
}

// String returns the lowercase slot identifier ("a", "b", "c").
func (s Slot) String() string {
	switch s {
	case SlotA:
		return "a"
	case SlotB:
		return "b"
	case SlotC:
		return "c"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Valid reports whether s is one of SlotA, SlotB or SlotC.
func (s Slot) Valid() bool {
	return s >= SlotA && s <= SlotC
}

// ParseSlot resolves "a", "b" or "c" (case-insensitive) into a Slot.
func ParseSlot(raw string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "a":
		return SlotA, nil
	case "b":
		return SlotB, nil
	case "c":
		return SlotC, nil
	default:
		return 0, fmt.Errorf("model: unknown slot %q", raw)
	}
}

// MarshalText encodes the slot as its identifier.
func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("model: unknown slot %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes an identifier produced by MarshalText.
func (s *Slot) UnmarshalText(text []byte) error {
	parsed, err := ParseSlot(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Field is one user-editable numeric slot. The zero value is an empty field
// without an error flag.
type Field struct {
	Value    string `json:"value"`
	HasError bool   `json:"hasError"`
}

// WithValue returns a copy of the field holding value.
func (f Field) WithValue(value string) Field {
	f.Value = value
	return f
}

// WithError returns a copy of the field with the error flag set to hasError.
func (f Field) WithError(hasError bool) Field {
	f.HasError = hasError
	return f
}

// Fields holds the A, B and C slots by value so snapshots never alias.
type Fields [SlotCount]Field

// Get returns the field stored in slot.
func (fs Fields) Get(slot Slot) Field {
	if !slot.Valid() {
		return Field{}
	}
	return fs[slot]
}

// With returns a copy of fs with slot replaced by field.
func (fs Fields) With(slot Slot, field Field) Fields {
	if !slot.Valid() {
		return fs
	}
	fs[slot] = field
	return fs
}

// FieldsOf builds a Fields snapshot from raw values in A, B, C order. Missing
// trailing values are left empty.
func FieldsOf(values ...string) Fields {
	var fs Fields
	for i := 0; i < len(values) && i < SlotCount; i++ {
		fs[i] = Field{Value: values[i]}
	}
	return fs
}

// FormState is the whole calculator screen: the selected formula, the three
// slots and the last computed result.
type FormState struct {
	Kind          FormulaKind `json:"formula"`
	Fields        Fields      `json:"fields"`
	Result        string      `json:"result,omitempty"`
	ResultVisible bool        `json:"resultVisible"`
}

// Outcome is the result of evaluating a formula. Invalid outcomes carry no
// text; Fields always holds the updated error flags.
type Outcome struct {
	valid  bool
	Text   string
	Fields Fields
}

// Success builds a valid outcome carrying the display text.
func Success(text string, fields Fields) Outcome {
	return Outcome{valid: true, Text: text, Fields: fields}
}

// Invalid builds an outcome signalling that at least one required field failed
// validation.
func Invalid(fields Fields) Outcome {
	return Outcome{Fields: fields}
}

// Valid reports whether the outcome is a Success.
func (o Outcome) Valid() bool {
	return o.valid
}

// FlaggedSlots lists the slots whose error flag is set.
func (o Outcome) FlaggedSlots() []Slot {
	var out []Slot
	for _, slot := range Slots() {
		if o.Fields[slot].HasError {
			out = append(out, slot)
		}
	}
	return out
}
