package model

import internalmodel "github.com/goliatone/go-formcalc/internal/model"

// FormulaKind re-exports the internal FormulaKind enumeration.
type FormulaKind = internalmodel.FormulaKind

const (
	GeneralQuadratic = internalmodel.GeneralQuadratic
	Pythagoras       = internalmodel.Pythagoras
	CylinderArea     = internalmodel.CylinderArea
	GravitationLaw   = internalmodel.GravitationLaw
)

// Slot re-exports the internal Slot enumeration.
type Slot = internalmodel.Slot

const (
	SlotA = internalmodel.SlotA
	SlotB = internalmodel.SlotB
	SlotC = internalmodel.SlotC
)

const SlotCount = internalmodel.SlotCount

type Field = internalmodel.Field
type Fields = internalmodel.Fields
type FormState = internalmodel.FormState
type Outcome = internalmodel.Outcome
type KindSpec = internalmodel.KindSpec

var ErrUnknownFormula = internalmodel.ErrUnknownFormula

// Kinds returns the selectable formulas in display order.
func Kinds() []FormulaKind { return internalmodel.Kinds() }

// Slots returns the input slots in display order.
func Slots() []Slot { return internalmodel.Slots() }

// ParseKind resolves a formula identifier such as "cylinder-area".
func ParseKind(raw string) (FormulaKind, error) { return internalmodel.ParseKind(raw) }

// ParseSlot resolves "a", "b" or "c".
func ParseSlot(raw string) (Slot, error) { return internalmodel.ParseSlot(raw) }

// Spec returns the input requirements and labels for k.
func Spec(k FormulaKind) KindSpec { return internalmodel.Spec(k) }

// FieldsOf builds a Fields snapshot from raw values in A, B, C order.
func FieldsOf(values ...string) Fields { return internalmodel.FieldsOf(values...) }

// Success builds a valid Outcome.
func Success(text string, fields Fields) Outcome { return internalmodel.Success(text, fields) }

// Invalid builds an Outcome flagging invalid input.
func Invalid(fields Fields) Outcome { return internalmodel.Invalid(fields) }

// LabelKey returns the catalog key of the label for slot under k.
func LabelKey(k FormulaKind, slot Slot) string { return internalmodel.LabelKey(k, slot) }

// DefaultLabel returns the built-in English label for slot under k.
func DefaultLabel(k FormulaKind, slot Slot) string { return internalmodel.DefaultLabel(k, slot) }

// DefaultTitle returns the built-in English title of k.
func DefaultTitle(k FormulaKind) string { return internalmodel.DefaultTitle(k) }
