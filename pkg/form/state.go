// Package form implements the calculator screen as a sequence of immutable
// FormState snapshots. Each transition takes a state and returns a new one.
package form

import (
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/validation"
)

// Evaluator computes an Outcome for a formula and its fields.
// *formula.Engine satisfies it.
type Evaluator interface {
	Evaluate(kind model.FormulaKind, fields model.Fields) model.Outcome
}

// New returns the initial screen: GeneralQuadratic selected, blank fields, no
// result.
func New() model.FormState {
	return model.FormState{Kind: model.GeneralQuadratic}
}

// Select switches the active formula. Fields, result text and visibility are
// always reset, even when kind is already selected.
func Select(_ model.FormState, kind model.FormulaKind) model.FormState {
	return model.FormState{Kind: kind}
}

// Edit applies a keystroke-level change to slot. Candidates that are not an
// acceptable partial number are dropped and the previous value kept. A result
// that is already shown stays visible until the next submit.
func Edit(state model.FormState, slot model.Slot, candidate string) model.FormState {
	if !slot.Valid() {
		return state
	}
	field := validation.ApplyEdit(state.Fields.Get(slot), candidate, validation.AllowsNegative(state.Kind))
	state.Fields = state.Fields.With(slot, field)
	return state
}

// EditAll applies Edit to every slot in values, in A, B, C order.
func EditAll(state model.FormState, values map[model.Slot]string) model.FormState {
	for _, slot := range model.Slots() {
		if candidate, ok := values[slot]; ok {
			state = Edit(state, slot, candidate)
		}
	}
	return state
}

// Submit evaluates the active formula. On success the result becomes visible;
// otherwise the result is cleared and hidden. The Outcome is returned so the
// caller can inspect the flagged slots.
func Submit(state model.FormState, evaluator Evaluator) (model.FormState, model.Outcome) {
	outcome := evaluator.Evaluate(state.Kind, state.Fields)
	state.Fields = outcome.Fields
	if outcome.Valid() {
		state.Result = outcome.Text
		state.ResultVisible = true
		return state, outcome
	}
	state.Result = ""
	state.ResultVisible = false
	return state, outcome
}

// ActiveSlots lists the slots shown for the selected formula.
func ActiveSlots(state model.FormState) []model.Slot {
	return model.Spec(state.Kind).Required
}
