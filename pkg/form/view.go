package form

import (
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/model"
)

// FieldView is the presentation data of one active slot.
type FieldView struct {
	Slot          string `json:"slot"`
	Label         string `json:"label"`
	Value         string `json:"value"`
	HasError      bool   `json:"hasError"`
	Error         string `json:"error,omitempty"`
	AllowNegative bool   `json:"allowNegative"`
}

// FormulaOption is one entry of the formula selector.
type FormulaOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
}

// View is a localized, render-ready projection of a FormState.
type View struct {
	Locale        string          `json:"locale"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	SelectLabel   string          `json:"selectLabel"`
	SubmitLabel   string          `json:"submitLabel"`
	Formula       string          `json:"formula"`
	FormulaTitle  string          `json:"formulaTitle"`
	Formulas      []FormulaOption `json:"formulas"`
	Fields        []FieldView     `json:"fields"`
	Result        string          `json:"result,omitempty"`
	ResultVisible bool            `json:"resultVisible"`
}

// SlotLabel pairs an active slot with its localized label.
type SlotLabel struct {
	Slot  model.Slot
	Label string
}

// Labels lists the active slots of state with their labels, in display order.
// A nil localizer yields English.
func Labels(state model.FormState, l *i18n.Localizer) []SlotLabel {
	if l == nil {
		l = i18n.NewLocalizer(nil, "")
	}
	slots := ActiveSlots(state)
	out := make([]SlotLabel, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotLabel{Slot: slot, Label: l.Label(state.Kind, slot)})
	}
	return out
}

// BuildView localizes state for rendering. A nil localizer yields English.
func BuildView(state model.FormState, l *i18n.Localizer) View {
	if l == nil {
		l = i18n.NewLocalizer(nil, "")
	}
	spec := model.Spec(state.Kind)
	view := View{
		Locale:        l.Locale(),
		Title:         l.Text(i18n.KeyAppTitle, nil),
		Author:        l.Text(i18n.KeyAppAuthor, nil),
		SelectLabel:   l.Text(i18n.KeySelectFormula, nil),
		SubmitLabel:   l.Text(i18n.KeyCalculate, nil),
		Formula:       state.Kind.String(),
		FormulaTitle:  l.Title(state.Kind),
		ResultVisible: state.ResultVisible,
	}
	if state.ResultVisible {
		view.Result = state.Result
	}

	for _, kind := range model.Kinds() {
		view.Formulas = append(view.Formulas, FormulaOption{
			ID:       kind.String(),
			Title:    l.Title(kind),
			Selected: kind == state.Kind,
		})
	}

	invalid := l.Text(i18n.KeyInvalidNumber, nil)
	for _, entry := range Labels(state, l) {
		field := state.Fields.Get(entry.Slot)
		fv := FieldView{
			Slot:          entry.Slot.String(),
			Label:         entry.Label,
			Value:         field.Value,
			HasError:      field.HasError,
			AllowNegative: spec.AllowNegative,
		}
		if field.HasError {
			fv.Error = invalid
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}
