package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formcalc/pkg/form"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/model"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/validation"
)

// Run drives the calculator interactively: pick a formula, fill its fields,
// show the result and optionally start over. Invalid submissions report the
// flagged fields and prompt for them again. Run returns the last FormState
// when the user declines another calculation.
func (r *Renderer) Run(ctx context.Context, evaluator form.Evaluator, opts render.RenderOptions) (model.FormState, error) {
	state := form.New()
	if evaluator == nil {
		return state, ErrNoEvaluator
	}
	l := opts.Localizer()

	if err := r.driver.Info(ctx, l.Text(i18n.KeyAppTitle, nil)+" "+l.Text(i18n.KeyAppAuthor, nil)); err != nil {
		return state, err
	}

	for {
		kind, err := r.promptFormula(ctx, l, state.Kind)
		if err != nil {
			return state, err
		}
		state = form.Select(state, kind)

		for {
			state, err = r.promptFields(ctx, l, state)
			if err != nil {
				return state, err
			}
			var outcome model.Outcome
			state, outcome = form.Submit(state, evaluator)
			if outcome.Valid() {
				if err := r.driver.Info(ctx, r.theme.ResultPrefix+state.Result); err != nil {
					return state, err
				}
				break
			}
			if err := r.reportInvalid(ctx, l, state.Kind, outcome.FlaggedSlots()); err != nil {
				return state, err
			}
		}

		again, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: l.Text(i18n.KeyCalculateAgain, nil),
			Default: true,
		})
		if err != nil {
			return state, err
		}
		if !again {
			return state, nil
		}
	}
}

func (r *Renderer) promptFormula(ctx context.Context, l *i18n.Localizer, current model.FormulaKind) (model.FormulaKind, error) {
	kinds := model.Kinds()
	options := make([]string, len(kinds))
	selected := 0
	for i, kind := range kinds {
		options[i] = l.Title(kind)
		if kind == current {
			selected = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      l.Text(i18n.KeySelectFormula, nil),
		Options:      options,
		DefaultIndex: selected,
	})
	if err != nil {
		return current, err
	}
	if idx < 0 || idx >= len(kinds) {
		return current, fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}
	return kinds[idx], nil
}

func (r *Renderer) promptFields(ctx context.Context, l *i18n.Localizer, state model.FormState) (model.FormState, error) {
	allowNegative := validation.AllowsNegative(state.Kind)
	invalid := errors.New(l.Text(i18n.KeyInvalidNumber, nil))

	for _, entry := range form.Labels(state, l) {
		slot := entry.Slot
		value, err := r.driver.Input(ctx, InputConfig{
			Message: entry.Label,
			Default: state.Fields.Get(slot).Value,
			Validator: func(candidate string) error {
				if !validation.IsAcceptableEdit(candidate, allowNegative) {
					return invalid
				}
				return nil
			},
		})
		if err != nil {
			return state, err
		}
		state = form.Edit(state, slot, value)
	}
	return state, nil
}

func (r *Renderer) reportInvalid(ctx context.Context, l *i18n.Localizer, kind model.FormulaKind, flagged []model.Slot) error {
	message := l.Text(i18n.KeyInvalidNumber, nil)
	for _, slot := range flagged {
		line := fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, l.Label(kind, slot), message)
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}
