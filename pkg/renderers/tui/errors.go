package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoEvaluator is returned when a session starts without a formula
	// evaluator.
	ErrNoEvaluator = errors.New("tui: evaluator is required")
	// ErrInvalidSelection is returned when the driver reports an option
	// outside the formula list.
	ErrInvalidSelection = errors.New("tui: invalid formula selection")
)
