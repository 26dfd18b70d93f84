// Package orchestrator wires the form transitions, the formula engine, theme
// selection and the renderer registry behind a single Generate call.
package orchestrator
