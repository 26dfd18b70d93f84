// Package model defines the calculator form state consumed by the evaluation
// engine and the renderers. The concrete types live in internal/model and are
// re-exported here so callers never import internal packages.
//
// A FormState holds the selected FormulaKind and three Field slots (A, B, C).
// Formulas with two inputs leave slot C unused. Every transition returns a new
// value; Fields is an array so copies never share backing storage.
package model
