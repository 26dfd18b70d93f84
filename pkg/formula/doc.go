// Package formula evaluates the calculator formulas against a set of form
// fields. Evaluation validates every required slot first; when any of them is
// not a complete number the outcome is Invalid and no arithmetic runs.
//
// Degenerate inputs (a zero leading coefficient, a zero distance) are not
// guarded: the resulting Infinity/NaN values are rendered into the text.
package formula
