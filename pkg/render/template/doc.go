// Package template defines the template engine seam HTML renderers rely on.
package template
