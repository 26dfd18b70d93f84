package formula

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat32 renders v the way the calculator displays single precision
// results: shortest round-trip digits, always with a fractional part, and
// exponent notation (1.5E20) outside [1e-3, 1e7).
func FormatFloat32(v float32) string {
	return formatNumber(float64(v), 32)
}

// FormatFloat64 is FormatFloat32 for double precision results.
func FormatFloat64(v float64) string {
	return formatNumber(v, 64)
}

func formatNumber(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-3 && abs < 1e7) {
		return withFraction(strconv.FormatFloat(v, 'f', -1, bitSize))
	}

	raw := strconv.FormatFloat(v, 'E', -1, bitSize)
	mantissa, exponent, _ := strings.Cut(raw, "E")
	sign := ""
	if strings.HasPrefix(exponent, "-") {
		sign = "-"
	}
	exponent = strings.TrimLeft(strings.TrimLeft(exponent, "+-"), "0")
	if exponent == "" {
		exponent = "0"
	}
	return withFraction(mantissa) + "E" + sign + exponent
}

func withFraction(digits string) string {
	if strings.Contains(digits, ".") {
		return digits
	}
	return digits + ".0"
}
