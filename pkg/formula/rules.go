package formula

import "math"

// Constants used by the physical formulas. cylinderPi is the literal the
// calculator has always used, not math.Pi.
const (
	cylinderPi          = 3.1416
	gravitationConstant = 6.67430e-11
)

// quadraticRoots solves a·x² + b·x + c = 0 in single precision. ok is false
// when the discriminant is negative. a == 0 is not guarded.
//
// Explicit float32 conversions keep each product rounded on its own so the
// compiler cannot fuse b*b - 4*a*c.
func quadraticRoots(a, b, c float32) (x1, x2 float32, ok bool) {
	d := float32(b*b) - float32(4*a*c)
	if d < 0 {
		return 0, 0, false
	}
	root := sqrt32(d)
	x1 = (-b + root) / (2 * a)
	x2 = (-b - root) / (2 * a)
	return x1, x2, true
}

// hypotenuse returns √(a² + b²) in single precision.
func hypotenuse(a, b float32) float32 {
	return sqrt32(float32(a*a) + float32(b*b))
}

// cylinderArea returns 2·π·r·(r + h) in double precision; r + h is summed in
// single precision before promotion.
func cylinderArea(r, h float32) float64 {
	sum := float32(r + h)
	return 2 * cylinderPi * float64(r) * float64(sum)
}

// gravitationalForce returns G·m1·m2 / d² in double precision. d² is formed in
// single precision before promotion. d == 0 is not guarded.
func gravitationalForce(m1, m2, d float32) float64 {
	squared := float32(d * d)
	return gravitationConstant * float64(m1) * float64(m2) / float64(squared)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
