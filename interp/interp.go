// package interp provides interpolation helpers.
package interp

import (
	"math"

	"golang.org/x/exp/constraints"
)

// L does linear interpolation:
//
//	L(a, b, c) = (1-c)*a + c*b
//	           = a + c*(b-a)
func L[T constraints.Float](a, b, c T) T {
	return a + c*(b-a)
}

// Clamp limits x to the range [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Cardinal evaluates the trigonometric cardinal function of order n at x,
// the periodic analogue of sinc used as a basis for trigonometric
// interpolation:
//
//	Cardinal(x, 0) = 1
//	Cardinal(x, n) = sin(n*pi*x/2) / (n*sin(pi*x/2))   n odd
//	Cardinal(x, n) = sin(n*pi*x/2) / (n*tan(pi*x/2))   n even
//
// The singularity at x = 0 is removable; the limit there is 1 and is
// returned explicitly so callers can evaluate the basis at its own node.
// For n >= 1 the function is 1 at x = 0 and vanishes at x = 2j/n for
// every other integer j.
func Cardinal[T constraints.Float](x T, n int) T {
	if n == 0 || x == 0 {
		return 1
	}
	num := math.Sin(float64(n) * math.Pi * float64(x) / 2)
	if n%2 == 1 {
		return T(num / (float64(n) * math.Sin(math.Pi*float64(x)/2)))
	}
	return T(num / (float64(n) * math.Tan(math.Pi*float64(x)/2)))
}
