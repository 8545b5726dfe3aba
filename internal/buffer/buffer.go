// package buffer provides some audio buffer primitives.
package buffer

import (
	"github.com/foobiane/randwave/interp"
)

// ReadAt reads src at a fractional position, linearly interpolating between
// the two neighbouring samples and wrapping around the end of the buffer.
// pos must be in [0, len(src)).
func ReadAt(src []float32, pos float32) float32 {
	j, k := int(pos), int(pos+1)%len(src)
	c := pos - float32(j)
	return interp.L(src[j%len(src)], src[k], c)
}
