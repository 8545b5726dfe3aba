package buffer

import "testing"

func TestReadAt(t *testing.T) {
	src := []float32{0, 1, 2, 3}
	for _, c := range []struct {
		pos float32
		out float32
	}{
		{0, 0},
		{1, 1},
		{1.25, 1.25},
		{2.5, 2.5},
		// wraps back to the start
		{3.5, 1.5},
	} {
		got := ReadAt(src, c.pos)
		if got != c.out {
			t.Errorf("ReadAt(%v) = %v, want: %v", c.pos, got, c.out)
		}
	}
}
