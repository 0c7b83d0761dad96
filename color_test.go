package rt

import (
	"image/color"
	"testing"
)

// TestColorRoundTrip converts RGBA to color.Color and back.
func TestColorRoundTrip(t *testing.T) {
	c := RGB(1, 0.2, 1)
	got := FromColor(c.Color())

	if !almostEqual(got.A, 1) {
		t.Errorf("alpha: got %v, want 1", got.A)
	}
	// 8-bit quantization allows roughly 1/255 of error.
	const q = 1.0 / 254
	if diff := got.R - c.R; diff > q || diff < -q {
		t.Errorf("red: got %v, want about %v", got.R, c.R)
	}
	if diff := got.G - c.G; diff > q || diff < -q {
		t.Errorf("green: got %v, want about %v", got.G, c.G)
	}
}

// TestColorClamping verifies out-of-range kernel results clamp at the byte
// boundary instead of wrapping.
func TestColorClamping(t *testing.T) {
	over := RGBA{R: 1.9, G: -0.5, B: 0.5, A: 1}
	c := over.Color().(color.NRGBA)

	if c.R != 255 {
		t.Errorf("overbright red: got %d, want 255", c.R)
	}
	if c.G != 0 {
		t.Errorf("negative green: got %d, want 0", c.G)
	}
	if c.B != 127 && c.B != 128 {
		t.Errorf("mid blue: got %d, want 127 or 128", c.B)
	}
}

// TestColorArithmetic covers the lighting helpers.
func TestColorArithmetic(t *testing.T) {
	a := RGB(1, 0.2, 0.4)
	b := RGB(0.9, 1, 0.1)

	m := a.mul(b)
	if !almostEqual(m.R, 0.9) || !almostEqual(m.G, 0.2) || !almostEqual(m.B, 0.04) {
		t.Errorf("mul: got %v", m)
	}

	s := a.scale(0.5)
	if !almostEqual(s.R, 0.5) || !almostEqual(s.G, 0.1) || !almostEqual(s.B, 0.2) {
		t.Errorf("scale: got %v", s)
	}

	sum := a.add(b)
	if !almostEqual(sum.R, 1.9) || !almostEqual(sum.G, 1.2) || !almostEqual(sum.B, 0.5) {
		t.Errorf("add: got %v", sum)
	}
	if !almostEqual(sum.A, 1) {
		t.Errorf("add alpha: got %v, want receiver alpha 1", sum.A)
	}
}
