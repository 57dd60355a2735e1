package vision

import "testing"

func uniformGray(w, h int, v uint8) *Image {
	img := NewGray(w, h)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestImageAllocation(t *testing.T) {
	gray := NewGray(4, 3)
	if len(gray.Pix) != 12 {
		t.Fatalf("gray Pix length = %d, want 12", len(gray.Pix))
	}
	rgb := NewRGB(4, 3)
	if len(rgb.Pix) != 36 {
		t.Fatalf("rgb Pix length = %d, want 36", len(rgb.Pix))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := NewGray(2, 2)
	img.SetGray(1, 1, 42)

	clone := img.Clone()
	clone.SetGray(1, 1, 99)

	if got := img.Gray(1, 1); got != 42 {
		t.Errorf("original mutated through clone: got %d, want 42", got)
	}
	if got := clone.Gray(1, 1); got != 99 {
		t.Errorf("clone sample = %d, want 99", got)
	}
}

func TestSetRGBDiscardsOutOfBounds(t *testing.T) {
	img := NewRGB(2, 2)
	img.SetRGB(-1, 0, 255, 255, 255)
	img.SetRGB(0, 2, 255, 255, 255)
	for i, s := range img.Pix {
		if s != 0 {
			t.Fatalf("out-of-bounds write landed at Pix[%d] = %d", i, s)
		}
	}
}

func TestLuminanceWeights(t *testing.T) {
	img := NewRGB(1, 1)

	cases := []struct {
		r, g, b uint8
		want    uint8
	}{
		{255, 255, 255, 255},
		{0, 0, 0, 0},
		{255, 0, 0, 76},  // round(0.299*255)
		{0, 255, 0, 150}, // round(0.587*255)
		{0, 0, 255, 29},  // round(0.114*255)
	}
	for _, c := range cases {
		img.SetRGB(0, 0, c.r, c.g, c.b)
		if got := img.Luminance(0, 0); got != c.want {
			t.Errorf("Luminance(%d,%d,%d) = %d, want %d", c.r, c.g, c.b, got, c.want)
		}
	}
}

func TestClampSample(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-3.2, 0},
		{0, 0},
		{127.4, 127},
		{127.5, 128},
		{255, 255},
		{300.7, 255},
	}
	for _, c := range cases {
		if got := clampSample(c.in); got != c.want {
			t.Errorf("clampSample(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
