package vision

import (
	"math"
	"testing"
)

func TestGaussianKernelNormalised(t *testing.T) {
	for radius := 1; radius <= 4; radius++ {
		k := GaussianKernel(radius, 1.1)
		if len(k) != 2*radius+1 {
			t.Fatalf("radius %d: kernel length = %d, want %d", radius, len(k), 2*radius+1)
		}
		if diff := math.Abs(k.Sum() - 1); diff > 1e-12 {
			t.Errorf("radius %d: kernel sum off by %g", radius, diff)
		}
		// Symmetric and peaked at the centre.
		for i := 0; i < radius; i++ {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("radius %d: kernel asymmetric at %d", radius, i)
			}
		}
		if k[radius] <= k[0] {
			t.Errorf("radius %d: centre weight %g not above edge weight %g", radius, k[radius], k[0])
		}
	}
}

func TestIdentityKernel(t *testing.T) {
	src := uniformGray(5, 5, 0)
	src.SetGray(2, 2, 200)
	src.SetGray(0, 4, 17)

	out := ConvolveSeparable(src, Kernel{0, 1, 0}, ClampToEdge)
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("identity kernel changed Pix[%d]: %d != %d", i, out.Pix[i], src.Pix[i])
		}
	}
}

func TestConvolveDoesNotMutateInput(t *testing.T) {
	src := uniformGray(4, 4, 10)
	src.SetGray(1, 1, 250)
	before := src.Clone()

	ConvolveSeparable(src, GaussianKernel(2, 1.0), ClampToEdge)
	for i := range src.Pix {
		if src.Pix[i] != before.Pix[i] {
			t.Fatalf("input mutated at Pix[%d]", i)
		}
	}
}

// TestSeparableMatchesDense cross-checks the two-pass implementation
// against a direct dense 2D convolution with the same clamp-to-edge
// bounds.
func TestSeparableMatchesDense(t *testing.T) {
	src := NewGray(7, 6)
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 37) % 251)
	}
	k := GaussianKernel(2, 1.3)

	got := separable(planeFromGray(src), k, k)
	radius := len(k) / 2
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var want float64
			for ky, wy := range k {
				for kx, wx := range k {
					sx := clampIndex(x+kx-radius, src.Width)
					sy := clampIndex(y+ky-radius, src.Height)
					want += wy * wx * float64(src.Gray(sx, sy))
				}
			}
			if diff := math.Abs(got.at(x, y) - want); diff > 1e-9 {
				t.Fatalf("(%d,%d): separable %g vs dense %g", x, y, got.at(x, y), want)
			}
		}
	}
}

func TestClampToEdgeBounds(t *testing.T) {
	// A 1x3 column image convolved along rows must replicate the single
	// edge sample, not read zeros past the border.
	src := NewGray(1, 3)
	src.SetGray(0, 0, 90)
	src.SetGray(0, 1, 90)
	src.SetGray(0, 2, 90)

	out := ConvolveSeparable(src, GaussianKernel(2, 1.0), ClampToEdge)
	for y := 0; y < 3; y++ {
		if got := out.Gray(0, y); got != 90 {
			t.Errorf("row %d = %d, want 90 under clamp-to-edge", y, got)
		}
	}
}
