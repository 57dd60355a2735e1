package vision

import "math"

// Kernel is a 1D convolution kernel. Smoothing kernels are normalised to
// sum to 1; gradient kernels are not.
type Kernel []float64

// Sum returns the sum of the kernel weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, w := range k {
		s += w
	}
	return s
}

// GaussianKernel builds an odd-length kernel of 2*radius+1 weights
// proportional to the Gaussian density at each offset, normalised to sum
// to 1. A normalised kernel leaves a uniform signal unchanged.
func GaussianKernel(radius int, sigma float64) Kernel {
	k := make(Kernel, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+radius] = w
		sum += w
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// BoundaryPolicy selects how out-of-range samples are resolved during
// convolution.
type BoundaryPolicy int

// ClampToEdge substitutes the nearest in-bounds edge sample for any
// out-of-range lookup. It is the only policy the pipeline uses; both
// convolution passes must apply the same policy.
const ClampToEdge BoundaryPolicy = iota

// plane is a float64 working grid. Intermediate stage results stay in
// floating point so rounding happens once, at the final clamp back into
// the sample domain.
type plane struct {
	w, h int
	v    []float64
}

func newPlane(w, h int) *plane {
	return &plane{w: w, h: h, v: make([]float64, w*h)}
}

func planeFromGray(img *Image) *plane {
	p := newPlane(img.Width, img.Height)
	for i, s := range img.Pix {
		p.v[i] = float64(s)
	}
	return p
}

func (p *plane) at(x, y int) float64     { return p.v[y*p.w+x] }
func (p *plane) set(x, y int, f float64) { p.v[y*p.w+x] = f }

// toGray clamps and rounds every sample back into the uint8 domain.
func (p *plane) toGray() *Image {
	img := NewGray(p.w, p.h)
	for i, f := range p.v {
		img.Pix[i] = clampSample(f)
	}
	return img
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// convolveRows applies k along each row of p with clamp-to-edge bounds.
func convolveRows(p *plane, k Kernel) *plane {
	out := newPlane(p.w, p.h)
	radius := len(k) / 2
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			var acc float64
			for i, w := range k {
				acc += w * p.at(clampIndex(x+i-radius, p.w), y)
			}
			out.set(x, y, acc)
		}
	}
	return out
}

// convolveCols applies k along each column of p with clamp-to-edge bounds.
func convolveCols(p *plane, k Kernel) *plane {
	out := newPlane(p.w, p.h)
	radius := len(k) / 2
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			var acc float64
			for i, w := range k {
				acc += w * p.at(x, clampIndex(y+i-radius, p.h))
			}
			out.set(x, y, acc)
		}
	}
	return out
}

// separable runs the row kernel followed by the column kernel over p.
// Factoring a KxK filter into two 1D passes cuts the per-pixel cost from
// O(K*K) to O(2K).
func separable(p *plane, row, col Kernel) *plane {
	return convolveCols(convolveRows(p, row), col)
}

// ConvolveSeparable applies a 1D kernel along rows then columns of a
// single-channel image, accumulating in float64 and rounding only at the
// end of the second pass. Only ClampToEdge bounds are supported.
func ConvolveSeparable(src *Image, k Kernel, policy BoundaryPolicy) *Image {
	_ = policy // single policy today; the parameter fixes the contract
	return separable(planeFromGray(src), k, k).toGray()
}
