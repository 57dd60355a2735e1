package vision

import "math"

// Sobel factors: each 3x3 Sobel kernel is a smoothing triplet in one axis
// and a central-difference triplet in the other.
var (
	sobelSmooth = Kernel{1, 2, 1}
	sobelDiff   = Kernel{-1, 0, 1}
)

// sobelGradients computes the horizontal and vertical Sobel responses of p.
// Gx differentiates along rows and smooths along columns; Gy the reverse.
func sobelGradients(p *plane) (gx, gy *plane) {
	gx = separable(p, sobelDiff, sobelSmooth)
	gy = separable(p, sobelSmooth, sobelDiff)
	return gx, gy
}

// EdgeMagnitude computes the per-pixel Sobel gradient magnitude
// sqrt(Gx^2 + Gy^2) of a single-channel image, clamped into the sample
// domain. A spatially uniform input yields an all-zero output.
func EdgeMagnitude(src *Image) *Image {
	gx, gy := sobelGradients(planeFromGray(src))
	out := NewGray(src.Width, src.Height)
	for i := range out.Pix {
		out.Pix[i] = clampSample(math.Hypot(gx.v[i], gy.v[i]))
	}
	return out
}
