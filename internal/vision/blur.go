package vision

// GaussianBlur smooths a single-channel image with a normalised Gaussian
// kernel of the given radius and sigma, applied separably with
// clamp-to-edge bounds.
func GaussianBlur(src *Image, radius int, sigma float64) *Image {
	return ConvolveSeparable(src, GaussianKernel(radius, sigma), ClampToEdge)
}
