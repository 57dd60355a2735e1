// Package vision implements the deterministic synthetic-vision pipeline:
// scene synthesis, grayscale reduction, separable Gaussian smoothing,
// Sobel edge magnitude and Harris corner detection. Every stage is a pure
// function from its input buffers to a freshly allocated output buffer, so
// two runs with the same size and parameters produce identical results.
package vision

import "math"

// MaxSample is the upper bound of the sample domain. All buffers hold
// samples in [0, MaxSample].
const MaxSample = 255

// Channel counts supported by Image.
const (
	GrayChannels = 1
	RGBChannels  = 3
)

// Image is a dense rectangular pixel buffer: Width*Height*Channels uint8
// samples in row-major, channel-interleaved order. Stages never mutate an
// Image they did not allocate; use Clone when a stage needs a scratch copy.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewGray allocates a zeroed single-channel image.
func NewGray(width, height int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: GrayChannels,
		Pix:      make([]uint8, width*height),
	}
}

// NewRGB allocates a zeroed three-channel image.
func NewRGB(width, height int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: RGBChannels,
		Pix:      make([]uint8, width*height*RGBChannels),
	}
}

// Clone returns a deep copy sharing no storage with the receiver.
func (img *Image) Clone() *Image {
	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
		Pix:      make([]uint8, len(img.Pix)),
	}
	copy(out.Pix, img.Pix)
	return out
}

// In reports whether (x, y) lies inside the image bounds.
func (img *Image) In(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

func (img *Image) offset(x, y int) int {
	return (y*img.Width + x) * img.Channels
}

// Gray returns the sample at (x, y) of a single-channel image.
func (img *Image) Gray(x, y int) uint8 {
	return img.Pix[y*img.Width+x]
}

// SetGray stores a sample at (x, y) of a single-channel image.
func (img *Image) SetGray(x, y int, v uint8) {
	img.Pix[y*img.Width+x] = v
}

// RGB returns the three samples at (x, y) of a three-channel image.
func (img *Image) RGB(x, y int) (r, g, b uint8) {
	i := img.offset(x, y)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// SetRGB stores three samples at (x, y) of a three-channel image. Writes
// outside the image bounds are discarded, which keeps the drawing helpers
// free of per-primitive bounds arithmetic.
func (img *Image) SetRGB(x, y int, r, g, b uint8) {
	if !img.In(x, y) {
		return
	}
	i := img.offset(x, y)
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
}

// clampSample rounds v to the nearest integer and clamps it into the
// sample domain.
func clampSample(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > MaxSample {
		return MaxSample
	}
	return uint8(r)
}

// Luminance reduces a pixel to its luminance using the ITU-R BT.601
// weights. Single-channel images pass through unchanged.
func (img *Image) Luminance(x, y int) uint8 {
	if img.Channels == GrayChannels {
		return img.Gray(x, y)
	}
	r, g, b := img.RGB(x, y)
	return clampSample(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}
