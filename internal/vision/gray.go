package vision

// ToGrayscale reduces a three-channel image to single-channel luminance
// using the BT.601 weights. The input is never modified.
func ToGrayscale(src *Image) *Image {
	out := NewGray(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			out.SetGray(x, y, src.Luminance(x, y))
		}
	}
	return out
}
