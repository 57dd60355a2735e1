package vision

import "gonum.org/v1/gonum/stat"

// Stats summarises one finished buffer. Three-channel buffers are reduced
// to luminance before the reduction, so colour and grayscale outputs are
// comparable in the summary.
type Stats struct {
	Name string  `json:"-"`
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// CollectStats computes min, max and mean over every sample of img in its
// reduced channel space.
func CollectStats(name string, img *Image) Stats {
	values := make([]float64, 0, img.Width*img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			values = append(values, float64(img.Luminance(x, y)))
		}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Stats{
		Name: name,
		Min:  int(min),
		Max:  int(max),
		Mean: stat.Mean(values, nil),
	}
}
