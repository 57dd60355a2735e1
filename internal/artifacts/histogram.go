package artifacts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cooperage-labs/visionpipe/internal/fsutil"
	"github.com/cooperage-labs/visionpipe/internal/vision"
)

// histogramStages are the single-channel stages plotted together.
var histogramStages = []struct {
	stage string
	color color.RGBA
}{
	{vision.StageGrayscale, color.RGBA{R: 70, G: 70, B: 70, A: 255}},
	{vision.StageBlurred, color.RGBA{B: 200, A: 255}},
	{vision.StageEdges, color.RGBA{R: 200, A: 255}},
}

// saveHistogram renders the per-intensity sample counts of the
// single-channel stages as one line plot. The plot is written next to the
// other artifacts and replaced atomically like them.
func saveHistogram(path string, res *vision.Result) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Intensity histograms (%dpx)", res.Size)
	p.X.Label.Text = "Intensity"
	p.Y.Label.Text = "Pixels"
	p.X.Min, p.X.Max = 0, vision.MaxSample

	for _, hs := range histogramStages {
		img, ok := res.Images[hs.stage]
		if !ok {
			return fmt.Errorf("result is missing stage %q", hs.stage)
		}
		pts := make(plotter.XYs, vision.MaxSample+1)
		counts := intensityCounts(img)
		for i, n := range counts {
			pts[i] = plotter.XY{X: float64(i), Y: float64(n)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line for %s: %w", hs.stage, err)
		}
		line.Color = hs.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(hs.stage, line)
	}
	p.Legend.Top = true

	tmp, err := os.CreateTemp(filepath.Dir(path), FileHistogram+".tmp*.png")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	// Save picks the encoder from the file extension, hence the .png
	// suffix on the temp file.
	if err := p.Save(8*vg.Inch, 4*vg.Inch, tmpName); err != nil {
		return err
	}
	return fsutil.RenameAtomic(tmpName, path)
}

func intensityCounts(img *vision.Image) [vision.MaxSample + 1]int {
	var counts [vision.MaxSample + 1]int
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			counts[img.Luminance(x, y)]++
		}
	}
	return counts
}
