// Package artifacts persists the outputs of one pipeline run: the Netpbm
// image files, the JSON summary and a histogram plot. Every file is
// written via temp-file-and-rename, so artifacts from a previous run stay
// intact if a later run fails partway through.
package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/cooperage-labs/visionpipe/internal/fsutil"
	"github.com/cooperage-labs/visionpipe/internal/monitoring"
	"github.com/cooperage-labs/visionpipe/internal/netpbm"
	"github.com/cooperage-labs/visionpipe/internal/vision"
)

// Artifact filenames within the output directory.
const (
	FileScene     = "synthetic_scene.ppm"
	FileGrayscale = "grayscale.pgm"
	FileBlurred   = "blurred.pgm"
	FileEdges     = "edges.pgm"
	FileCorners   = "corners.ppm"
	FileSummary   = "summary.json"
	FileHistogram = "histogram.png"
)

// stageFiles maps stage names to their artifact filenames.
var stageFiles = map[string]string{
	vision.StageScene:     FileScene,
	vision.StageGrayscale: FileGrayscale,
	vision.StageBlurred:   FileBlurred,
	vision.StageEdges:     FileEdges,
	vision.StageCorners:   FileCorners,
}

// StatsJSON is the per-stage entry of the summary file. Mean is rounded
// to two decimals for stable, readable output.
type StatsJSON struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// Meta describes the generated buffers.
type Meta struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Size   int `json:"size"`
}

// Summary is the persisted run summary. The pipeline supplies only the
// numeric values; the timestamp is stamped here, at write time.
type Summary struct {
	GeneratedAt string               `json:"generated_at"`
	Images      map[string]StatsJSON `json:"images"`
	Meta        Meta                 `json:"meta"`
}

// NewSummary assembles a Summary from a pipeline result, stamped with now
// in UTC.
func NewSummary(res *vision.Result, now time.Time) *Summary {
	images := make(map[string]StatsJSON, len(res.Stats))
	for name, st := range res.Stats {
		images[name] = StatsJSON{
			Min:  st.Min,
			Max:  st.Max,
			Mean: math.Round(st.Mean*100) / 100,
		}
	}
	return &Summary{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Images:      images,
		Meta:        Meta{Width: res.Size, Height: res.Size, Size: res.Size},
	}
}

// Save writes all artifacts for res into dir and returns the summary that
// was persisted. The directory is created if missing.
func Save(dir string, res *vision.Result) (*Summary, error) {
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	for stage, name := range stageFiles {
		img, ok := res.Images[stage]
		if !ok {
			return nil, fmt.Errorf("result is missing stage %q", stage)
		}
		var buf bytes.Buffer
		if err := netpbm.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	summary := NewSummary(res, time.Now())
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(dir, FileSummary), data, 0o644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	if err := saveHistogram(filepath.Join(dir, FileHistogram), res); err != nil {
		return nil, fmt.Errorf("write histogram: %w", err)
	}

	monitoring.Logf("saved %d artifacts to %s (size=%d)", len(stageFiles)+2, dir, res.Size)
	return summary, nil
}
