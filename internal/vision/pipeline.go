package vision

import "fmt"

// Supported scene sizes: MinSize..MaxSize inclusive in SizeStep increments.
const (
	MinSize     = 128
	MaxSize     = 512
	SizeStep    = 32
	DefaultSize = 256
)

// Stage names, in pipeline order. They key the Result maps and name the
// persisted artifacts.
const (
	StageScene     = "scene"
	StageGrayscale = "grayscale"
	StageBlurred   = "blurred"
	StageEdges     = "edges"
	StageCorners   = "corners"
)

// StageNames lists the stages in execution order.
var StageNames = []string{StageScene, StageGrayscale, StageBlurred, StageEdges, StageCorners}

// Params holds the fixed algorithm tunables. They are passed explicitly so
// alternative parameterisations stay testable without code changes; use
// DefaultParams for the stock values.
type Params struct {
	BlurRadius        int     // Gaussian blur kernel radius
	BlurSigma         float64 // Gaussian blur sigma
	WindowRadius      int     // structure-tensor smoothing window radius
	WindowSigma       float64 // structure-tensor smoothing window sigma
	HarrisK           float64 // Harris trace weight, conventionally 0.04..0.06
	ThresholdFraction float64 // corner threshold as a fraction of max response
	NMSRadius         int     // non-maximum suppression window radius
	MarkerRadius      int     // overlay marker radius in pixels
}

// DefaultParams returns the stock pipeline tunables.
func DefaultParams() Params {
	return Params{
		BlurRadius:        2,
		BlurSigma:         1.1,
		WindowRadius:      2,
		WindowSigma:       1.0,
		HarrisK:           0.04,
		ThresholdFraction: 0.2,
		NMSRadius:         1,
		MarkerRadius:      2,
	}
}

// Validate checks the tunables for values that would make a stage
// meaningless or divide by zero.
func (p Params) Validate() error {
	switch {
	case p.BlurRadius < 1:
		return fmt.Errorf("blur radius must be >= 1, got %d", p.BlurRadius)
	case p.BlurSigma <= 0:
		return fmt.Errorf("blur sigma must be > 0, got %g", p.BlurSigma)
	case p.WindowRadius < 1:
		return fmt.Errorf("window radius must be >= 1, got %d", p.WindowRadius)
	case p.WindowSigma <= 0:
		return fmt.Errorf("window sigma must be > 0, got %g", p.WindowSigma)
	case p.HarrisK <= 0 || p.HarrisK >= 0.25:
		return fmt.Errorf("harris k must be in (0, 0.25), got %g", p.HarrisK)
	case p.ThresholdFraction <= 0 || p.ThresholdFraction > 1:
		return fmt.Errorf("threshold fraction must be in (0, 1], got %g", p.ThresholdFraction)
	case p.NMSRadius < 1:
		return fmt.Errorf("suppression radius must be >= 1, got %d", p.NMSRadius)
	case p.MarkerRadius < 0:
		return fmt.Errorf("marker radius must be >= 0, got %d", p.MarkerRadius)
	}
	return nil
}

// ValidateSize checks a requested scene size against the supported set and
// returns an InvalidSizeError when it falls outside.
func ValidateSize(size int) error {
	if size < MinSize || size > MaxSize || size%SizeStep != 0 {
		return &InvalidSizeError{Size: size}
	}
	return nil
}

// Result holds everything one pipeline invocation produced. The maps are
// keyed by stage name; every buffer is exclusively owned by the result.
type Result struct {
	Size    int
	Images  map[string]*Image
	Stats   map[string]Stats
	Corners []Corner
}

// Run executes the full pipeline for the given scene size:
// scene -> grayscale -> blur -> edge magnitude -> Harris corners.
//
// The corner stage recomputes its gradients from the blurred luminance
// (not the raw grayscale), so its structure tensor sees the same smoothed
// signal the edge stage does. Run either returns a complete result or an
// error with no partial output; it holds no state between invocations.
func Run(size int, params Params) (res *Result, err error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	if verr := params.Validate(); verr != nil {
		return nil, &ComputationError{Stage: "params", Err: verr}
	}

	// A stage panic (failed allocation, corrupted index) surfaces as a
	// ComputationError rather than taking down the caller.
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &ComputationError{Stage: "pipeline", Err: fmt.Errorf("%v", r)}
		}
	}()

	scene := SynthesizeScene(size)
	gray := ToGrayscale(scene)
	blurred := GaussianBlur(gray, params.BlurRadius, params.BlurSigma)
	edges := EdgeMagnitude(blurred)
	corners, overlay := HarrisCorners(blurred, scene, params)

	images := map[string]*Image{
		StageScene:     scene,
		StageGrayscale: gray,
		StageBlurred:   blurred,
		StageEdges:     edges,
		StageCorners:   overlay,
	}
	stats := make(map[string]Stats, len(images))
	for name, img := range images {
		stats[name] = CollectStats(name, img)
	}

	return &Result{
		Size:    size,
		Images:  images,
		Stats:   stats,
		Corners: corners,
	}, nil
}
