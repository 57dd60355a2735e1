package vision

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSceneDimensionsAndChannels(t *testing.T) {
	img := SynthesizeScene(128)
	if img.Width != 128 || img.Height != 128 {
		t.Fatalf("scene dimensions = %dx%d, want 128x128", img.Width, img.Height)
	}
	if img.Channels != RGBChannels {
		t.Fatalf("scene channels = %d, want %d", img.Channels, RGBChannels)
	}
}

func TestSceneIsDeterministic(t *testing.T) {
	a := SynthesizeScene(160)
	b := SynthesizeScene(160)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two scenes at the same size differ (-a +b):\n%s", diff)
	}
}

func TestSceneGradientCorners(t *testing.T) {
	img := SynthesizeScene(256)

	// Top-left background pixel: rx = ry = 0.
	r, g, b := img.RGB(0, 0)
	if r != clampSample(0.4*255) || g != clampSample(0.7*255) || b != 255 {
		t.Errorf("top-left background = (%d,%d,%d), want (%d,%d,255)",
			r, g, b, clampSample(0.4*255), clampSample(0.7*255))
	}
}

func TestSceneAnchorMarkers(t *testing.T) {
	img := SynthesizeScene(256)

	// The anchor centres are white squares on a dark border.
	for _, a := range [][2]int{{12, 12}, {243, 12}, {12, 243}, {243, 243}} {
		r, g, b := img.RGB(a[0], a[1])
		if r != 255 || g != 255 || b != 255 {
			t.Errorf("anchor at (%d,%d) = (%d,%d,%d), want white", a[0], a[1], r, g, b)
		}
	}
}

func TestSceneScalesWithSize(t *testing.T) {
	for _, size := range []int{MinSize, DefaultSize, MaxSize} {
		img := SynthesizeScene(size)
		if img.Width != size || img.Height != size {
			t.Errorf("size %d: got %dx%d", size, img.Width, img.Height)
		}
	}
}
