package vision

import "testing"

func TestHarrisNoCornersOnFlatInput(t *testing.T) {
	gray := uniformGray(32, 32, 100)
	scene := NewRGB(32, 32)

	corners, overlay := HarrisCorners(gray, scene, DefaultParams())
	if len(corners) != 0 {
		t.Fatalf("flat input produced %d corners", len(corners))
	}
	if overlay == nil {
		t.Fatal("overlay missing for flat input")
	}
}

// A single bright quadrant has exactly one interior right-angle corner;
// the detector must find it within a small tolerance and nothing else.
func TestHarrisFindsSingleRightAngleCorner(t *testing.T) {
	const size = 64
	const cornerX, cornerY = 32, 32

	gray := uniformGray(size, size, 30)
	for y := cornerY; y < size; y++ {
		for x := cornerX; x < size; x++ {
			gray.SetGray(x, y, 200)
		}
	}
	scene := NewRGB(size, size)

	corners, _ := HarrisCorners(gray, scene, DefaultParams())
	if len(corners) != 1 {
		t.Fatalf("got %d corners, want exactly 1: %+v", len(corners), corners)
	}
	c := corners[0]
	if abs(c.X-cornerX) > 2 || abs(c.Y-cornerY) > 2 {
		t.Fatalf("corner at (%d,%d), want within 2px of (%d,%d)", c.X, c.Y, cornerX, cornerY)
	}
	if c.Score <= 0 {
		t.Fatalf("corner score = %g, want > 0", c.Score)
	}
}

func TestHarrisDoesNotMutateInputs(t *testing.T) {
	gray := uniformGray(48, 48, 30)
	for y := 20; y < 48; y++ {
		for x := 20; x < 48; x++ {
			gray.SetGray(x, y, 220)
		}
	}
	scene := SynthesizeScene(MinSize) // any RGB content will do
	grayBefore := gray.Clone()
	sceneBefore := scene.Clone()

	_, overlay := HarrisCorners(gray, scene, DefaultParams())

	for i := range gray.Pix {
		if gray.Pix[i] != grayBefore.Pix[i] {
			t.Fatalf("gray input mutated at Pix[%d]", i)
		}
	}
	for i := range scene.Pix {
		if scene.Pix[i] != sceneBefore.Pix[i] {
			t.Fatalf("scene input mutated at Pix[%d]", i)
		}
	}
	if &overlay.Pix[0] == &scene.Pix[0] {
		t.Fatal("overlay aliases the scene's backing store")
	}
}

func TestHarrisMarksOverlay(t *testing.T) {
	const size = 64
	gray := uniformGray(size, size, 30)
	for y := 32; y < size; y++ {
		for x := 32; x < size; x++ {
			gray.SetGray(x, y, 200)
		}
	}
	scene := NewRGB(size, size) // black canvas makes markers easy to spot

	corners, overlay := HarrisCorners(gray, scene, DefaultParams())
	if len(corners) == 0 {
		t.Fatal("expected at least one corner")
	}
	r, g, b := overlay.RGB(corners[0].X, corners[0].Y)
	if r != markerColor.R || g != markerColor.G || b != markerColor.B {
		t.Fatalf("marker pixel = (%d,%d,%d), want (%d,%d,%d)",
			r, g, b, markerColor.R, markerColor.G, markerColor.B)
	}
}
