package vision

// Scene synthesis. The generated image is a pure function of its size:
// a two-axis colour gradient, three outlined rectangles each with a circle
// beneath, an orange polyline, a row of short dark strokes, and four
// high-contrast anchor squares near the image corners. The anchors give the
// corner detector unambiguous targets for visual verification.

type colorRGB struct {
	R, G, B uint8
}

var (
	sceneRed    = colorRGB{220, 50, 20}
	sceneGreen  = colorRGB{30, 180, 80}
	sceneBlue   = colorRGB{30, 120, 220}
	sceneOrange = colorRGB{255, 160, 0}
	sceneDark   = colorRGB{40, 40, 40}
	sceneWhite  = colorRGB{255, 255, 255}
)

// SynthesizeScene builds the deterministic test scene at size x size pixels.
// The caller is responsible for validating size; see ValidateSize.
func SynthesizeScene(size int) *Image {
	img := NewRGB(size, size)

	// Gradient background. Normalised coordinates keep the ramp identical
	// in shape at every supported size.
	den := float64(size - 1)
	if den < 1 {
		den = 1
	}
	for y := 0; y < size; y++ {
		ry := float64(y) / den
		for x := 0; x < size; x++ {
			rx := float64(x) / den
			r := 0.4 + 0.6*rx
			g := 0.3 + 0.4*(1-ry)
			b := 0.5 + 0.5*(1-rx*ry)
			img.SetRGB(x, y,
				clampSample(r*MaxSample),
				clampSample(g*MaxSample),
				clampSample(b*MaxSample))
		}
	}

	// Three outlined rectangles across the upper band, each with a circle
	// centred beneath it.
	rects := []struct {
		x0, y0, x1, y1 float64
		c              colorRGB
	}{
		{0.1, 0.12, 0.35, 0.36, sceneRed},
		{0.4, 0.16, 0.65, 0.40, sceneGreen},
		{0.7, 0.20, 0.9, 0.44, sceneBlue},
	}
	for _, r := range rects {
		x0, y0 := scaled(size, r.x0), scaled(size, r.y0)
		x1, y1 := scaled(size, r.x1), scaled(size, r.y1)
		strokeRect(img, x0, y0, x1, y1, r.c, 4)
		cx := (x0 + x1) / 2
		cy := y1 + scaled(size, 0.14)
		strokeCircle(img, cx, cy, scaled(size, 0.1), r.c, 4)
	}

	// Polyline across the lower third.
	pts := [][2]int{
		{scaled(size, 0.12), scaled(size, 0.82)},
		{scaled(size, 0.39), scaled(size, 0.74)},
		{scaled(size, 0.66), scaled(size, 0.80)},
		{scaled(size, 0.9), scaled(size, 0.70)},
	}
	for i := 0; i+1 < len(pts); i++ {
		strokeLine(img, pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1], sceneOrange, 3)
	}

	// Six short dark strokes, alternating vertical offset.
	for i := 0; i < 6; i++ {
		sx := scaled(size, 0.18) + i*scaled(size, 0.1)
		sy := scaled(size, 0.70) + (i%2)*scaled(size, 0.05)
		strokeLine(img, sx, sy, sx+scaled(size, 0.06), sy+scaled(size, 0.16), sceneDark, 2)
	}

	// Anchor squares near the image corners.
	half := scaled(size, 0.015)
	if half < 2 {
		half = 2
	}
	for _, a := range [][2]float64{{0.05, 0.05}, {0.95, 0.05}, {0.05, 0.95}, {0.95, 0.95}} {
		ax, ay := scaled(size, a[0]), scaled(size, a[1])
		fillRect(img, ax-half-1, ay-half-1, ax+half+1, ay+half+1, sceneDark)
		fillRect(img, ax-half, ay-half, ax+half, ay+half, sceneWhite)
	}

	return img
}

// scaled converts a relative coordinate into pixels, truncating exactly as
// the scene geometry is defined.
func scaled(size int, rel float64) int {
	return int(float64(size) * rel)
}

// strokeRect draws an axis-aligned rectangle outline of the given stroke
// thickness, growing inward from the outer edge.
func strokeRect(img *Image, x0, y0, x1, y1 int, c colorRGB, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := x0 + t; x <= x1-t; x++ {
			img.SetRGB(x, y0+t, c.R, c.G, c.B)
			img.SetRGB(x, y1-t, c.R, c.G, c.B)
		}
		for y := y0 + t; y <= y1-t; y++ {
			img.SetRGB(x0+t, y, c.R, c.G, c.B)
			img.SetRGB(x1-t, y, c.R, c.G, c.B)
		}
	}
}

// fillRect fills an axis-aligned rectangle, clipping to the image.
func fillRect(img *Image, x0, y0, x1, y1 int, c colorRGB) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGB(x, y, c.R, c.G, c.B)
		}
	}
}

// strokeCircle draws a ring: pixels whose distance from the centre falls
// between radius-thickness and radius.
func strokeCircle(img *Image, cx, cy, radius int, c colorRGB, thickness int) {
	inner := radius - thickness
	if inner < 0 {
		inner = 0
	}
	outerSq := radius * radius
	innerSq := inner * inner
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			if d >= innerSq && d <= outerSq {
				img.SetRGB(x, y, c.R, c.G, c.B)
			}
		}
	}
}

// fillDisc paints a filled disc; radius 0 paints a single pixel.
func fillDisc(img *Image, cx, cy, radius int, c colorRGB) {
	if radius <= 0 {
		img.SetRGB(cx, cy, c.R, c.G, c.B)
		return
	}
	rSq := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= rSq {
				img.SetRGB(x, y, c.R, c.G, c.B)
			}
		}
	}
}

// strokeLine draws a line with Bresenham stepping, stamping a disc at each
// step to give the stroke its thickness.
func strokeLine(img *Image, x0, y0, x1, y1 int, c colorRGB, thickness int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	radius := thickness - 1
	if radius < 0 {
		radius = 0
	}
	for {
		fillDisc(img, x0, y0, radius, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
