package vision

// Corner is a detected corner: pixel coordinates plus its Harris response.
type Corner struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Score float64 `json:"score"`
}

var markerColor = sceneRed

// HarrisCorners runs Harris-style corner detection over a single-channel
// image and draws a marker for each surviving corner onto a clone of
// scene. Neither input is mutated.
//
// The structure tensor components are the gradient products Ix^2, Iy^2 and
// Ix*Iy, each smoothed with a separable Gaussian window so the tensor
// describes a neighbourhood rather than a single pixel. The response
// R = det - k*trace^2 is thresholded at a fixed fraction of its maximum
// and thinned with non-maximum suppression. A flat input produces no
// corners.
func HarrisCorners(gray, scene *Image, params Params) ([]Corner, *Image) {
	gx, gy := sobelGradients(planeFromGray(gray))
	w, h := gray.Width, gray.Height

	ixx := newPlane(w, h)
	iyy := newPlane(w, h)
	ixy := newPlane(w, h)
	for i := range gx.v {
		ixx.v[i] = gx.v[i] * gx.v[i]
		iyy.v[i] = gy.v[i] * gy.v[i]
		ixy.v[i] = gx.v[i] * gy.v[i]
	}

	window := GaussianKernel(params.WindowRadius, params.WindowSigma)
	a := separable(ixx, window, window)
	c := separable(iyy, window, window)
	b := separable(ixy, window, window)

	response := newPlane(w, h)
	var maxResponse float64
	for i := range response.v {
		det := a.v[i]*c.v[i] - b.v[i]*b.v[i]
		trace := a.v[i] + c.v[i]
		r := det - params.HarrisK*trace*trace
		response.v[i] = r
		if r > maxResponse {
			maxResponse = r
		}
	}

	overlay := scene.Clone()
	if maxResponse <= 0 {
		return nil, overlay
	}
	threshold := params.ThresholdFraction * maxResponse

	var corners []Corner
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := response.at(x, y)
			if r < threshold {
				continue
			}
			if !isLocalMax(response, x, y, params.NMSRadius) {
				continue
			}
			corners = append(corners, Corner{X: x, Y: y, Score: r})
			fillDisc(overlay, x, y, params.MarkerRadius, markerColor)
		}
	}
	return corners, overlay
}

// isLocalMax reports whether the response at (x, y) strictly exceeds every
// neighbour within the suppression window, clamped at the image edge.
func isLocalMax(p *plane, x, y, radius int) bool {
	r := p.at(x, y)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= p.w || ny < 0 || ny >= p.h {
				continue
			}
			if p.at(nx, ny) >= r {
				return false
			}
		}
	}
	return true
}
