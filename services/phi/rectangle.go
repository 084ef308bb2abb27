package phi

// Rectangle describes a golden rectangle. Height and Area are rounded to
// four decimal places; Ratio is always phi.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Area   float64 `json:"area"`
	Ratio  float64 `json:"ratio"`
}

// Square is one step of a golden rectangle subdivision.
type Square struct {
	Side      float64 `json:"side"`
	Iteration int     `json:"iteration"`
}

// RectangleFromWidth computes golden rectangle dimensions from a width.
func RectangleFromWidth(width float64) Rectangle {
	height := width / Phi
	return Rectangle{
		Width:  width,
		Height: round4(height),
		Area:   round4(width * height),
		Ratio:  Phi,
	}
}

// RectangleFromHeight computes golden rectangle dimensions from a height.
func RectangleFromHeight(height float64) Rectangle {
	width := height * Phi
	return Rectangle{
		Width:  round4(width),
		Height: height,
		Area:   round4(width * height),
		Ratio:  Phi,
	}
}

// Subdivide removes n squares from a rectangle, each with side equal to the
// current shorter edge. Starting from a golden rectangle this traces the
// squares that generate the golden spiral.
func Subdivide(width, height float64, n int) []Square {
	var squares []Square
	w, h := width, height

	for i := 0; i < n; i++ {
		if w > h {
			squares = append(squares, Square{Side: h, Iteration: i})
			w -= h
		} else {
			squares = append(squares, Square{Side: w, Iteration: i})
			h -= w
		}
	}

	return squares
}
