package geom

import "math"

// GridCells subdivides r into square cells whose side is a third of the
// shorter rectangle side. Column and row counts are rounded, so the last
// cells may overhang r slightly when the sides are not multiples of the
// cell size.
func GridCells(r Rect) []Rect {
	min, _ := r.Bounds()
	w, h := r.Width(), r.Height()
	if w <= Epsilon || h <= Epsilon {
		return nil
	}

	cell := math.Min(w, h) / 3.0
	cols := int(math.Round(w / cell))
	rows := int(math.Round(h / cell))

	cells := make([]Rect, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			cells = append(cells, NewRect(min.X+float64(i)*cell, min.Y+float64(j)*cell, cell, cell))
		}
	}
	return cells
}
