package core

import "math"

// Viewport maps world units onto terminal cells.
// The world is a fixed-size canvas derived from the terminal size and capped.
type Viewport struct {
	W, H         float64 // World size
	CellW, CellH float64 // World units covered by one cell
}

// ViewportSpec describes how a Viewport is derived from the terminal size.
type ViewportSpec struct {
	MaxW, MaxH   float64
	Margin       float64
	CellW, CellH float64
}

// NewViewport derives a viewport from a screen of cols x rows cells.
// The world is (cells*cellSize - margin) per axis, capped at the maximum,
// and never negative.
func NewViewport(cols, rows int, spec ViewportSpec) Viewport {
	cw, ch := spec.CellW, spec.CellH
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	w := math.Min(float64(cols)*cw-spec.Margin, spec.MaxW)
	h := math.Min(float64(rows)*ch-spec.Margin, spec.MaxH)
	return Viewport{
		W:     math.Max(w, 0),
		H:     math.Max(h, 0),
		CellW: cw,
		CellH: ch,
	}
}

// Cols returns the number of cells covering the world width.
func (v Viewport) Cols() int {
	return int(math.Ceil(v.W / v.CellW))
}

// Rows returns the number of cells covering the world height.
func (v Viewport) Rows() int {
	return int(math.Ceil(v.H / v.CellH))
}

// ToCell converts a world point to the cell containing it.
func (v Viewport) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x / v.CellW)), int(math.Floor(y / v.CellH))
}

// CellRect converts a world box to the cell rectangle covering it.
// Boxes with positive area always cover at least one cell.
func (v Viewport) CellRect(b Box) Rect {
	x0, y0 := v.ToCell(b.X, b.Y)
	x1 := int(math.Ceil(b.Right() / v.CellW))
	y1 := int(math.Ceil(b.Bottom() / v.CellH))
	if b.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if b.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// ToWorld converts a cell to the world point at its center.
func (v Viewport) ToWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * v.CellW, (float64(row) + 0.5) * v.CellH
}
