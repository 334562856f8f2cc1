package core

import "math"

// Viewport maps world coordinates onto a grid of cells and back.
// A cell belongs to a world rect when the cell's center lies inside it, so
// what is drawn and what a click at that cell hits always agree.
type Viewport struct {
	sx, sy float64
}

// NewViewport scales a worldW×worldH world onto cellsW×cellsH cells.
func NewViewport(worldW, worldH, cellsW, cellsH int) Viewport {
	if worldW <= 0 || worldH <= 0 {
		return Viewport{sx: 1, sy: 1}
	}
	return Viewport{
		sx: float64(cellsW) / float64(worldW),
		sy: float64(cellsH) / float64(worldH),
	}
}

// Rect converts a world rect to the cells whose centers it covers.
// The result may be empty for rects smaller than a cell.
func (v Viewport) Rect(r Rect) Rect {
	x0 := cellEdge(float64(r.X), v.sx)
	x1 := cellEdge(float64(r.Right()), v.sx)
	y0 := cellEdge(float64(r.Y), v.sy)
	y1 := cellEdge(float64(r.Bottom()), v.sy)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// VisibleRect is like Rect but never shrinks a non-empty world rect below
// one cell in either axis.
func (v Viewport) VisibleRect(r Rect) Rect {
	c := v.Rect(r)
	if r.W > 0 && c.W <= 0 {
		c.W = 1
	}
	if r.H > 0 && c.H <= 0 {
		c.H = 1
	}
	return c
}

// Point converts a world point to the cell containing it.
func (v Viewport) Point(x, y int) (int, int) {
	return int(math.Floor(float64(x) * v.sx)), int(math.Floor(float64(y) * v.sy))
}

// ToWorld converts a cell to the world point at its center.
func (v Viewport) ToWorld(col, row int) (int, int) {
	return int(math.Floor((float64(col) + 0.5) / v.sx)), int(math.Floor((float64(row) + 0.5) / v.sy))
}

// cellEdge returns the first cell whose center is at or beyond world coordinate w.
func cellEdge(w, scale float64) int {
	return int(math.Ceil(w*scale - 0.5))
}
