package tui

import (
	"math"

	"github.com/taberinos/backend/internal/game"
)

// hudRows is reserved at the bottom of the screen for the status line.
const hudRows = 1

// Viewport maps world coordinates onto terminal cells. Each axis is scaled
// independently so the whole playfield is always visible.
type Viewport struct {
	Cols, Rows int
	WorldW     float64
	WorldH     float64
}

func NewViewport(cols, rows int, worldW, worldH float64) Viewport {
	return Viewport{Cols: cols, Rows: max(rows-hudRows, 1), WorldW: worldW, WorldH: worldH}
}

// ToCell returns the cell containing p, clamped to the play area.
func (v Viewport) ToCell(p game.Vector) (int, int) {
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return 0, 0
	}
	x := int(math.Floor(p.X / v.WorldW * float64(v.Cols)))
	y := int(math.Floor(p.Y / v.WorldH * float64(v.Rows)))
	return clamp(x, 0, v.Cols-1), clamp(y, 0, v.Rows-1)
}

// ToWorld returns the world point at the center of cell (x, y).
func (v Viewport) ToWorld(x, y int) game.Vector {
	if v.Cols <= 0 || v.Rows <= 0 {
		return game.Vector{}
	}
	return game.Vector{
		X: (float64(x) + 0.5) / float64(v.Cols) * v.WorldW,
		Y: (float64(y) + 0.5) / float64(v.Rows) * v.WorldH,
	}
}

// InPlayArea reports whether row y is above the HUD.
func (v Viewport) InPlayArea(x, y int) bool {
	return x >= 0 && x < v.Cols && y >= 0 && y < v.Rows
}

// line calls plot for every cell on the Bresenham line between two cells.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
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

// segmentRune picks a glyph that follows the slope of a segment.
func segmentRune(dx, dy float64) rune {
	if dx == 0 && dy == 0 {
		return '·'
	}
	angle := math.Abs(math.Atan2(dy, dx)) * 180 / math.Pi
	switch {
	case angle < 22.5 || angle > 157.5:
		return '─'
	case angle > 67.5 && angle < 112.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
