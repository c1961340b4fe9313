package fruitdrop

import "math"

const (
	hudWidth   = 26
	minRows    = 12
	minCols    = 16
	cellAspect = 2.0 // terminal cells are about twice as tall as wide
)

// viewport maps playfield units to screen cells. The field interior starts
// at (ox, oy); the border sits one cell outside it.
type viewport struct {
	ox, oy     int
	cols, rows int
	upc, upr   float64 // units per column / row
	tooSmall   bool
}

// layout fits a width x height playfield into a w x h screen, leaving room
// for the HUD on the right.
func layout(w, h int, width, height float64) viewport {
	rows := h - 2
	maxCols := w - hudWidth - 3
	if rows < minRows || maxCols < minCols {
		return viewport{tooSmall: true}
	}

	cols := int(math.Round(float64(rows) * width / height * cellAspect))
	if cols > maxCols {
		cols = maxCols
		rows = int(math.Round(float64(cols) * height / width / cellAspect))
	}
	if rows < minRows || cols < minCols {
		return viewport{tooSmall: true}
	}

	return viewport{
		ox:   1,
		oy:   1 + (h-2-rows)/2,
		cols: cols,
		rows: rows,
		upc:  width / float64(cols),
		upr:  height / float64(rows),
	}
}

// cell returns the screen cell containing the playfield point (x, y).
func (v viewport) cell(x, y float64) (col, row int) {
	return v.ox + int(math.Floor(x/v.upc)), v.oy + int(math.Floor(y/v.upr))
}

// center returns the playfield point at the center of a screen cell.
func (v viewport) center(col, row int) (x, y float64) {
	return (float64(col-v.ox) + 0.5) * v.upc, (float64(row-v.oy) + 0.5) * v.upr
}

// inside reports whether a screen cell is in the field interior.
func (v viewport) inside(col, row int) bool {
	return col >= v.ox && col < v.ox+v.cols && row >= v.oy && row < v.oy+v.rows
}

// worldX converts a screen column to a playfield x.
// ok is false outside the field columns.
func (v viewport) worldX(col int) (float64, bool) {
	if v.tooSmall || col < v.ox || col >= v.ox+v.cols {
		return 0, false
	}
	x, _ := v.center(col, v.oy)
	return x, true
}

// hudX is the first column of the HUD panel.
func (v viewport) hudX() int {
	return v.ox + v.cols + 2
}
