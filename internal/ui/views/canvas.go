package views

import (
	"math"
	"strings"

	"sketchedit/internal/domain"
)

// kind is what a canvas cell shows; it selects the cell's style
type kind int

const (
	kindBlank kind = iota
	kindGrid
	kindCurve
	kindConstruction
	kindPoint
	kindSelected
	kindHovered
	kindLabel
	kindReference
	kindMarquee
	kindToolbar
	kindToolbarHover
	kindToolbarChecked
	kindTooltip
)

type cell struct {
	r     rune
	kind  kind
	color string
}

// Canvas is a character grid that screen-space geometry is rasterized
// into. Later drawing overwrites earlier drawing.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// At returns the rune drawn in a cell, or 0 outside the canvas
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0
	}
	return c.cells[y*c.width+x].r
}

func (c *Canvas) set(x, y int, r rune, k kind, color string) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, kind: k, color: color}
}

func round(v float64) int { return int(math.Floor(v + 0.5)) }

// plot draws one glyph at a screen position
func (c *Canvas) plot(p domain.Point2d, r rune, k kind, color string) {
	c.set(round(p.X), round(p.Y), r, k, color)
}

// text writes s starting at (x, y)
func (c *Canvas) text(x, y int, s string, k kind) {
	for _, r := range s {
		c.set(x, y, r, k, "")
		x++
	}
}

// textCentered writes s centred on a screen position
func (c *Canvas) textCentered(p domain.Point2d, s string, k kind) {
	n := len([]rune(s))
	c.text(round(p.X)-n/2, round(p.Y), s, k)
}

// line rasterizes a segment with a glyph chosen by its slope
func (c *Canvas) line(a, b domain.Point2d, k kind, color string) {
	dx, dy := b.X-a.X, b.Y-a.Y
	glyph := slopeGlyph(dx, dy)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.plot(a, glyph, k, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(domain.Point2d{X: a.X + dx*t, Y: a.Y + dy*t}, glyph, k, color)
	}
}

// polyline draws connected segments
func (c *Canvas) polyline(pts []domain.Point2d, k kind, color string) {
	if len(pts) == 1 {
		c.plot(pts[0], '·', k, color)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], k, color)
	}
}

// box draws a rectangle outline
func (c *Canvas) box(minX, minY, maxX, maxY int, k kind) {
	for x := minX; x <= maxX; x++ {
		c.set(x, minY, '─', k, "")
		c.set(x, maxY, '─', k, "")
	}
	for y := minY; y <= maxY; y++ {
		c.set(minX, y, '│', k, "")
		c.set(maxX, y, '│', k, "")
	}
	c.set(minX, minY, '┌', k, "")
	c.set(maxX, minY, '┐', k, "")
	c.set(minX, maxY, '└', k, "")
	c.set(maxX, maxY, '┘', k, "")
}

// slopeGlyph picks a box-drawing character for a direction in screen
// space, where y grows downwards
func slopeGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= 0.4*ax:
		return '─'
	case ax <= 0.4*ay:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	}
	return '╱'
}

// Render styles the grid. Runs of cells with the same style are rendered
// together.
func (c *Canvas) Render(styles *Styles) string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].kind == row[start].kind && row[end].color == row[start].color {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(cl.r)
			}
			if row[start].kind == kindBlank {
				b.WriteString(run.String())
			} else {
				b.WriteString(styles.paint(row[start].kind, row[start].color).Render(run.String()))
			}
			start = end
		}
	}
	return b.String()
}

// String returns the unstyled grid
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			b.WriteRune(c.cells[y*c.width+x].r)
		}
	}
	return b.String()
}
