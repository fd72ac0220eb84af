package toolbar

import "sketchedit/internal/command"

// Metrics positions the buttons. Coordinates grow right and down from
// the top-left of the window.
type Metrics struct {
	Left   int // center of the first button
	Top    int
	PitchX int // distance between the two columns
	PitchY int // distance between rows
	Gap    int // extra rows a spacer adds
	HalfW  int // hit box half extents
	HalfH  int
}

// PixelMetrics lays out 24 pixel icons on a 32 pixel grid
var PixelMetrics = Metrics{Left: 17, Top: 17, PitchX: 32, PitchY: 32, Gap: 16, HalfW: 16, HalfH: 16}

// CellMetrics lays out one-glyph buttons on a terminal grid
var CellMetrics = Metrics{Left: 2, Top: 1, PitchX: 4, PitchY: 1, Gap: 1, HalfW: 2, HalfH: 1}

// Slot is a button or separator center produced by Layout
type Slot struct {
	Item Item
	X    int
	Y    int
}

// Box is an inclusive rectangle
type Box struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether the cell (x, y) lies in the box
func (b Box) Contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Layout walks the buttons two to a row. A spacer finishes the current
// row and skips Gap. Painting and hit testing both go through Layout so
// they always agree. visit returns false to stop early.
func (t *Toolbar) Layout(visit func(Slot) bool) {
	m := t.metrics
	x, y := m.Left, m.Top
	left := true
	for _, it := range t.items {
		if it.Spacer {
			if !left {
				left = true
				x -= m.PitchX
				y += m.PitchY
			}
			if !visit(Slot{Item: it, X: x + m.PitchX/2, Y: y + m.Gap/2}) {
				return
			}
			y += m.Gap
			continue
		}
		if !visit(Slot{Item: it, X: x, Y: y}) {
			return
		}
		if left {
			x += m.PitchX
			left = false
		} else {
			x -= m.PitchX
			y += m.PitchY
			left = true
		}
	}
}

// Bounds is the area the toolbar occupies
func (t *Toolbar) Bounds() Box {
	m := t.metrics
	b := Box{MinX: m.Left - m.HalfW, MinY: m.Top - m.HalfH, MaxX: m.Left + m.PitchX + m.HalfW, MaxY: m.Top}
	t.Layout(func(s Slot) bool {
		if !s.Item.Spacer && s.Y+m.HalfH > b.MaxY {
			b.MaxY = s.Y + m.HalfH
		}
		return true
	})
	return b
}

// box is the set of cells inside the open hit box around a button
func (t *Toolbar) box(s Slot) Box {
	m := t.metrics
	return Box{
		MinX: s.X - m.HalfW + 1, MinY: s.Y - m.HalfH + 1,
		MaxX: s.X + m.HalfW - 1, MaxY: s.Y + m.HalfH - 1,
	}
}

// HitTest returns the button whose open hit box contains (x, y), and
// whether the point is within the toolbar at all
func (t *Toolbar) HitTest(x, y int) (command.ID, bool) {
	if !t.Bounds().Contains(x, y) {
		return command.None, false
	}
	hit := command.None
	t.Layout(func(s Slot) bool {
		if s.Item.Spacer {
			return true
		}
		if t.box(s).Contains(x, y) {
			hit = s.Item.ID
			return false
		}
		return true
	})
	return hit, true
}
