package views

import (
	"math"

	"sketchedit/internal/domain"
	"sketchedit/internal/session"
	"sketchedit/internal/toolbar"
)

// gridMinStep is the smallest screen step at which grid dots are drawn
const gridMinStep = 2.0

// Renderer paints session frames onto a canvas
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Draw rasterizes a frame. Grid, geometry, labels, marquee, toolbar and
// tooltip are drawn in that order so later layers cover earlier ones.
func (r *Renderer) Draw(f session.Frame, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if f.Grid != nil {
		drawGrid(c, *f.Grid)
	}
	for _, e := range f.Entities {
		if e.Type == domain.EntityPoint {
			continue
		}
		k, color := entityKind(e)
		c.polyline(e.Path, k, color)
		if len(e.Text) > 0 && len(e.Path) > 0 {
			c.textCentered(e.Path[0], e.Text, k)
		}
	}
	for _, e := range f.Entities {
		if e.Type == domain.EntityPoint && len(e.Path) > 0 {
			k, _ := entityKind(e)
			if k == kindCurve || k == kindConstruction {
				k = kindPoint
			}
			c.plot(e.Path[0], '•', k, "")
		}
	}
	for _, e := range f.Entities {
		if len(e.Handle) == 2 {
			k, color := entityKind(e)
			c.line(e.Handle[0], e.Handle[1], k, color)
			c.plot(e.Handle[1], '◆', k, color)
		}
	}
	for _, l := range f.Labels {
		k := kindLabel
		switch {
		case l.Selected:
			k = kindSelected
		case l.Hovered:
			k = kindHovered
		case l.Reference:
			k = kindReference
		}
		c.textCentered(l.At, l.Text, k)
	}
	if f.Marquee != nil {
		m := f.Marquee
		c.box(round(m.Min.X), round(m.Min.Y), round(m.Max.X), round(m.Max.Y), kindMarquee)
	}
	for _, p := range f.Toolbar {
		if p.Item.Spacer {
			continue
		}
		k := kindToolbar
		switch {
		case p.Hovered:
			k = kindToolbarHover
		case p.Checked, p.Active:
			k = kindToolbarChecked
		}
		drawButton(c, p, k)
	}
	if f.Tooltip != nil {
		c.text(f.Tooltip.X, f.Tooltip.Y, " "+f.Tooltip.Text+" ", kindTooltip)
	}
	return c
}

// Render draws a frame and returns its styled text
func (r *Renderer) Render(f session.Frame, width, height int) string {
	return r.Draw(f, width, height).Render(r.styles)
}

func entityKind(e session.EntityView) (kind, string) {
	switch {
	case e.Selected:
		return kindSelected, ""
	case e.Hovered:
		return kindHovered, ""
	case e.Construction:
		return kindConstruction, e.Color.Hex()
	}
	return kindCurve, e.Color.Hex()
}

func drawGrid(c *Canvas, g session.GridView) {
	if g.StepX < gridMinStep || g.StepY < gridMinStep/2 {
		return
	}
	x0 := g.Origin.X - math.Ceil(g.Origin.X/g.StepX)*g.StepX
	y0 := g.Origin.Y - math.Ceil(g.Origin.Y/g.StepY)*g.StepY
	for y := y0; y < float64(c.Height()); y += g.StepY {
		for x := x0; x < float64(c.Width()); x += g.StepX {
			c.plot(domain.Point2d{X: x, Y: y}, '·', kindGrid, "")
		}
	}
}

// drawButton fills the button's box as "[icon]" so every clickable cell
// shows ink
func drawButton(c *Canvas, p toolbar.Placement, k kind) {
	icon := '?'
	for _, r := range p.Item.Icon {
		icon = r
		break
	}
	for y := p.Box.MinY; y <= p.Box.MaxY; y++ {
		for x := p.Box.MinX; x <= p.Box.MaxX; x++ {
			r := '·'
			switch {
			case x == p.X && y == p.Y:
				r = icon
			case x < p.X:
				r = '['
			case x > p.X:
				r = ']'
			}
			c.set(x, y, r, k, "")
		}
	}
}
