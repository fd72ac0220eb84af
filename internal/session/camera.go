package session

import (
	"math"

	"sketchedit/internal/domain"
)

// Camera maps workplane coordinates to screen coordinates. Screen y grows
// downwards. Aspect scales the vertical axis, 0.5 on a terminal whose
// cells are twice as tall as they are wide.
type Camera struct {
	Scale  float64 // screen units per millimetre
	Offset domain.Vector
	Width  float64
	Height float64
	Aspect float64
}

func (c Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// ToScreen projects a workplane point
func (c Camera) ToScreen(v domain.Vector) domain.Point2d {
	return domain.Point2d{
		X: c.Width/2 + (v.X-c.Offset.X)*c.Scale,
		Y: c.Height/2 - (v.Y-c.Offset.Y)*c.Scale*c.aspect(),
	}
}

// ToWorld is the inverse of ToScreen
func (c Camera) ToWorld(p domain.Point2d) domain.Vector {
	return domain.Vector{
		X: (p.X-c.Width/2)/c.Scale + c.Offset.X,
		Y: (c.Height/2-p.Y)/(c.Scale*c.aspect()) + c.Offset.Y,
	}
}

// ZoomAbout scales the view keeping the world point under p fixed
func (c *Camera) ZoomAbout(p domain.Point2d, factor float64) {
	if factor <= 0 {
		return
	}
	before := c.ToWorld(p)
	c.Scale = clampScale(c.Scale * factor)
	after := c.ToWorld(p)
	c.Offset = c.Offset.Plus(before.Minus(after))
}

// Fit centres the box and scales it to fill the viewport with a margin
func (c *Camera) Fit(lo, hi domain.Vector) {
	c.Offset = lo.Mid(hi)
	w, h := hi.X-lo.X, (hi.Y-lo.Y)*c.aspect()
	if w < domain.LengthEps && h < domain.LengthEps {
		return
	}
	sx, sy := math.Inf(1), math.Inf(1)
	if w > domain.LengthEps {
		sx = c.Width / w
	}
	if h > domain.LengthEps {
		sy = c.Height / h
	}
	c.Scale = clampScale(0.8 * math.Min(sx, sy))
}

func clampScale(s float64) float64 {
	return math.Max(1e-3, math.Min(1e4, s))
}
