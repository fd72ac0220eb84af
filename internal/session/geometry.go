package session

import (
	"math"

	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/pending"
)

const (
	circleSegments = 48
	cubicSegments  = 24
	workplaneHalf  = 5.0
	normalLength   = 4.0 // screen units
)

// geometry reads positions through the pending preview so that painting
// and hit testing see the working values of an active drag.
type geometry struct {
	doc document.Reader
	pv  pending.Preview
}

func (g geometry) point(h domain.HEntity) (domain.Vector, bool) {
	e, ok := g.doc.Entity(h)
	if !ok || !e.IsPoint() {
		return domain.Vector{}, false
	}
	return g.pv.Point(e), true
}

func (g geometry) radius(e domain.Entity) (float64, bool) {
	d, ok := g.doc.Entity(e.Distance)
	if !ok {
		return 0, false
	}
	return g.pv.Distance(d), true
}

// outline returns the polyline drawn for a curve, in workplane units
func (g geometry) outline(e domain.Entity) []domain.Vector {
	pts := make([]domain.Vector, 0, len(e.Points))
	for _, h := range e.Points {
		p, ok := g.point(h)
		if !ok {
			return nil
		}
		pts = append(pts, p)
	}

	switch e.Type {
	case domain.EntityLineSegment:
		return pts
	case domain.EntityCircle:
		r, ok := g.radius(e)
		if !ok {
			return nil
		}
		return arcPoints(pts[0], r, 0, 2*math.Pi, circleSegments)
	case domain.EntityArc:
		center, start, end := pts[0], pts[1], pts[2]
		r := start.Dist(center)
		a0 := start.Minus(center).Angle()
		sweep := end.Minus(center).Angle() - a0
		for sweep <= 0 {
			sweep += 2 * math.Pi
		}
		n := max(4, int(circleSegments*sweep/(2*math.Pi)))
		return arcPoints(center, r, a0, sweep, n)
	case domain.EntityCubic:
		return cubicPoints(pts[0], pts[1], pts[2], pts[3])
	case domain.EntityWorkplane:
		o := pts[0]
		return []domain.Vector{
			{X: o.X - workplaneHalf, Y: o.Y - workplaneHalf},
			{X: o.X + workplaneHalf, Y: o.Y - workplaneHalf},
			{X: o.X + workplaneHalf, Y: o.Y + workplaneHalf},
			{X: o.X - workplaneHalf, Y: o.Y + workplaneHalf},
			{X: o.X - workplaneHalf, Y: o.Y - workplaneHalf},
		}
	case domain.EntityTTFText:
		a, b := pts[0], pts[1]
		return []domain.Vector{a, {X: b.X, Y: a.Y}, b, {X: a.X, Y: b.Y}, a}
	}
	return nil
}

func arcPoints(c domain.Vector, r, a0, sweep float64, n int) []domain.Vector {
	out := make([]domain.Vector, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		out = append(out, domain.Vector{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return out
}

func cubicPoints(p0, p1, p2, p3 domain.Vector) []domain.Vector {
	out := make([]domain.Vector, 0, cubicSegments+1)
	for i := 0; i <= cubicSegments; i++ {
		t := float64(i) / cubicSegments
		u := 1 - t
		out = append(out, p0.Scale(u*u*u).
			Plus(p1.Scale(3*u*u*t)).
			Plus(p2.Scale(3*u*t*t)).
			Plus(p3.Scale(t*t*t)))
	}
	return out
}

// normalHandle returns the screen position of the arrow tip a normal is
// dragged by. Only workplane normals are drawn.
func (g geometry) normalHandle(cam Camera, owner domain.Entity) (domain.Point2d, domain.Vector, bool) {
	if !owner.IsWorkplane() || len(owner.Points) == 0 {
		return domain.Point2d{}, domain.Vector{}, false
	}
	n, ok := g.doc.Entity(owner.Normal)
	if !ok {
		return domain.Point2d{}, domain.Vector{}, false
	}
	origin, ok := g.point(owner.Points[0])
	if !ok {
		return domain.Point2d{}, domain.Vector{}, false
	}
	a := g.pv.Angle(n)
	o := cam.ToScreen(origin)
	tip := domain.Point2d{X: o.X + normalLength*math.Cos(a), Y: o.Y - normalLength*math.Sin(a)*cam.aspect()}
	return tip, origin, true
}

// labelAnchor returns where a constraint label is drawn
func (g geometry) labelAnchor(c domain.Constraint) domain.Vector {
	return g.pv.Label(c)
}

func toScreen(cam Camera, pts []domain.Vector) []domain.Point2d {
	out := make([]domain.Point2d, len(pts))
	for i, p := range pts {
		out[i] = cam.ToScreen(p)
	}
	return out
}

// nearPolyline returns the distance from p to the closest segment
func nearPolyline(p domain.Point2d, pts []domain.Point2d) float64 {
	best := math.Inf(1)
	if len(pts) == 1 {
		return p.DistTo(pts[0])
	}
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, p.DistToSegment(pts[i-1], pts[i]))
	}
	return best
}

// crossesRect reports whether any part of the polyline lies inside r
func crossesRect(r pending.Rect, pts []domain.Point2d) bool {
	for _, p := range pts {
		if r.Contains(p) {
			return true
		}
	}
	for i := 1; i < len(pts); i++ {
		if segmentHitsRect(pts[i-1], pts[i], r) {
			return true
		}
	}
	return false
}

// segmentHitsRect clips the segment a-b against r (Liang-Barsky)
func segmentHitsRect(a, b domain.Point2d, r pending.Rect) bool {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}
	return clip(-dx, a.X-r.Min.X) && clip(dx, r.Max.X-a.X) &&
		clip(-dy, a.Y-r.Min.Y) && clip(dy, r.Max.Y-a.Y) && t0 <= t1
}
