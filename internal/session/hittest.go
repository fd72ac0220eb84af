package session

import (
	"math"
	"unicode/utf8"

	"sketchedit/internal/domain"
	"sketchedit/internal/selection"
)

// HitKind says what lies under the pointer
type HitKind int

const (
	HitNothing HitKind = iota
	HitPoint
	HitNormal
	HitLabel
	HitCurve
)

// Hit is the result of a canvas hit test
type Hit struct {
	Kind       HitKind
	Entity     domain.HEntity
	Constraint domain.HConstraint
	// Center is the pivot of a normal handle
	Center domain.Vector
}

// Item is the selection item for the hit
func (h Hit) Item() selection.Item {
	if h.Kind == HitLabel {
		return selection.ConstraintItem(h.Constraint)
	}
	return selection.EntityItem(h.Entity)
}

// IsEmpty reports whether nothing was hit
func (h Hit) IsEmpty() bool { return h.Kind == HitNothing }

// HitTest finds what is under a screen position. Points win over normal
// handles, which win over constraint labels, which win over curves.
func (s *Session) HitTest(p domain.Point2d) Hit {
	s.sel.PurgeNonexistent(s.doc)
	return s.hitTest(p, false)
}

// hitTest skips points being dragged so that a drag can snap to the
// point under the pointer
func (s *Session) hitTest(p domain.Point2d, pointsOnly bool) Hit {
	g := s.geometry()
	r := s.cfg.Editor.HitRadius
	entities := s.doc.Entities()

	best, bestD := Hit{}, math.Inf(1)
	for _, e := range entities {
		if !e.IsPoint() || g.pv.Moving(e.H) {
			continue
		}
		if d := p.DistTo(s.cam.ToScreen(g.pv.Point(e))); d <= r && d < bestD {
			best, bestD = Hit{Kind: HitPoint, Entity: e.H}, d
		}
	}
	if !best.IsEmpty() || pointsOnly {
		return best
	}

	for _, e := range entities {
		tip, center, ok := g.normalHandle(s.cam, e)
		if !ok {
			continue
		}
		if d := p.DistTo(tip); d <= r && d < bestD {
			best, bestD = Hit{Kind: HitNormal, Entity: e.Normal, Center: center}, d
		}
	}
	if !best.IsEmpty() {
		return best
	}

	for _, c := range s.doc.Constraints() {
		if !c.HasLabel() {
			continue
		}
		at := s.cam.ToScreen(g.labelAnchor(c))
		half := float64(utf8.RuneCountInString(s.labelText(c))) / 2
		dx, dy := math.Abs(p.X-at.X), math.Abs(p.Y-at.Y)
		if dx <= half+r && dy <= r {
			if d := p.DistTo(at); d < bestD {
				best, bestD = Hit{Kind: HitLabel, Constraint: c.H}, d
			}
		}
	}
	if !best.IsEmpty() {
		return best
	}

	for _, e := range entities {
		if e.IsPoint() || e.IsNormal() || e.IsDistance() {
			continue
		}
		pts := g.outline(e)
		if len(pts) == 0 {
			continue
		}
		if d := nearPolyline(p, toScreen(s.cam, pts)); d <= r && d < bestD {
			best, bestD = Hit{Kind: HitCurve, Entity: e.H}, d
		}
	}
	return best
}
