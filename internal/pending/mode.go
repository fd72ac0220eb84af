package pending

import (
	"fmt"

	"sketchedit/internal/domain"
)

// Mode is the kind of the active pending operation
type Mode int

const (
	None Mode = iota
	Command
	DraggingPoints
	DraggingNewPoint
	DraggingNewLinePoint
	DraggingNewCubicPoint
	DraggingNewArcPoint
	DraggingConstraint
	DraggingRadius
	DraggingNormal
	DraggingNewRadius
	DraggingMarquee
)

var modeNames = [...]string{
	None:                  "none",
	Command:               "command",
	DraggingPoints:        "dragging-points",
	DraggingNewPoint:      "dragging-new-point",
	DraggingNewLinePoint:  "dragging-new-line-point",
	DraggingNewCubicPoint: "dragging-new-cubic-point",
	DraggingNewArcPoint:   "dragging-new-arc-point",
	DraggingConstraint:    "dragging-constraint",
	DraggingRadius:        "dragging-radius",
	DraggingNormal:        "dragging-normal",
	DraggingNewRadius:     "dragging-new-radius",
	DraggingMarquee:       "dragging-marquee",
}

func (m Mode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// IsDragging reports whether the mode follows the mouse
func (m Mode) IsDragging() bool { return m >= DraggingPoints }

// CreatesEntities reports whether the mode places a freshly created entity
func (m Mode) CreatesEntities() bool {
	switch m {
	case DraggingNewPoint, DraggingNewLinePoint, DraggingNewCubicPoint,
		DraggingNewArcPoint, DraggingNewRadius:
		return true
	}
	return false
}

// Rect is a screen rectangle
type Rect struct {
	Min domain.Point2d
	Max domain.Point2d
}

// NewRect returns the rectangle spanned by two corners
func NewRect(a, b domain.Point2d) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Contains reports whether p lies inside the rectangle, edges included
func (r Rect) Contains(p domain.Point2d) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Preview holds the working values of the active operation. Painting and
// hit testing read geometry through it; the document still holds the
// pre-drag values until commit.
type Preview struct {
	Points     map[domain.HEntity]domain.Vector
	Distances  map[domain.HEntity]float64
	Angles     map[domain.HEntity]float64
	Labels     map[domain.HConstraint]domain.Vector
	Marquee    *Rect
	Suggestion domain.ConstraintType
}

func newPreview() Preview {
	return Preview{
		Points:    make(map[domain.HEntity]domain.Vector),
		Distances: make(map[domain.HEntity]float64),
		Angles:    make(map[domain.HEntity]float64),
		Labels:    make(map[domain.HConstraint]domain.Vector),
	}
}

// Point returns the working position of a point entity
func (p Preview) Point(e domain.Entity) domain.Vector {
	if v, ok := p.Points[e.H]; ok {
		return v
	}
	return e.Pos
}

// Distance returns the working value of a distance entity
func (p Preview) Distance(e domain.Entity) float64 {
	if v, ok := p.Distances[e.H]; ok {
		return v
	}
	return e.Value
}

// Angle returns the working angle of a normal entity
func (p Preview) Angle(e domain.Entity) float64 {
	if v, ok := p.Angles[e.H]; ok {
		return v
	}
	return e.Angle
}

// Label returns the working label position of a constraint
func (p Preview) Label(c domain.Constraint) domain.Vector {
	if v, ok := p.Labels[c.H]; ok {
		return v
	}
	return c.Label
}

// Moving reports whether the point is being dragged
func (p Preview) Moving(h domain.HEntity) bool {
	_, ok := p.Points[h]
	return ok
}
