package domain

import (
	"fmt"
	"math"
)

// HEntity identifies an entity. The upper 16 bits hold the owning request,
// the lower 16 bits the entity's index within that request.
type HEntity uint32

// HRequest identifies a request (the user-level object that generates entities).
type HRequest uint32

// HConstraint identifies a constraint
type HConstraint uint32

// HGroup identifies a group
type HGroup uint32

// HStyle identifies a line style
type HStyle uint32

// IsNull reports whether the handle is the null handle
func (h HEntity) IsNull() bool { return h == 0 }

// Request returns the request that generated the entity
func (h HEntity) Request() HRequest { return HRequest(uint32(h) >> 16) }

// Index returns the entity's index within its request
func (h HEntity) Index() int { return int(uint32(h) & 0xffff) }

func (h HEntity) String() string { return fmt.Sprintf("e%08x", uint32(h)) }

// IsNull reports whether the handle is the null handle
func (h HRequest) IsNull() bool { return h == 0 }

// Entity returns the handle of the i-th entity generated by the request
func (h HRequest) Entity(i int) HEntity { return HEntity(uint32(h)<<16 | uint32(i)&0xffff) }

func (h HRequest) String() string { return fmt.Sprintf("r%04x", uint32(h)) }

// IsNull reports whether the handle is the null handle
func (h HConstraint) IsNull() bool { return h == 0 }

func (h HConstraint) String() string { return fmt.Sprintf("c%04x", uint32(h)) }

// IsNull reports whether the handle is the null handle
func (h HGroup) IsNull() bool { return h == 0 }

// IsNull reports whether the handle is the null handle
func (h HStyle) IsNull() bool { return h == 0 }

// LengthEps is the distance below which two positions are the same
const LengthEps = 1e-6

// Vector is a position or direction in workplane units (millimetres)
type Vector struct {
	X float64
	Y float64
}

func (v Vector) Plus(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Minus(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }
func (v Vector) Mag() float64 { return math.Hypot(v.X, v.Y) }
func (v Vector) Dist(o Vector) float64 { return v.Minus(o).Mag() }
func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vector) Cross(o Vector) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vector) Angle() float64 { return math.Atan2(v.Y, v.X) }
func (v Vector) Mid(o Vector) Vector { return v.Lerp(o, 0.5) }
func (v Vector) Lerp(o Vector, t float64) Vector {
	return Vector{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Point2d is a position in screen units (pixels or terminal cells)
type Point2d struct {
	X float64
	Y float64
}

// DistTo returns the distance between two screen points
func (p Point2d) DistTo(o Point2d) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// DistToSegment returns the distance from p to the segment a-b
func (p Point2d) DistToSegment(a, b Point2d) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.DistTo(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.DistTo(Point2d{a.X + t*dx, a.Y + t*dy})
}

// RequestType is the kind of object the user asked for
type RequestType int

const (
	RequestDatumPoint RequestType = iota + 1
	RequestWorkplane
	RequestLineSegment
	RequestCircle
	RequestArc
	RequestCubic
	RequestTTFText
)

var requestTypeNames = map[RequestType]string{
	RequestDatumPoint:  "datum-point",
	RequestWorkplane:   "workplane",
	RequestLineSegment: "line-segment",
	RequestCircle:      "circle",
	RequestArc:         "arc-of-circle",
	RequestCubic:       "cubic",
	RequestTTFText:     "ttf-text",
}

func (t RequestType) String() string {
	if s, ok := requestTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("request(%d)", int(t))
}

// EntityType is the kind of a generated entity
type EntityType int

const (
	EntityPoint EntityType = iota + 1
	EntityWorkplane
	EntityLineSegment
	EntityCircle
	EntityArc
	EntityCubic
	EntityCubicPeriodic
	EntityNormal
	EntityDistance
	EntityFace
	EntityTTFText
)

var entityTypeNames = map[EntityType]string{
	EntityPoint:         "point",
	EntityWorkplane:     "workplane",
	EntityLineSegment:   "line-segment",
	EntityCircle:        "circle",
	EntityArc:           "arc-of-circle",
	EntityCubic:         "cubic",
	EntityCubicPeriodic: "cubic-periodic",
	EntityNormal:        "normal",
	EntityDistance:      "distance",
	EntityFace:          "face",
	EntityTTFText:       "ttf-text",
}

func (t EntityType) String() string {
	if s, ok := entityTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("entity(%d)", int(t))
}

// Entity is one piece of geometry generated by a request
type Entity struct {
	H         HEntity
	Type      EntityType
	Request   HRequest
	Group     HGroup
	Workplane HEntity

	// Points lists the point entities a curve is built from, in order:
	// line (a, b), circle (center), arc (center, start, end),
	// cubic (p0, p1, p2, p3), workplane (origin), text (a, b).
	Points   []HEntity
	Normal   HEntity
	Distance HEntity

	Pos   Vector  // points
	Value float64 // distances
	Angle float64 // normals, radians

	Construction bool
	Style        HStyle
	Str          string
}

func (e Entity) IsPoint() bool { return e.Type == EntityPoint }
func (e Entity) IsNormal() bool { return e.Type == EntityNormal }
func (e Entity) IsWorkplane() bool { return e.Type == EntityWorkplane }
func (e Entity) IsFace() bool { return e.Type == EntityFace }
func (e Entity) IsDistance() bool { return e.Type == EntityDistance }
func (e Entity) IsCircleOrArc() bool { return e.Type == EntityCircle || e.Type == EntityArc }
func (e Entity) IsCubic() bool { return e.Type == EntityCubic || e.Type == EntityCubicPeriodic }
func (e Entity) IsLineSegment() bool { return e.Type == EntityLineSegment }
func (e Entity) IsStylable() bool { return e.Type != EntityPoint && e.Type != EntityNormal && e.Type != EntityDistance && e.Type != EntityWorkplane && e.Type != EntityFace }
func (e Entity) HasVector() bool { return e.Type == EntityLineSegment || e.Type == EntityNormal }

// HasEndpoints reports whether the entity is an open curve
func (e Entity) HasEndpoints() bool {
	return e.Type == EntityLineSegment || e.Type == EntityArc || e.Type == EntityCubic
}

// Endpoints returns the start and finish point handles of an open curve
func (e Entity) Endpoints() (HEntity, HEntity, bool) {
	switch e.Type {
	case EntityLineSegment:
		return e.Points[0], e.Points[1], true
	case EntityArc:
		return e.Points[1], e.Points[2], true
	case EntityCubic:
		return e.Points[0], e.Points[len(e.Points)-1], true
	}
	return 0, 0, false
}

// Request is the user-level object that generates entities
type Request struct {
	H            HRequest
	Type         RequestType
	Group        HGroup
	Workplane    HEntity
	Construction bool
	Style        HStyle
	Str          string
}

// ConstraintType is the kind of a constraint
type ConstraintType int

const (
	ConstraintPointsCoincident ConstraintType = iota + 1
	ConstraintPtPtDistance
	ConstraintPtLineDistance
	ConstraintDiameter
	ConstraintAngle
	ConstraintHorizontal
	ConstraintVertical
	ConstraintParallel
	ConstraintPerpendicular
	ConstraintPtOnLine
	ConstraintPtOnCircle
	ConstraintSymmetric
	ConstraintAtMidpoint
	ConstraintEqualLength
	ConstraintEqualRadius
	ConstraintWhereDragged
	ConstraintComment
)

var constraintTypeNames = map[ConstraintType]string{
	ConstraintPointsCoincident: "points-coincident",
	ConstraintPtPtDistance:     "pt-pt-distance",
	ConstraintPtLineDistance:   "pt-line-distance",
	ConstraintDiameter:         "diameter",
	ConstraintAngle:            "angle",
	ConstraintHorizontal:       "horizontal",
	ConstraintVertical:         "vertical",
	ConstraintParallel:         "parallel",
	ConstraintPerpendicular:    "perpendicular",
	ConstraintPtOnLine:         "pt-on-line",
	ConstraintPtOnCircle:       "pt-on-circle",
	ConstraintSymmetric:        "symmetric",
	ConstraintAtMidpoint:       "at-midpoint",
	ConstraintEqualLength:      "equal-length",
	ConstraintEqualRadius:      "equal-radius",
	ConstraintWhereDragged:     "where-dragged",
	ConstraintComment:          "comment",
}

func (t ConstraintType) String() string {
	if s, ok := constraintTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("constraint(%d)", int(t))
}

// Constraint is a geometric relation between entities
type Constraint struct {
	H         HConstraint
	Type      ConstraintType
	Group     HGroup
	Workplane HEntity

	PtA     HEntity
	PtB     HEntity
	EntityA HEntity
	EntityB HEntity

	ValA      float64
	Reference bool
	Other     bool
	Label     Vector
	Comment   string
}

// HasLabel reports whether the constraint draws a movable text label
func (c Constraint) HasLabel() bool {
	switch c.Type {
	case ConstraintPtPtDistance, ConstraintPtLineDistance, ConstraintDiameter,
		ConstraintAngle, ConstraintComment:
		return true
	}
	return false
}

// HasValue reports whether the constraint carries an editable dimension
func (c Constraint) HasValue() bool {
	return c.HasLabel() && c.Type != ConstraintComment
}

// References reports whether the constraint refers to the entity
func (c Constraint) References(h HEntity) bool {
	return !h.IsNull() && (c.PtA == h || c.PtB == h || c.EntityA == h || c.EntityB == h)
}

// GroupKind is how a group generates its geometry
type GroupKind int

const (
	GroupDrawingWorkplane GroupKind = iota + 1
	GroupDrawing3D
	GroupExtrude
)

func (k GroupKind) String() string {
	switch k {
	case GroupDrawingWorkplane:
		return "sketch-in-plane"
	case GroupDrawing3D:
		return "sketch-in-3d"
	case GroupExtrude:
		return "extrude"
	}
	return fmt.Sprintf("group(%d)", int(k))
}

// Group is an ordered step of the sketch
type Group struct {
	H       HGroup
	Name    string
	Kind    GroupKind
	Scale   float64
	Color   string
	Visible bool
}

// Style is a named line style
type Style struct {
	H     HStyle
	Name  string
	Width float64
	Color string
}

// HandleSet is a set of handles that vanished from the document
type HandleSet struct {
	Entities    map[HEntity]struct{}
	Requests    map[HRequest]struct{}
	Constraints map[HConstraint]struct{}
	Groups      map[HGroup]struct{}
}

// NewHandleSet creates an empty handle set
func NewHandleSet() HandleSet {
	return HandleSet{
		Entities:    make(map[HEntity]struct{}),
		Requests:    make(map[HRequest]struct{}),
		Constraints: make(map[HConstraint]struct{}),
		Groups:      make(map[HGroup]struct{}),
	}
}

func (s HandleSet) HasEntity(h HEntity) bool {
	_, ok := s.Entities[h]
	return ok
}

func (s HandleSet) HasRequest(h HRequest) bool {
	_, ok := s.Requests[h]
	return ok
}

func (s HandleSet) HasConstraint(h HConstraint) bool {
	_, ok := s.Constraints[h]
	return ok
}

func (s HandleSet) HasGroup(h HGroup) bool {
	_, ok := s.Groups[h]
	return ok
}

// Empty reports whether nothing vanished
func (s HandleSet) Empty() bool {
	return len(s.Entities) == 0 && len(s.Requests) == 0 && len(s.Constraints) == 0 && len(s.Groups) == 0
}
