package session

import (
	"fmt"
	"math"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/selection"
)

// labelGap is how far a new label sits from its geometry, in screen units
const labelGap = 2.0

type constrainMenu struct {
	menu
	s *Session
}

func (m constrainMenu) Invoke(id command.ID) error {
	s := m.s
	switch id {
	case command.Comment:
		s.arm(id)
		return nil
	case command.Reference, command.OtherAngle:
		return s.toggleConstraints(id)
	}

	cs, msg := s.plan(id, s.selectionOrHover())
	if msg != "" {
		s.complain(msg)
		return nil
	}
	err := s.doc.Update("add constraint", func(tx document.Tx) error {
		for _, c := range cs {
			if _, err := tx.AddConstraint(c); err != nil {
				return err
			}
		}
		return nil
	})
	s.sel.Clear()
	return err
}

// Applicable reports whether the current selection satisfies a constraint
// command's preconditions. Menus use it to grey entries out; dispatching
// an inapplicable command still explains what it needs.
func (s *Session) Applicable(id command.ID) bool {
	cls := s.sel.Classify(s.doc)
	switch id {
	case command.Reference, command.OtherAngle:
		_, msg := s.toggleTargets(id, cls)
		return msg == ""
	case command.Comment:
		return true
	}
	if e, ok := s.registry.Entry(id); !ok || e.Family != command.FamilyConstrain {
		return s.registry.Enabled(id)
	}
	_, msg := s.plan(id, cls)
	return msg == ""
}

// plan builds the constraints a command adds for the selection, or the
// message that explains what the command needs
func (s *Session) plan(id command.ID, cls selection.Classification) ([]domain.Constraint, string) {
	lines := s.entitiesOf(cls, domain.Entity.IsLineSegment)
	circles := s.entitiesOf(cls, domain.Entity.IsCircleOrArc)
	pts := cls.PointHandles

	switch id {
	case command.DistanceDia, command.RefDistance:
		c := domain.Constraint{Reference: id == command.RefDistance}
		switch {
		case cls.N == 2 && cls.Points == 2:
			a, b := s.pos(pts[0]), s.pos(pts[1])
			c.Type, c.PtA, c.PtB = domain.ConstraintPtPtDistance, pts[0], pts[1]
			c.ValA, c.Label = a.Dist(b), s.labelNear(a.Mid(b))
		case cls.N == 1 && len(lines) == 1:
			a, b := s.lineEnds(lines[0])
			c.Type, c.PtA, c.PtB = domain.ConstraintPtPtDistance, lines[0].Points[0], lines[0].Points[1]
			c.ValA, c.Label = a.Dist(b), s.labelNear(a.Mid(b))
		case cls.N == 2 && cls.Points == 1 && len(lines) == 1:
			p := s.pos(pts[0])
			a, b := s.lineEnds(lines[0])
			c.Type, c.PtA, c.EntityA = domain.ConstraintPtLineDistance, pts[0], lines[0].H
			c.ValA, c.Label = distToLine(p, a, b), s.labelNear(p.Mid(a.Mid(b)))
		case cls.N == 1 && len(circles) == 1:
			center := s.pos(circles[0].Points[0])
			r := s.radiusOf(circles[0])
			c.Type, c.EntityA = domain.ConstraintDiameter, circles[0].H
			c.ValA = 2 * r
			c.Label = center.Plus(domain.Vector{X: r, Y: r}.Scale(math.Sqrt2 / 2)).Plus(s.labelOffset())
		default:
			return nil, "Bad selection for distance / diameter constraint. This constraint can apply to: two points (distance between points); a line segment (length); a point and a plane face or line (distance); a circle or arc (diameter)."
		}
		return []domain.Constraint{c}, ""

	case command.Angle, command.RefAngle:
		if cls.N != 2 || len(lines) != 2 {
			return nil, "Bad selection for angle constraint. This constraint can apply to: two line segments."
		}
		a0, a1 := s.lineEnds(lines[0])
		b0, b1 := s.lineEnds(lines[1])
		da, db := a1.Minus(a0), b1.Minus(b0)
		deg := math.Abs(math.Atan2(da.Cross(db), da.Dot(db))) * 180 / math.Pi
		at := a0.Mid(a1).Mid(b0.Mid(b1))
		if p, ok := intersect(a0, a1, b0, b1); ok {
			at = p
		}
		return []domain.Constraint{{
			Type: domain.ConstraintAngle, EntityA: lines[0].H, EntityB: lines[1].H,
			ValA: deg, Reference: id == command.RefAngle, Label: s.labelNear(at),
		}}, ""

	case command.Horizontal, command.Vertical:
		t := domain.ConstraintHorizontal
		if id == command.Vertical {
			t = domain.ConstraintVertical
		}
		switch {
		case cls.N == 1 && len(lines) == 1:
			return []domain.Constraint{{Type: t, EntityA: lines[0].H}}, ""
		case cls.N == 2 && cls.Points == 2:
			return []domain.Constraint{{Type: t, PtA: pts[0], PtB: pts[1]}}, ""
		}
		return nil, "Bad selection for horizontal / vertical constraint. This constraint can apply to: two points; a line segment."

	case command.OnEntity:
		switch {
		case cls.N == 2 && cls.Points == 2:
			return []domain.Constraint{{Type: domain.ConstraintPointsCoincident, PtA: pts[0], PtB: pts[1]}}, ""
		case cls.N == 2 && cls.Points == 1 && len(lines) == 1:
			return []domain.Constraint{{Type: domain.ConstraintPtOnLine, PtA: pts[0], EntityA: lines[0].H}}, ""
		case cls.N == 2 && cls.Points == 1 && len(circles) == 1:
			return []domain.Constraint{{Type: domain.ConstraintPtOnCircle, PtA: pts[0], EntityA: circles[0].H}}, ""
		}
		return nil, "Bad selection for on point / curve / plane constraint. This constraint can apply to: two points (points coincident); a point and a line (point on line); a point and a circle or arc (point on curve)."

	case command.Equal:
		switch {
		case cls.N == 2 && len(lines) == 2:
			return []domain.Constraint{{Type: domain.ConstraintEqualLength, EntityA: lines[0].H, EntityB: lines[1].H}}, ""
		case cls.N == 2 && len(circles) == 2:
			return []domain.Constraint{{Type: domain.ConstraintEqualRadius, EntityA: circles[0].H, EntityB: circles[1].H}}, ""
		}
		return nil, "Bad selection for equal length / radius constraint. This constraint can apply to: two line segments (equal length); two circles or arcs (equal radius)."

	case command.AtMidpoint:
		if cls.N == 2 && cls.Points == 1 && len(lines) == 1 {
			return []domain.Constraint{{Type: domain.ConstraintAtMidpoint, PtA: pts[0], EntityA: lines[0].H}}, ""
		}
		return nil, "Bad selection for at midpoint constraint. This constraint can apply to: a line segment and a point (point at midpoint)."

	case command.Symmetric:
		switch {
		case cls.N == 2 && cls.Points == 2:
			return []domain.Constraint{{Type: domain.ConstraintSymmetric, PtA: pts[0], PtB: pts[1]}}, ""
		case cls.N == 1 && len(lines) == 1:
			a, b, _ := lines[0].Endpoints()
			return []domain.Constraint{{Type: domain.ConstraintSymmetric, PtA: a, PtB: b}}, ""
		case cls.N == 3 && cls.Points == 2 && len(lines) == 1:
			return []domain.Constraint{{Type: domain.ConstraintSymmetric, PtA: pts[0], PtB: pts[1], EntityA: lines[0].H}}, ""
		}
		return nil, "Bad selection for symmetric constraint. This constraint can apply to: two points or a line segment (symmetric about the workplane's vertical axis); two points and a line segment (symmetric about the line)."

	case command.Parallel, command.Perpendicular:
		if cls.N != 2 || len(lines) != 2 {
			if id == command.Parallel {
				return nil, "Bad selection for parallel / tangent constraint. This constraint can apply to: two line segments (parallel)."
			}
			return nil, "Bad selection for perpendicular constraint. This constraint can apply to: two line segments."
		}
		t := domain.ConstraintParallel
		if id == command.Perpendicular {
			t = domain.ConstraintPerpendicular
		}
		return []domain.Constraint{{Type: t, EntityA: lines[0].H, EntityB: lines[1].H}}, ""

	case command.WhereDragged:
		if cls.N == 1 && cls.Points == 1 {
			return []domain.Constraint{{Type: domain.ConstraintWhereDragged, PtA: pts[0]}}, ""
		}
		return nil, "Bad selection for lock point where dragged constraint. This constraint can apply to: a point."
	}
	return nil, fmt.Sprintf("%s is not a constraint", id)
}

// toggleTargets returns the selected constraints a toggle command acts on
func (s *Session) toggleTargets(id command.ID, cls selection.Classification) ([]domain.Constraint, string) {
	var out []domain.Constraint
	for _, h := range cls.ConstraintHandles {
		c, ok := s.doc.Constraint(h)
		if !ok {
			continue
		}
		switch {
		case id == command.OtherAngle && c.Type == domain.ConstraintAngle:
			out = append(out, c)
		case id == command.Reference && c.HasValue():
			out = append(out, c)
		}
	}
	if len(out) == 0 || len(out) != cls.N {
		if id == command.OtherAngle {
			return nil, "Must select an angle constraint."
		}
		return nil, "Must select a constraint with associated label."
	}
	return out, ""
}

// toggleConstraints flips the reference flag, or swaps an angle for its
// supplement
func (s *Session) toggleConstraints(id command.ID) error {
	cs, msg := s.toggleTargets(id, s.selectionOrHover())
	if msg != "" {
		s.complain(msg)
		return nil
	}
	err := s.doc.Update("toggle "+id.String(), func(tx document.Tx) error {
		for _, c := range cs {
			if id == command.OtherAngle {
				c.Other = !c.Other
				c.ValA = 180 - c.ValA
			} else {
				c.Reference = !c.Reference
			}
			if err := tx.UpdateConstraint(c); err != nil {
				return err
			}
		}
		return nil
	})
	s.sel.Clear()
	return err
}

func (s *Session) pos(h domain.HEntity) domain.Vector {
	e, _ := s.doc.Entity(h)
	return e.Pos
}

func (s *Session) lineEnds(e domain.Entity) (domain.Vector, domain.Vector) {
	return s.pos(e.Points[0]), s.pos(e.Points[1])
}

func (s *Session) radiusOf(e domain.Entity) float64 {
	if e.Type == domain.EntityArc {
		return s.pos(e.Points[1]).Dist(s.pos(e.Points[0]))
	}
	d, _ := s.doc.Entity(e.Distance)
	return d.Value
}

// labelOffset lifts a label clear of the geometry it measures
func (s *Session) labelOffset() domain.Vector {
	return domain.Vector{Y: labelGap / (s.cam.Scale * s.cam.aspect())}
}

func (s *Session) labelNear(v domain.Vector) domain.Vector {
	return v.Plus(s.labelOffset())
}

func distToLine(p, a, b domain.Vector) float64 {
	d := b.Minus(a)
	if l := d.Mag(); l > domain.LengthEps {
		return math.Abs(d.Cross(p.Minus(a))) / l
	}
	return p.Dist(a)
}

// intersect returns where the infinite lines through a0-a1 and b0-b1 meet
func intersect(a0, a1, b0, b1 domain.Vector) (domain.Vector, bool) {
	da, db := a1.Minus(a0), b1.Minus(b0)
	den := da.Cross(db)
	if math.Abs(den) < domain.LengthEps {
		return domain.Vector{}, false
	}
	t := b0.Minus(a0).Cross(db) / den
	return a0.Lerp(a1, t), true
}
