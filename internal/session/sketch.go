package session

import (
	"fmt"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/selection"
)

var armDescriptions = map[command.ID]string{
	command.DatumPoint:    "click to place datum point",
	command.Workplane:     "click origin of workplane",
	command.LineSegment:   "click first point of line segment",
	command.ConstrSegment: "click first point of construction line segment",
	command.Rectangle:     "click one corner of rectangle",
	command.Circle:        "click center of circle",
	command.Arc:           "click point on arc (draws anti-clockwise)",
	command.Cubic:         "click first point of cubic segment",
	command.TTFText:       "click top left of text",
	command.Comment:       "click center of comment text",
}

// arm waits for the placement click of a creation command
func (s *Session) arm(id command.ID) {
	s.sel.Clear()
	s.pending.Arm(id, armDescriptions[id])
}

type sketchMenu struct {
	menu
	s *Session
}

func (m sketchMenu) Checked(id command.ID) bool {
	switch id {
	case command.SelWorkplane:
		return !m.s.doc.ActiveWorkplane().IsNull()
	case command.FreeIn3D:
		return m.s.doc.ActiveWorkplane().IsNull()
	}
	return false
}

func (m sketchMenu) Invoke(id command.ID) error {
	s := m.s
	switch id {
	case command.SelWorkplane:
		return s.lockWorkplane()
	case command.FreeIn3D:
		if s.doc.ActiveWorkplane().IsNull() {
			return nil
		}
		return s.doc.Update("sketch in 3d", func(tx document.Tx) error {
			return tx.SetActiveWorkplane(0)
		})
	case command.DatumPoint, command.Workplane, command.LineSegment, command.ConstrSegment,
		command.Rectangle, command.Circle, command.Arc, command.Cubic, command.TTFText:
		s.arm(id)
		return nil
	case command.Construction:
		return s.toggleConstruction()
	case command.SplitCurves:
		return s.splitCurves()
	}
	return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
}

// selectedWorkplane returns the selected workplane, if exactly one is
// selected and nothing else
func (s *Session) selectedWorkplane(cls selection.Classification) (domain.HEntity, bool) {
	if cls.N != 1 || cls.Workplanes != 1 {
		return 0, false
	}
	for _, h := range cls.EntityHandles {
		if e, ok := s.doc.Entity(h); ok && e.IsWorkplane() {
			return h, true
		}
	}
	return 0, false
}

func (s *Session) lockWorkplane() error {
	wp, ok := s.selectedWorkplane(s.sel.Classify(s.doc))
	if !ok {
		if !s.doc.ActiveWorkplane().IsNull() {
			return nil
		}
		for _, e := range s.doc.Entities() {
			if e.IsWorkplane() && e.Group == s.doc.ActiveGroup() {
				wp, ok = e.H, true
				break
			}
		}
	}
	if !ok {
		s.complain("No workplane is active, and the group has not created a workplane. Create one first with Sketch -> Workplane.")
		return nil
	}
	s.sel.Clear()
	return s.doc.Update("sketch in workplane", func(tx document.Tx) error {
		return tx.SetActiveWorkplane(wp)
	})
}

func (s *Session) toggleConstruction() error {
	s.selectionOrHover()
	var reqs []domain.HRequest
	seen := make(map[domain.HRequest]bool)
	for _, it := range s.sel.Items() {
		if it.Entity.IsNull() {
			continue
		}
		r := it.Entity.Request()
		if !seen[r] {
			seen[r] = true
			reqs = append(reqs, r)
		}
	}
	if len(reqs) == 0 {
		s.complain("No entities are selected. Select entities before trying to toggle their construction state.")
		return nil
	}
	err := s.doc.Update("toggle construction", func(tx document.Tx) error {
		for _, h := range reqs {
			r, ok := tx.Request(h)
			if !ok {
				continue
			}
			if err := tx.SetConstruction(h, !r.Construction); err != nil {
				return err
			}
		}
		return nil
	})
	s.sel.Clear()
	return err
}

// splitCurves cuts two crossing line segments at their intersection. Each
// line keeps its start; a new line runs from the cut to the old end, and
// the four new ends are made coincident.
func (s *Session) splitCurves() error {
	cls := s.selectionOrHover()
	lines := s.entitiesOf(cls, domain.Entity.IsLineSegment)
	if cls.N != 2 || len(lines) != 2 {
		s.complain("Select two line segments that intersect each other.")
		return nil
	}
	a0, a1, _ := s.endpoints(lines[0])
	b0, b1, _ := s.endpoints(lines[1])
	da, db := a1.Minus(a0), b1.Minus(b0)
	den := da.Cross(db)
	if den > -domain.LengthEps && den < domain.LengthEps {
		s.complain("Curves do not intersect; nothing to split.")
		return nil
	}
	t := b0.Minus(a0).Cross(db) / den
	u := b0.Minus(a0).Cross(da) / den
	const eps = 1e-9
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		s.complain("Curves do not intersect; nothing to split.")
		return nil
	}
	cut := a0.Lerp(a1, t)

	err := s.doc.Update("split curves", func(tx document.Tx) error {
		var ends []domain.HEntity
		for _, line := range lines {
			head, tail, err := splitLine(tx, line, cut)
			if err != nil {
				return err
			}
			ends = append(ends, head, tail)
		}
		for _, h := range ends[1:] {
			if _, err := tx.AddConstraint(domain.Constraint{
				Type: domain.ConstraintPointsCoincident,
				PtA:  ends[0],
				PtB:  h,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	s.sel.Clear()
	return err
}

// splitLine shortens line to end at cut and adds a line from cut to the
// old end, which takes over the constraints on that end
func splitLine(tx document.Tx, line domain.Entity, cut domain.Vector) (domain.HEntity, domain.HEntity, error) {
	oldEnd := line.Points[1]
	end, ok := tx.Entity(oldEnd)
	if !ok {
		return 0, 0, fmt.Errorf("entity %v: %w", oldEnd, document.ErrNotFound)
	}
	hr, err := tx.AddRequest(domain.RequestLineSegment, cut)
	if err != nil {
		return 0, 0, err
	}
	newEnd := hr.Entity(2)
	if err := tx.SetPoint(newEnd, end.Pos); err != nil {
		return 0, 0, err
	}
	if line.Construction {
		if err := tx.SetConstruction(hr, true); err != nil {
			return 0, 0, err
		}
	}
	for _, c := range tx.Constraints() {
		if c.PtA != oldEnd && c.PtB != oldEnd {
			continue
		}
		if c.PtA == oldEnd {
			c.PtA = newEnd
		}
		if c.PtB == oldEnd {
			c.PtB = newEnd
		}
		if err := tx.UpdateConstraint(c); err != nil {
			return 0, 0, err
		}
	}
	if err := tx.SetPoint(oldEnd, cut); err != nil {
		return 0, 0, err
	}
	return oldEnd, hr.Entity(1), nil
}

// entitiesOf returns the selected non-point entities matching pred
func (s *Session) entitiesOf(cls selection.Classification, pred func(domain.Entity) bool) []domain.Entity {
	var out []domain.Entity
	for _, h := range cls.EntityHandles {
		if e, ok := s.doc.Entity(h); ok && pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Session) endpoints(e domain.Entity) (domain.Vector, domain.Vector, bool) {
	a, b, ok := e.Endpoints()
	if !ok {
		return domain.Vector{}, domain.Vector{}, false
	}
	pa, okA := s.doc.Entity(a)
	pb, okB := s.doc.Entity(b)
	return pa.Pos, pb.Pos, okA && okB
}

type groupMenu struct {
	menu
	s *Session
}

func (m groupMenu) Invoke(id command.ID) error {
	s := m.s
	g := domain.Group{Scale: 1, Color: "#ffffff", Visible: true}
	var wp domain.HEntity
	var origin *domain.Vector

	switch id {
	case command.Group3D:
		g.Kind = domain.GroupDrawing3D
	case command.GroupWorkplane:
		g.Kind = domain.GroupDrawingWorkplane
		cls := s.selectionOrHover()
		if h, ok := s.selectedWorkplane(cls); ok {
			wp = h
		} else if cls.N == 1 && cls.Points == 1 {
			p, _ := s.doc.Entity(cls.PointHandles[0])
			origin = &p.Pos
		} else {
			s.complain("Bad selection for new sketch in workplane. This group can be created with: a point (through the point, orthogonal to coordinate axes); a workplane (copy of the workplane).")
			return nil
		}
	case command.GroupExtrude:
		if active, ok := s.doc.Group(s.doc.ActiveGroup()); !ok || active.Kind != domain.GroupDrawingWorkplane {
			s.complain("Extrude needs a sketch in a workplane; activate one first.")
			return nil
		}
		g.Kind = domain.GroupExtrude
	default:
		return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
	}

	var h domain.HGroup
	err := s.doc.Update("new group", func(tx document.Tx) error {
		h = tx.AddGroup(g)
		named := g
		named.H = h
		named.Name = fmt.Sprintf("g%03d-%s", h, g.Kind)
		if err := tx.UpdateGroup(named); err != nil {
			return err
		}
		if err := tx.SetActiveGroup(h); err != nil {
			return err
		}
		switch {
		case origin != nil:
			hr, err := tx.AddRequest(domain.RequestWorkplane, *origin)
			if err != nil {
				return err
			}
			return tx.SetActiveWorkplane(hr.Entity(0))
		case !wp.IsNull():
			return tx.SetActiveWorkplane(wp)
		case g.Kind == domain.GroupDrawing3D:
			return tx.SetActiveWorkplane(0)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.sel.Clear()
	s.EditGroupName(h)
	return nil
}
