package session

import (
	"math"

	"sketchedit/internal/domain"
	"sketchedit/internal/pending"
	"sketchedit/internal/selection"
)

// offCanvas is a position outside every toolbar layout
const offCanvas = -1 << 20

func cell(v float64) int { return int(math.Floor(v)) }

// MouseMoved tracks hover, feeds an active drag, and starts a drag when the
// left button is held after a press. It reports whether the toolbar
// tooltip timer must be restarted.
func (s *Session) MouseMoved(x, y float64, leftDown, shift, ctrl bool) (restartTooltip bool) {
	p := domain.Point2d{X: x, Y: y}
	s.mouse = p
	mode := s.pending.Mode()

	if s.cfg.View.ShowToolbar && !mode.IsDragging() {
		within, restart := s.toolbar.MouseMoved(cell(x), cell(y))
		if within {
			s.sel.ClearHover()
			return restart
		}
		restartTooltip = restart
	}

	s.sel.PurgeNonexistent(s.doc)
	switch {
	case mode.IsDragging():
		s.drag(p)
	case mode == pending.Command:
		s.sel.SetHover(s.hitTest(p, true).Item())
	case leftDown && s.press != nil && p != s.press.at:
		if s.startDrag(*s.press) {
			s.drag(p)
		}
	default:
		s.sel.SetHover(s.hitTest(p, false).Item())
	}
	return restartTooltip
}

// MouseLeftDown places an armed command, finishes a click-move-click
// creation, or records a press that becomes a click or a drag.
func (s *Session) MouseLeftDown(x, y float64, shift, ctrl bool) {
	p := domain.Point2d{X: x, Y: y}
	s.mouse = p
	s.edit.Cancel()
	mode := s.pending.Mode()

	if s.cfg.View.ShowToolbar && !mode.IsDragging() {
		hit, err := s.toolbar.MouseDown(cell(x), cell(y))
		s.report(err)
		if hit {
			return
		}
	}

	s.sel.PurgeNonexistent(s.doc)
	switch {
	case mode == pending.Command:
		snap := s.hitTest(p, true)
		s.press = nil
		s.report(s.pending.Place(s.world(p), snap.Entity))
		s.sel.ClearHover()
	case mode.IsDragging():
		s.drag(p)
		s.commit()
	default:
		s.press = &press{at: p, world: s.cam.ToWorld(p), hit: s.hitTest(p, false)}
	}
}

// MouseLeftUp commits a drag, or treats a press without motion as a click
// that toggles the item under the pointer. A newly placed entity that has
// not moved yet stays pending so that the next click places its free point.
func (s *Session) MouseLeftUp(x, y float64) {
	p := domain.Point2d{X: x, Y: y}
	s.mouse = p
	mode := s.pending.Mode()

	switch {
	case mode.CreatesEntities() && !s.pending.Moved():
	case mode.IsDragging():
		s.drag(p)
		s.commit()
	case s.press != nil:
		s.click(*s.press)
	}
	s.press = nil
}

// MouseLeftDoubleClick opens the edit control on a constraint value or a
// text entity under the pointer
func (s *Session) MouseLeftDoubleClick(x, y float64) {
	p := domain.Point2d{X: x, Y: y}
	s.mouse = p
	s.press = nil
	if s.pending.Active() {
		return
	}
	hit := s.HitTest(p)
	switch hit.Kind {
	case HitLabel:
		s.editConstraint(hit.Constraint)
	case HitCurve:
		if e, ok := s.doc.Entity(hit.Entity); ok && e.Type == domain.EntityTTFText {
			s.editText(e.Request)
		}
	}
}

// MouseRightDown cancels whatever is in progress. It reports whether
// anything was cancelled.
func (s *Session) MouseRightDown(x, y float64) bool {
	s.mouse = domain.Point2d{X: x, Y: y}
	s.press = nil
	switch {
	case s.pending.Active():
		s.pending.Cancel()
		return true
	case s.edit.Active():
		s.edit.Cancel()
		return true
	}
	return false
}

// MouseScroll zooms about the pointer, one step per notch
func (s *Session) MouseScroll(x, y, delta float64) {
	p := domain.Point2d{X: x, Y: y}
	s.mouse = p
	s.cam.ZoomAbout(p, math.Pow(1.2, delta))
	if s.pending.Mode().IsDragging() {
		s.drag(p)
	}
}

// MouseLeave forgets the hover when the pointer leaves the window
func (s *Session) MouseLeave() {
	s.sel.ClearHover()
	s.toolbar.MouseMoved(offCanvas, offCanvas)
}

// TimerCallback delivers a tooltip timer. It reports whether a repaint is
// needed.
func (s *Session) TimerCallback(generation uint64) bool {
	return s.toolbar.TimerFired(generation)
}

func (s *Session) drag(p domain.Point2d) {
	w := s.cam.ToWorld(p)
	switch mode := s.pending.Mode(); mode {
	case pending.DraggingPoints, pending.DraggingNewPoint, pending.DraggingNewLinePoint,
		pending.DraggingNewCubicPoint, pending.DraggingNewArcPoint:
		if mode == pending.DraggingPoints {
			w = w.Plus(s.dragOffset)
		}
		if s.cfg.Editor.SnapToGrid {
			w = s.snapToGrid(w)
		}
		s.pending.Move(w, p)
		s.sel.SetHover(s.hitTest(p, true).Item())
	default:
		s.pending.Move(w, p)
	}
}

// startDrag turns a press into a drag of whatever was under the pointer,
// or a marquee over empty canvas
func (s *Session) startDrag(pr press) bool {
	s.press = nil
	s.dragOffset = domain.Vector{}

	var op pending.Operation
	var err error
	switch pr.hit.Kind {
	case HitPoint:
		var others []domain.HEntity
		if s.sel.IsSelected(pr.hit.Item()) {
			others = s.sel.Classify(s.doc).PointHandles
		}
		op, err = s.dragPoints(pr, pr.hit.Entity, others)
	case HitCurve:
		e, ok := s.doc.Entity(pr.hit.Entity)
		switch {
		case !ok || len(e.Points) == 0:
			return false
		case e.Type == domain.EntityCircle:
			op, err = pending.NewDragRadius(s.doc, e.H)
		default:
			op, err = s.dragPoints(pr, e.Points[0], e.Points[1:])
		}
	case HitLabel:
		op, err = pending.NewDragConstraint(s.doc, pr.hit.Constraint, pr.world)
	case HitNormal:
		op, err = pending.NewDragNormal(s.doc, pr.hit.Entity, pr.hit.Center, pr.world)
	default:
		op = pending.NewDragMarquee(pr.at)
	}
	if err == nil {
		err = s.pending.Begin(op)
	}
	if err != nil {
		s.report(err)
		return false
	}
	s.sel.ClearHover()
	return true
}

// dragPoints grabs primary at the press position; the point keeps its
// offset from the pointer instead of jumping onto it
func (s *Session) dragPoints(pr press, primary domain.HEntity, others []domain.HEntity) (pending.Operation, error) {
	dp, err := pending.NewDragPoints(s.doc, primary, others)
	if err != nil {
		return nil, err
	}
	s.dragOffset = dp.Primary.Origin.Minus(pr.world)
	return dp, nil
}

// commit ends the active drag, snapping to the hovered point
func (s *Session) commit() {
	var snap domain.HEntity
	if h := s.sel.Hover(); !h.Entity.IsNull() {
		if e, ok := s.doc.Entity(h.Entity); ok && e.IsPoint() {
			snap = h.Entity
		}
	}
	res, err := s.pending.Commit(snap)
	s.press = nil
	s.sel.ClearHover()
	if err != nil {
		s.report(err)
		return
	}
	if res.Marquee != nil {
		s.selectInRect(*res.Marquee)
	}
}

func (s *Session) click(pr press) {
	if pr.hit.IsEmpty() {
		s.sel.Clear()
		return
	}
	s.sel.Toggle(pr.hit.Item())
}

// selectInRect adds everything the marquee touches to the selection
func (s *Session) selectInRect(r pending.Rect) {
	g := s.geometry()
	for _, e := range s.doc.Entities() {
		switch {
		case e.IsNormal() || e.IsDistance() || e.IsFace():
			continue
		case e.IsPoint():
			if r.Contains(s.cam.ToScreen(e.Pos)) {
				s.sel.MakeSelected(selection.EntityItem(e.H))
			}
		default:
			if crossesRect(r, toScreen(s.cam, g.outline(e))) {
				s.sel.MakeSelected(selection.EntityItem(e.H))
			}
		}
	}
	for _, c := range s.doc.Constraints() {
		if c.HasLabel() && r.Contains(s.cam.ToScreen(c.Label)) {
			s.sel.MakeSelected(selection.ConstraintItem(c.H))
		}
	}
}
