package session

import (
	"errors"
	"fmt"
	"math"

	"sketchedit/internal/command"
	"sketchedit/internal/config"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
	"sketchedit/internal/selection"
)

// family is a menu handler with live enabled and checked state
type family interface {
	command.Handler
	command.Enabler
	command.Checker
}

type menu struct{}

func (menu) Enabled(command.ID) bool { return true }
func (menu) Checked(command.ID) bool { return false }

// guarded cancels the pending operation before the command runs, so that
// starting anything never stacks on an unfinished operation
type guarded struct {
	family
	s *Session
}

func (g guarded) Invoke(id command.ID) error {
	placing := g.s.pending.Mode().CreatesEntities()
	g.s.pending.Cancel()
	g.s.press = nil
	if id == command.Undo && placing {
		// the cancel already removed the entity being placed
		return nil
	}
	return g.family.Invoke(id)
}

func (s *Session) handlers() map[command.Family]command.Handler {
	guard := func(f family) command.Handler { return guarded{family: f, s: s} }
	return map[command.Family]command.Handler{
		command.FamilyFile:      guard(fileMenu{s: s}),
		command.FamilyEdit:      guard(editMenu{s: s}),
		command.FamilyView:      viewMenu{s: s},
		command.FamilyGroup:     guard(groupMenu{s: s}),
		command.FamilySketch:    guard(sketchMenu{s: s}),
		command.FamilyConstrain: guard(constrainMenu{s: s}),
		command.FamilyHelp:      helpMenu{s: s},
	}
}

type fileMenu struct {
	menu
	s *Session
}

func (m fileMenu) Invoke(id command.ID) error {
	s := m.s
	switch id {
	case command.New:
		err := s.doc.Update("new sketch", func(tx document.Tx) error {
			var reqs []domain.HRequest
			seen := make(map[domain.HRequest]bool)
			for _, e := range tx.Entities() {
				if !seen[e.Request] {
					seen[e.Request] = true
					reqs = append(reqs, e.Request)
				}
			}
			var cons []domain.HConstraint
			for _, c := range tx.Constraints() {
				cons = append(cons, c.H)
			}
			tx.DeleteRequests(reqs...)
			tx.DeleteConstraints(cons...)
			return tx.SetActiveWorkplane(0)
		})
		s.sel.Clear()
		return err
	case command.Exit:
		s.bus.Publish(eventbus.QuitRequestedEvent{})
		return nil
	}
	return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
}

type editMenu struct {
	menu
	s *Session
}

func (m editMenu) Enabled(id command.ID) bool {
	switch id {
	case command.Undo:
		return m.s.doc.CanUndo()
	case command.Redo:
		return m.s.doc.CanRedo()
	}
	return true
}

func (m editMenu) Invoke(id command.ID) error {
	s := m.s
	switch id {
	case command.Undo:
		return quiet(s.doc.Undo(), document.ErrNothingToUndo)
	case command.Redo:
		return quiet(s.doc.Redo(), document.ErrNothingToRedo)
	case command.Delete:
		return s.deleteSelection()
	case command.SelectAll:
		for _, e := range s.doc.Entities() {
			if e.IsNormal() || e.IsDistance() || e.IsFace() {
				continue
			}
			s.sel.MakeSelected(selection.EntityItem(e.H))
		}
		return nil
	case command.UnselectAll:
		s.sel.Clear()
		s.edit.Cancel()
		return nil
	case command.SnapToGrid:
		return s.snapSelectionToGrid()
	case command.SelectChain:
		s.selectChain()
		return nil
	}
	return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
}

// quiet drops an expected error
func quiet(err, expected error) error {
	if errors.Is(err, expected) {
		return nil
	}
	return err
}

func (s *Session) deleteSelection() error {
	s.selectionOrHover()
	items := s.sel.Items()
	if len(items) == 0 {
		return nil
	}
	var reqs []domain.HRequest
	var cons []domain.HConstraint
	for _, it := range items {
		if !it.Entity.IsNull() {
			reqs = append(reqs, it.Entity.Request())
		} else {
			cons = append(cons, it.Constraint)
		}
	}
	err := s.doc.Update("delete", func(tx document.Tx) error {
		tx.DeleteRequests(reqs...)
		tx.DeleteConstraints(cons...)
		return nil
	})
	s.sel.Clear()
	return err
}

func (s *Session) snapSelectionToGrid() error {
	cls := s.selectionOrHover()
	var labels []domain.HConstraint
	for _, h := range cls.ConstraintHandles {
		if c, ok := s.doc.Constraint(h); ok && c.HasLabel() {
			labels = append(labels, h)
		}
	}
	if len(cls.PointHandles) == 0 && len(labels) == 0 {
		s.complain("Can't snap these items to grid; select points, text comments, or constraints with a label. To snap a line, select its endpoints.")
		return nil
	}
	err := s.doc.Update("snap to grid", func(tx document.Tx) error {
		for _, h := range cls.PointHandles {
			e, ok := tx.Entity(h)
			if !ok {
				continue
			}
			if err := tx.SetPoint(h, s.snapToGrid(e.Pos)); err != nil {
				return err
			}
		}
		for _, h := range labels {
			c, ok := tx.Constraint(h)
			if !ok {
				continue
			}
			c.Label = s.snapToGrid(c.Label)
			if err := tx.UpdateConstraint(c); err != nil {
				return err
			}
		}
		return nil
	})
	s.sel.Clear()
	return err
}

// selectChain extends the selection with every curve that shares an
// endpoint position with a selected curve, transitively
func (s *Session) selectChain() {
	var ends []domain.Vector
	addEnds := func(e domain.Entity) {
		a, b, ok := e.Endpoints()
		if !ok {
			return
		}
		for _, h := range []domain.HEntity{a, b} {
			if p, ok := s.doc.Entity(h); ok {
				ends = append(ends, p.Pos)
			}
		}
	}
	touches := func(e domain.Entity) bool {
		a, b, ok := e.Endpoints()
		if !ok {
			return false
		}
		for _, h := range []domain.HEntity{a, b} {
			p, ok := s.doc.Entity(h)
			if !ok {
				continue
			}
			for _, q := range ends {
				if p.Pos.Dist(q) < domain.LengthEps {
					return true
				}
			}
		}
		return false
	}

	curves := make([]domain.Entity, 0)
	for _, e := range s.doc.Entities() {
		if !e.HasEndpoints() {
			continue
		}
		if s.sel.IsSelected(selection.EntityItem(e.H)) {
			addEnds(e)
		} else {
			curves = append(curves, e)
		}
	}

	added := 0
	for grew := true; grew; {
		grew = false
		rest := curves[:0]
		for _, e := range curves {
			if touches(e) {
				s.sel.MakeSelected(selection.EntityItem(e.H))
				addEnds(e)
				added++
				grew = true
				continue
			}
			rest = append(rest, e)
		}
		curves = rest
	}
	if added == 0 {
		s.complain("No additional entities share endpoints with the selected entities.")
	}
}

type viewMenu struct {
	menu
	s *Session
}

func (m viewMenu) Checked(id command.ID) bool {
	cfg := m.s.cfg
	switch id {
	case command.ShowGrid:
		return cfg.View.ShowGrid
	case command.ShowToolbar:
		return cfg.View.ShowToolbar
	case command.ShowTextWindow:
		return cfg.View.ShowTextWindow
	case command.UnitsMM:
		return cfg.Editor.Units == config.UnitsMM
	case command.UnitsInches:
		return cfg.Editor.Units == config.UnitsInches
	}
	return false
}

func (m viewMenu) Invoke(id command.ID) error {
	s := m.s
	center := domain.Point2d{X: s.cam.Width / 2, Y: s.cam.Height / 2}
	switch id {
	case command.ZoomIn:
		s.cam.ZoomAbout(center, 1.2)
	case command.ZoomOut:
		s.cam.ZoomAbout(center, 1/1.2)
	case command.ZoomToFit:
		s.zoomToFit()
	case command.ShowGrid:
		s.cfg.View.ShowGrid = !s.cfg.View.ShowGrid
		s.configChanged("view.show_grid")
	case command.ShowToolbar:
		s.cfg.View.ShowToolbar = !s.cfg.View.ShowToolbar
		s.configChanged("view.show_toolbar")
	case command.ShowTextWindow:
		s.cfg.View.ShowTextWindow = !s.cfg.View.ShowTextWindow
		s.configChanged("view.show_text_window")
	case command.UnitsMM:
		s.cfg.Editor.Units = config.UnitsMM
		s.configChanged("editor.units")
	case command.UnitsInches:
		s.cfg.Editor.Units = config.UnitsInches
		s.configChanged("editor.units")
	case command.CommandReference:
		s.bus.Publish(eventbus.CommandReferenceRequestedEvent{})
	default:
		return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
	}
	if s.pending.Mode().IsDragging() {
		s.drag(s.mouse)
	}
	return nil
}

func (s *Session) zoomToFit() {
	lo := domain.Vector{X: math.Inf(1), Y: math.Inf(1)}
	hi := domain.Vector{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(v domain.Vector) {
		lo = domain.Vector{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y)}
		hi = domain.Vector{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y)}
	}
	g := s.geometry()
	for _, e := range s.doc.Entities() {
		if e.IsPoint() {
			grow(e.Pos)
			continue
		}
		for _, v := range g.outline(e) {
			grow(v)
		}
	}
	for _, c := range s.doc.Constraints() {
		if c.HasLabel() {
			grow(c.Label)
		}
	}
	if math.IsInf(lo.X, 1) {
		s.cam.Offset = domain.Vector{}
		return
	}
	s.cam.Fit(lo, hi)
}

type helpMenu struct {
	menu
	s *Session
}

func (m helpMenu) Invoke(id command.ID) error {
	if id != command.About {
		return fmt.Errorf("%w: %s", command.ErrUnknownCommand, id)
	}
	m.s.info("sketchedit: interactive editing of parametric sketches")
	return nil
}
