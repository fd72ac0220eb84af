package session

import (
	"fmt"
	"strconv"

	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/editcontrol"
)

// editOrigin is where edits without a canvas anchor open
var editOrigin = domain.Point2d{X: 1, Y: 1}

// EditGroupName opens the edit control on a group's name
func (s *Session) EditGroupName(h domain.HGroup) {
	s.EditGroup(h, editcontrol.GroupName)
}

// EditGroup opens the edit control on a group's name, scale or color
func (s *Session) EditGroup(h domain.HGroup, m editcontrol.Meaning) {
	g, ok := s.doc.Group(h)
	if !ok {
		return
	}
	var initial string
	switch m {
	case editcontrol.GroupName:
		initial = g.Name
	case editcontrol.GroupScale:
		initial = strconv.FormatFloat(g.Scale, 'g', -1, 64)
	case editcontrol.GroupColor:
		initial = g.Color
	default:
		return
	}
	s.edit.Show(editcontrol.Context{Meaning: m, Group: h}, editOrigin, initial, s.applier())
}

// EditStyle opens the edit control on a style's name, width or color
func (s *Session) EditStyle(h domain.HStyle, m editcontrol.Meaning) {
	st, ok := s.doc.Style(h)
	if !ok {
		return
	}
	var initial string
	switch m {
	case editcontrol.StyleName:
		initial = st.Name
	case editcontrol.StyleWidth:
		initial = strconv.FormatFloat(st.Width, 'g', -1, 64)
	case editcontrol.StyleColor:
		initial = st.Color
	default:
		return
	}
	s.edit.Show(editcontrol.Context{Meaning: m, Style: h}, editOrigin, initial, s.applier())
}

// EditSetting opens the edit control on a configuration or view value
func (s *Session) EditSetting(m editcontrol.Meaning) {
	ed := s.cfg.Editor
	var initial string
	switch m {
	case editcontrol.ChordTolerance:
		initial = strconv.FormatFloat(ed.ChordTolerance, 'g', -1, 64)
	case editcontrol.GridSpacing:
		initial = s.cfg.FormatLength(ed.GridSpacing)
	case editcontrol.DigitsAfterDecimal:
		initial = strconv.Itoa(ed.DigitsAfterDecimal)
	case editcontrol.TangentArcRadius:
		initial = s.cfg.FormatLength(ed.TangentArcRadius)
	case editcontrol.ViewScale:
		initial = strconv.FormatFloat(s.cam.Scale, 'g', 6, 64)
	case editcontrol.ViewOrigin:
		initial = fmt.Sprintf("%s, %s", s.cfg.FormatLength(s.cam.Offset.X), s.cfg.FormatLength(s.cam.Offset.Y))
	default:
		return
	}
	s.edit.Show(editcontrol.Context{Meaning: m}, editOrigin, initial, s.applier())
}

// editConstraint opens the edit control on a dimension or a comment, at
// its label
func (s *Session) editConstraint(h domain.HConstraint) {
	c, ok := s.doc.Constraint(h)
	if !ok || !c.HasLabel() {
		return
	}
	if c.Reference {
		s.info("Reference dimensions are measured from the sketch and cannot be edited.")
		return
	}
	var initial string
	switch c.Type {
	case domain.ConstraintComment:
		initial = c.Comment
	case domain.ConstraintAngle:
		initial = strconv.FormatFloat(c.ValA, 'f', s.cfg.Editor.DigitsAfterDecimal, 64)
	default:
		initial = s.cfg.FormatLength(c.ValA)
	}
	at := s.cam.ToScreen(s.geometry().labelAnchor(c))
	s.edit.Show(editcontrol.Context{Meaning: editcontrol.ConstraintValue, Constraint: h}, at, initial, s.applier())
}

// editText opens the edit control on the string of a text request
func (s *Session) editText(h domain.HRequest) {
	r, ok := s.doc.Request(h)
	if !ok {
		return
	}
	at := editOrigin
	if e, ok := s.doc.Entity(h.Entity(1)); ok {
		at = s.cam.ToScreen(e.Pos)
	}
	s.edit.Show(editcontrol.Context{Meaning: editcontrol.TTFText, Request: h}, at, r.Str, s.applier())
}

// applier stores submitted text according to what is being edited
func (s *Session) applier() editcontrol.Applier {
	return editcontrol.ApplierFunc(func(ctx editcontrol.Context, text string) error {
		switch ctx.Meaning {
		case editcontrol.GroupName, editcontrol.GroupScale, editcontrol.GroupColor:
			return s.applyGroup(ctx, text)
		case editcontrol.StyleName, editcontrol.StyleWidth, editcontrol.StyleColor:
			return s.applyStyle(ctx, text)
		case editcontrol.ConstraintValue:
			return s.applyConstraint(ctx.Constraint, text)
		case editcontrol.TTFText:
			return s.doc.Update("edit text", func(tx document.Tx) error {
				return tx.SetText(ctx.Request, text)
			})
		}
		return s.applySetting(ctx.Meaning, text)
	})
}

func (s *Session) applyGroup(ctx editcontrol.Context, text string) error {
	g, ok := s.doc.Group(ctx.Group)
	if !ok {
		return fmt.Errorf("group %d: %w", ctx.Group, document.ErrNotFound)
	}
	switch ctx.Meaning {
	case editcontrol.GroupName:
		name, err := editcontrol.ParseName(text)
		if err != nil {
			return err
		}
		g.Name = name
	case editcontrol.GroupScale:
		v, err := editcontrol.ParseNonZero(text, "scale")
		if err != nil {
			return err
		}
		g.Scale = v
	case editcontrol.GroupColor:
		c, err := editcontrol.ParseColor(text)
		if err != nil {
			return err
		}
		g.Color = editcontrol.FormatColor(c)
	}
	return s.doc.Update("edit group "+ctx.Meaning.String(), func(tx document.Tx) error {
		return tx.UpdateGroup(g)
	})
}

func (s *Session) applyStyle(ctx editcontrol.Context, text string) error {
	st, ok := s.doc.Style(ctx.Style)
	if !ok {
		return fmt.Errorf("style %d: %w", ctx.Style, document.ErrNotFound)
	}
	switch ctx.Meaning {
	case editcontrol.StyleName:
		name, err := editcontrol.ParseName(text)
		if err != nil {
			return err
		}
		st.Name = name
	case editcontrol.StyleWidth:
		v, err := editcontrol.ParsePositive(text, "line width")
		if err != nil {
			return err
		}
		st.Width = v
	case editcontrol.StyleColor:
		c, err := editcontrol.ParseColor(text)
		if err != nil {
			return err
		}
		st.Color = editcontrol.FormatColor(c)
	}
	return s.doc.Update("edit style "+ctx.Meaning.String(), func(tx document.Tx) error {
		return tx.UpdateStyle(st)
	})
}

func (s *Session) applyConstraint(h domain.HConstraint, text string) error {
	c, ok := s.doc.Constraint(h)
	if !ok {
		return fmt.Errorf("constraint %v: %w", h, document.ErrNotFound)
	}
	switch c.Type {
	case domain.ConstraintComment:
		c.Comment = text
	case domain.ConstraintAngle:
		v, err := editcontrol.ParseNumber(text)
		if err != nil {
			return err
		}
		c.ValA = v
	case domain.ConstraintPtLineDistance:
		v, err := editcontrol.ParseNumber(text)
		if err != nil {
			return err
		}
		c.ValA = s.cfg.FromDisplay(v)
	default:
		v, err := editcontrol.ParsePositive(text, c.Type.String())
		if err != nil {
			return err
		}
		c.ValA = s.cfg.FromDisplay(v)
	}
	return s.doc.Update("edit constraint", func(tx document.Tx) error {
		return tx.UpdateConstraint(c)
	})
}

func (s *Session) applySetting(m editcontrol.Meaning, text string) error {
	ed := &s.cfg.Editor
	switch m {
	case editcontrol.ChordTolerance:
		v, err := editcontrol.ParsePositive(text, "chord tolerance")
		if err != nil {
			return err
		}
		ed.ChordTolerance = v
		s.configChanged("editor.chord_tolerance")
	case editcontrol.GridSpacing:
		v, err := editcontrol.ParsePositive(text, "grid spacing")
		if err != nil {
			return err
		}
		ed.GridSpacing = s.cfg.FromDisplay(v)
		s.configChanged("editor.grid_spacing")
	case editcontrol.DigitsAfterDecimal:
		v, err := editcontrol.ParseInt(text, 0, 8)
		if err != nil {
			return err
		}
		ed.DigitsAfterDecimal = v
		s.configChanged("editor.digits_after_decimal")
	case editcontrol.TangentArcRadius:
		v, err := editcontrol.ParsePositive(text, "tangent arc radius")
		if err != nil {
			return err
		}
		ed.TangentArcRadius = s.cfg.FromDisplay(v)
		s.configChanged("editor.tangent_arc_radius")
	case editcontrol.ViewScale:
		v, err := editcontrol.ParsePositive(text, "scale")
		if err != nil {
			return err
		}
		s.cam.Scale = clampScale(v)
	case editcontrol.ViewOrigin:
		v, err := editcontrol.ParseVector(text)
		if err != nil {
			return err
		}
		s.cam.Offset = domain.Vector{X: s.cfg.FromDisplay(v.X), Y: s.cfg.FromDisplay(v.Y)}
	default:
		return fmt.Errorf("%w: nothing to edit", editcontrol.ErrValidation)
	}
	return nil
}
