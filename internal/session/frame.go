package session

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"sketchedit/internal/command"
	"sketchedit/internal/domain"
	"sketchedit/internal/pending"
	"sketchedit/internal/selection"
	"sketchedit/internal/toolbar"
)

// constructionStyle is the style construction geometry is drawn with
const constructionStyle domain.HStyle = 2

// Frame is everything a front end needs to paint one frame. Positions are
// in screen units.
type Frame struct {
	Width, Height float64

	Entities []EntityView
	Labels   []LabelView
	Grid     *GridView
	Marquee  *pending.Rect

	Mode        pending.Mode
	Description string
	Suggestion  string

	Toolbar []toolbar.Placement
	Tooltip *toolbar.Tooltip
	Edit    *EditView
	Message domain.MessageEvent
}

// EntityView is a point or a curve ready to draw
type EntityView struct {
	H    domain.HEntity
	Type domain.EntityType
	// Path holds one position for a point, the polyline of a curve
	Path []domain.Point2d
	// Handle runs from a workplane origin to the tip of its normal
	Handle       []domain.Point2d
	Text         string
	Color        colorful.Color
	Construction bool
	Selected     bool
	Hovered      bool
}

// LabelView is a constraint label
type LabelView struct {
	H         domain.HConstraint
	At        domain.Point2d
	Text      string
	Reference bool
	Selected  bool
	Hovered   bool
}

// GridView places the grid: Origin is the screen position of a grid
// crossing, Step the screen distance between lines
type GridView struct {
	Origin domain.Point2d
	StepX  float64
	StepY  float64
}

// EditView is the open edit control
type EditView struct {
	At   domain.Point2d
	View string
	Err  error
}

// Frame builds the paint snapshot of the current state
func (s *Session) Frame() Frame {
	s.sel.PurgeNonexistent(s.doc)
	g := s.geometry()
	hover := s.sel.Hover()
	f := Frame{
		Width:       s.cam.Width,
		Height:      s.cam.Height,
		Mode:        s.pending.Mode(),
		Description: s.pending.Description(),
		Marquee:     g.pv.Marquee,
		Message:     s.message,
	}
	if g.pv.Suggestion != 0 {
		f.Suggestion = g.pv.Suggestion.String()
	}

	for _, e := range s.doc.Entities() {
		if e.IsNormal() || e.IsDistance() || e.IsFace() {
			continue
		}
		v := EntityView{
			H:            e.H,
			Type:         e.Type,
			Text:         e.Str,
			Color:        s.entityColor(e),
			Construction: s.isConstruction(e),
			Selected:     s.sel.IsSelected(selection.EntityItem(e.H)),
			Hovered:      hover.Entity == e.H,
		}
		if e.IsPoint() {
			v.Path = []domain.Point2d{s.cam.ToScreen(g.pv.Point(e))}
		} else {
			v.Path = toScreen(s.cam, g.outline(e))
			if tip, origin, ok := g.normalHandle(s.cam, e); ok {
				v.Handle = []domain.Point2d{s.cam.ToScreen(origin), tip}
			}
		}
		f.Entities = append(f.Entities, v)
	}

	for _, c := range s.doc.Constraints() {
		if !c.HasLabel() {
			continue
		}
		f.Labels = append(f.Labels, LabelView{
			H:         c.H,
			At:        s.cam.ToScreen(g.labelAnchor(c)),
			Text:      s.labelText(c),
			Reference: c.Reference,
			Selected:  s.sel.IsSelected(selection.ConstraintItem(c.H)),
			Hovered:   hover.Constraint == c.H,
		})
	}

	if s.cfg.View.ShowGrid && s.cfg.Editor.GridSpacing > 0 {
		step := s.cfg.Editor.GridSpacing * s.cam.Scale
		f.Grid = &GridView{
			Origin: s.cam.ToScreen(s.snapToGrid(s.cam.Offset)),
			StepX:  step,
			StepY:  step * s.cam.aspect(),
		}
	}

	if s.cfg.View.ShowToolbar {
		f.Toolbar = s.toolbar.Paint()
		if op := s.pending.Current(); op != nil && op.Command() != command.None {
			for i := range f.Toolbar {
				f.Toolbar[i].Active = !f.Toolbar[i].Item.Spacer && f.Toolbar[i].Item.ID == op.Command()
			}
		}
		if tip, ok := s.toolbar.Tooltip(); ok {
			f.Tooltip = &tip
		}
	}
	if s.edit.Active() {
		f.Edit = &EditView{At: s.edit.At(), View: s.edit.View(), Err: s.edit.Err()}
	}
	return f
}

// HitTestToolbar returns the command whose button covers a screen cell
func (s *Session) HitTestToolbar(x, y int) (command.ID, bool) {
	if !s.cfg.View.ShowToolbar {
		return command.None, false
	}
	return s.toolbar.HitTest(x, y)
}

// labelText is the text a constraint label shows
func (s *Session) labelText(c domain.Constraint) string {
	var text string
	switch c.Type {
	case domain.ConstraintComment:
		return c.Comment
	case domain.ConstraintDiameter:
		text = "⌀" + s.cfg.FormatLength(c.ValA)
	case domain.ConstraintAngle:
		text = fmt.Sprintf("%.*f°", s.cfg.Editor.DigitsAfterDecimal, c.ValA)
	default:
		text = s.cfg.FormatLength(math.Abs(c.ValA))
	}
	if c.Reference {
		text += " REF"
	}
	return text
}

func (s *Session) isConstruction(e domain.Entity) bool {
	r, ok := s.doc.Request(e.Request)
	return ok && r.Construction
}

// entityColor is the construction style color for construction geometry
// and the group color otherwise
func (s *Session) entityColor(e domain.Entity) colorful.Color {
	hex := "#ffffff"
	if s.isConstruction(e) {
		if st, ok := s.doc.Style(constructionStyle); ok {
			hex = st.Color
		}
	} else if g, ok := s.doc.Group(e.Group); ok {
		hex = g.Color
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}
