package editcontrol

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sketchedit/internal/domain"
)

// ErrValidation marks text the edit's applier refused
var ErrValidation = errors.New("editcontrol: invalid value")

// Meaning says what the text being edited stands for
type Meaning int

const (
	Nothing Meaning = iota
	GroupName
	GroupScale
	GroupColor
	ChordTolerance
	GridSpacing
	DigitsAfterDecimal
	StyleName
	StyleWidth
	StyleColor
	ViewScale
	ViewOrigin
	ConstraintValue
	TTFText
	TangentArcRadius
)

var meaningNames = [...]string{
	Nothing:            "nothing",
	GroupName:          "group name",
	GroupScale:         "group scale",
	GroupColor:         "group color",
	ChordTolerance:     "chord tolerance",
	GridSpacing:        "grid spacing",
	DigitsAfterDecimal: "digits after decimal",
	StyleName:          "style name",
	StyleWidth:         "style width",
	StyleColor:         "style color",
	ViewScale:          "view scale",
	ViewOrigin:         "view origin",
	ConstraintValue:    "constraint value",
	TTFText:            "text",
	TangentArcRadius:   "tangent arc radius",
}

func (m Meaning) String() string {
	if int(m) >= 0 && int(m) < len(meaningNames) {
		return meaningNames[m]
	}
	return fmt.Sprintf("meaning(%d)", int(m))
}

// Context identifies the object an edit applies to. Only the handle
// matching the meaning is set.
type Context struct {
	Meaning    Meaning
	Group      domain.HGroup
	Style      domain.HStyle
	Constraint domain.HConstraint
	Request    domain.HRequest
}

// RefersTo reports whether the edited object is among deleted
func (c Context) RefersTo(deleted domain.HandleSet) bool {
	return (!c.Group.IsNull() && deleted.HasGroup(c.Group)) ||
		(!c.Constraint.IsNull() && deleted.HasConstraint(c.Constraint)) ||
		(!c.Request.IsNull() && deleted.HasRequest(c.Request))
}

// Applier stores the submitted text. Returning an error wrapping
// ErrValidation keeps the control open for another try.
type Applier interface {
	Apply(ctx Context, text string) error
}

// ApplierFunc adapts a function to Applier
type ApplierFunc func(ctx Context, text string) error

func (f ApplierFunc) Apply(ctx Context, text string) error { return f(ctx, text) }

// Outcome reports what a message did to the control
type Outcome int

const (
	Ignored Outcome = iota
	Edited
	Submitted
	Rejected
	Cancelled
)

// Control is the single inline text field. At most one edit is open.
type Control struct {
	input  textinput.Model
	ctx    Context
	apply  Applier
	at     domain.Point2d
	active bool
	err    error
}

func New() *Control {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	return &Control{input: ti}
}

// Show opens the control at a screen position with initial text. An edit
// already open is discarded.
func (c *Control) Show(ctx Context, at domain.Point2d, initial string, apply Applier) {
	if c.active {
		log.Printf("EditControl: replacing open %s edit", c.ctx.Meaning)
	}
	c.ctx = ctx
	c.apply = apply
	c.at = at
	c.err = nil
	c.active = true
	c.input.Reset()
	c.input.Width = max(len(initial)+4, 12)
	c.input.SetValue(initial)
	c.input.CursorEnd()
	c.input.Focus()
}

func (c *Control) Active() bool { return c.active }
func (c *Control) Context() Context { return c.ctx }
func (c *Control) At() domain.Point2d { return c.at }
func (c *Control) Value() string { return c.input.Value() }

// SetValue replaces the text being edited
func (c *Control) SetValue(text string) {
	if !c.active {
		return
	}
	c.input.SetValue(text)
	c.input.CursorEnd()
	c.err = nil
}

// Err is the last validation failure, cleared by the next keystroke
func (c *Control) Err() error { return c.err }

// Submit applies the current text. On a validation failure the control
// stays open with the error recorded.
func (c *Control) Submit() error {
	if !c.active {
		return nil
	}
	var err error
	if c.apply != nil {
		err = c.apply.Apply(c.ctx, c.input.Value())
	}
	if err != nil {
		c.err = err
		if errors.Is(err, ErrValidation) {
			log.Printf("EditControl: rejected %s %q: %v", c.ctx.Meaning, c.input.Value(), err)
			return err
		}
		log.Printf("EditControl: failed to apply %s: %v", c.ctx.Meaning, err)
		c.hide()
		return err
	}
	c.hide()
	return nil
}

// Cancel closes the control without applying anything
func (c *Control) Cancel() {
	if c.active {
		c.hide()
	}
}

// Invalidate closes the control when its object was deleted
func (c *Control) Invalidate(deleted domain.HandleSet) bool {
	if !c.active || !c.ctx.RefersTo(deleted) {
		return false
	}
	log.Printf("EditControl: %s target deleted", c.ctx.Meaning)
	c.hide()
	return true
}

func (c *Control) hide() {
	c.active = false
	c.apply = nil
	c.ctx = Context{}
	c.input.Blur()
	c.input.Reset()
}

// Update routes a message to the control. Enter submits and Escape
// cancels; other keys edit the text.
func (c *Control) Update(msg tea.Msg) (tea.Cmd, Outcome) {
	if !c.active {
		return nil, Ignored
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			if err := c.Submit(); err != nil && c.active {
				return nil, Rejected
			}
			return nil, Submitted
		case tea.KeyEsc:
			c.Cancel()
			return nil, Cancelled
		}
		c.err = nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd, Edited
}

func (c *Control) View() string {
	if !c.active {
		return ""
	}
	return c.input.View()
}
