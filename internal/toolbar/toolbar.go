package toolbar

import (
	"log"

	"sketchedit/internal/command"
)

// Item is one toolbar button. A Spacer separates button groups.
type Item struct {
	Icon   string
	ID     command.ID
	Tip    string
	Spacer bool
}

var spacer = Item{Spacer: true}

// DefaultItems is the toolbar column
var DefaultItems = []Item{
	{Icon: "╱", ID: command.LineSegment, Tip: "Sketch line segment"},
	{Icon: "▭", ID: command.Rectangle, Tip: "Sketch rectangle"},
	{Icon: "○", ID: command.Circle, Tip: "Sketch circle"},
	{Icon: "◠", ID: command.Arc, Tip: "Sketch arc of a circle"},
	{Icon: "∿", ID: command.Cubic, Tip: "Sketch cubic Bezier section"},
	{Icon: "•", ID: command.DatumPoint, Tip: "Sketch datum point"},
	{Icon: "┄", ID: command.Construction, Tip: "Toggle construction"},
	{Icon: "✂", ID: command.SplitCurves, Tip: "Split lines / curves where they intersect"},
	spacer,

	{Icon: "↔", ID: command.DistanceDia, Tip: "Constrain distance / diameter / length"},
	{Icon: "∠", ID: command.Angle, Tip: "Constrain angle"},
	{Icon: "─", ID: command.Horizontal, Tip: "Constrain to be horizontal"},
	{Icon: "│", ID: command.Vertical, Tip: "Constrain to be vertical"},
	{Icon: "∥", ID: command.Parallel, Tip: "Constrain to be parallel or tangent"},
	{Icon: "⊥", ID: command.Perpendicular, Tip: "Constrain to be perpendicular"},
	{Icon: "⊙", ID: command.OnEntity, Tip: "Constrain point on line / curve / plane / face"},
	{Icon: "⇋", ID: command.Symmetric, Tip: "Constrain symmetric"},
	{Icon: "ʀ", ID: command.Reference, Tip: "Toggle reference dimension"},
	spacer,

	{Icon: "⇑", ID: command.GroupExtrude, Tip: "New group extruding active sketch"},
	{Icon: "▱", ID: command.GroupWorkplane, Tip: "New group in new workplane (thru given entities)"},
	{Icon: "◇", ID: command.Group3D, Tip: "New group in 3d"},
	spacer,

	{Icon: "3", ID: command.FreeIn3D, Tip: "Sketch / constrain in 3d"},
	{Icon: "2", ID: command.SelWorkplane, Tip: "Sketch / constrain in workplane"},
}

// Tooltip is the hint shown next to the pointer after the hover delay
type Tooltip struct {
	Text string
	X    int
	Y    int
}

// Toolbar tracks hover and tooltip state over the button column and
// dispatches clicks through the command registry.
type Toolbar struct {
	items      []Item
	metrics    Metrics
	registry   *command.Registry
	hovered    command.ID
	tooltipped command.ID
	mouseX     int
	mouseY     int
	generation uint64
}

// New creates a toolbar over items that dispatches through registry
func New(registry *command.Registry, items []Item, metrics Metrics) *Toolbar {
	return &Toolbar{items: items, metrics: metrics, registry: registry}
}

// Items returns the buttons in layout order
func (t *Toolbar) Items() []Item { return t.items }

// Metrics returns the layout metrics
func (t *Toolbar) Metrics() Metrics { return t.metrics }

// Hovered returns the command under the pointer, or None
func (t *Toolbar) Hovered() command.ID { return t.hovered }

// Generation identifies the most recent hover change. A tooltip timer
// carrying an older generation is stale.
func (t *Toolbar) Generation() uint64 { return t.generation }

// MouseMoved updates the hover state. It reports whether the pointer is
// over the toolbar, and whether the hovered button changed so that the
// tooltip timer must be restarted with the new generation.
func (t *Toolbar) MouseMoved(x, y int) (within, restart bool) {
	hit, within := t.HitTest(x, y)
	if !within {
		hit = command.None
	}
	if hit != t.tooltipped {
		// the tooltip stays put while the pointer moves within one button
		t.mouseX, t.mouseY = x, y
		t.tooltipped = command.None
	}
	if hit != t.hovered {
		t.hovered = hit
		t.generation++
		restart = true
	}
	return within, restart
}

// MouseDown dispatches the button under the pointer. It reports whether
// the click landed on the toolbar, in which case it must not reach the
// canvas.
func (t *Toolbar) MouseDown(x, y int) (bool, error) {
	hit, within := t.HitTest(x, y)
	if !within {
		return false, nil
	}
	if hit == command.None {
		return true, nil
	}
	log.Printf("Toolbar: clicked %s", hit)
	return true, t.registry.Dispatch(hit)
}

// TimerFired shows the tooltip for the hovered button if gen is current.
// It reports whether a repaint is needed.
func (t *Toolbar) TimerFired(gen uint64) bool {
	if gen != t.generation || t.tooltipped == t.hovered {
		return false
	}
	t.tooltipped = t.hovered
	return t.tooltipped != command.None
}

// Tooltip returns the visible tooltip, with the accelerator of the
// button's command appended
func (t *Toolbar) Tooltip() (Tooltip, bool) {
	if t.tooltipped == command.None {
		return Tooltip{}, false
	}
	for _, it := range t.items {
		if it.Spacer || it.ID != t.tooltipped {
			continue
		}
		text := it.Tip
		if t.registry != nil {
			text += t.registry.Accel(it.ID).TooltipSuffix()
		}
		return Tooltip{Text: text, X: t.mouseX + 1, Y: t.mouseY + 1}, true
	}
	return Tooltip{}, false
}

// Placement is a laid-out button or separator ready to paint. Box is
// the inclusive area the button owns: the painter fills all of it and
// HitTest answers the button for exactly those cells.
type Placement struct {
	Item    Item
	X       int
	Y       int
	Box     Box
	Hovered bool
	Checked bool
	// Active marks the button of the command in progress
	Active bool
}

// Paint lays out every button with its highlight state
func (t *Toolbar) Paint() []Placement {
	var out []Placement
	t.Layout(func(s Slot) bool {
		p := Placement{Item: s.Item, X: s.X, Y: s.Y}
		if !s.Item.Spacer {
			p.Box = t.box(s)
			p.Hovered = s.Item.ID == t.hovered
			if t.registry != nil {
				p.Checked = t.registry.Checked(s.Item.ID)
			}
		}
		out = append(out, p)
		return true
	})
	return out
}
