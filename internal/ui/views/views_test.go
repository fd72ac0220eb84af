package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchedit/internal/command"
	"sketchedit/internal/domain"
	"sketchedit/internal/pending"
	"sketchedit/internal/session"
	"sketchedit/internal/toolbar"
)

func TestSlopeGlyph(t *testing.T) {
	assert.Equal(t, '─', slopeGlyph(10, 1))
	assert.Equal(t, '│', slopeGlyph(1, -10))
	assert.Equal(t, '╲', slopeGlyph(5, 5), "screen y grows downwards")
	assert.Equal(t, '╱', slopeGlyph(5, -5))
}

func TestCanvasLineAndBox(t *testing.T) {
	c := NewCanvas(6, 4)
	c.line(domain.Point2d{X: 0, Y: 0}, domain.Point2d{X: 5, Y: 0}, kindCurve, "")
	assert.Equal(t, "──────", strings.Split(c.String(), "\n")[0])

	c = NewCanvas(4, 3)
	c.box(0, 0, 3, 2, kindMarquee)
	assert.Equal(t, "┌──┐\n│  │\n└──┘", c.String())
}

func TestCanvasClipsOutside(t *testing.T) {
	c := NewCanvas(3, 2)
	c.text(1, 0, "abcdef", kindLabel)
	c.plot(domain.Point2d{X: -1, Y: 5}, 'x', kindPoint, "")
	assert.Equal(t, " ab\n   ", c.String())
	assert.Equal(t, rune(0), c.At(9, 9))
}

func TestRendererLayers(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	f := session.Frame{
		Entities: []session.EntityView{
			{Type: domain.EntityLineSegment, Path: []domain.Point2d{{X: 1, Y: 2}, {X: 8, Y: 2}}, Color: white},
			{Type: domain.EntityPoint, Path: []domain.Point2d{{X: 1, Y: 2}}, Color: white},
		},
		Labels:  []session.LabelView{{At: domain.Point2d{X: 5, Y: 4}, Text: "10.00"}},
		Marquee: &pending.Rect{Min: domain.Point2d{X: 0, Y: 0}, Max: domain.Point2d{X: 9, Y: 5}},
	}
	c := NewRenderer(NewStyles()).Draw(f, 12, 7)

	assert.Equal(t, '•', c.At(1, 2), "points are drawn over curves")
	assert.Equal(t, '─', c.At(4, 2))
	assert.Equal(t, '1', c.At(3, 4))
	assert.Equal(t, '┌', c.At(0, 0), "the marquee is drawn over geometry")
	assert.Equal(t, '┘', c.At(9, 5))
}

func TestRendererToolbarAndTooltip(t *testing.T) {
	f := session.Frame{
		Toolbar: []toolbar.Placement{
			{Item: toolbar.Item{Icon: "╱", ID: command.LineSegment}, X: 2, Y: 1, Box: toolbar.Box{MinX: 1, MinY: 1, MaxX: 3, MaxY: 1}, Hovered: true},
			{Item: toolbar.Item{Spacer: true}, X: 2, Y: 2},
		},
		Tooltip: &toolbar.Tooltip{Text: "Sketch line segment (S)", X: 5, Y: 1},
	}
	c := NewRenderer(NewStyles()).Draw(f, 40, 4)
	assert.Equal(t, '╱', c.At(2, 1))
	assert.Equal(t, '[', c.At(1, 1))
	assert.Equal(t, ']', c.At(3, 1))
	assert.Contains(t, strings.Split(c.String(), "\n")[1], "Sketch line segment (S)")
}

func TestToolbarClicksOnlyWherePainted(t *testing.T) {
	reg, err := command.NewRegistry(command.DefaultTable, map[command.Family]command.Handler{})
	require.NoError(t, err)
	tb := toolbar.New(reg, toolbar.DefaultItems, toolbar.CellMetrics)
	tb.MouseMoved(2, 1)

	c := NewRenderer(NewStyles()).Draw(session.Frame{Toolbar: tb.Paint()}, 20, 20)
	hits := 0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			id, _ := tb.HitTest(x, y)
			inked := c.At(x, y) != ' '
			assert.Equal(t, inked, id != command.None, "cell %d,%d shows %q, hit %s", x, y, c.At(x, y), id)
			if id != command.None {
				hits++
			}
		}
	}
	assert.Equal(t, 3*(len(toolbar.DefaultItems)-3), hits, "three cells per button")
}

func TestGridDotsFollowOrigin(t *testing.T) {
	c := NewCanvas(10, 6)
	drawGrid(c, session.GridView{Origin: domain.Point2d{X: 3, Y: 2}, StepX: 4, StepY: 2})
	assert.Equal(t, '·', c.At(3, 2))
	assert.Equal(t, '·', c.At(7, 4))
	assert.Equal(t, '·', c.At(3, 0))
	assert.Equal(t, ' ', c.At(4, 2))
}

func TestStatusShowsModeAndError(t *testing.T) {
	sr := NewStatusRenderer(NewStyles())
	out := ansi.Strip(sr.Render(session.Frame{
		Mode:        pending.DraggingNewLinePoint,
		Description: "click next point of line",
		Message:     domain.MessageEvent{Level: domain.MessageError, Text: "Bad selection"},
	}, 80))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, StatusRows)
	assert.Contains(t, lines[0], "DRAGGING-NEW-LINE-POINT")
	assert.Contains(t, lines[0], "click next point of line")
	assert.Equal(t, "Bad selection", lines[1])
}

func TestReferenceListsMenus(t *testing.T) {
	rr := NewReferenceRenderer(NewStyles())
	out := rr.Render(command.DefaultTable, true)
	assert.Contains(t, out, "File")
	assert.Contains(t, out, "Ctrl+Z")
	assert.Contains(t, out, "Undo")
	assert.NotContains(t, out, "&")
}

func TestPopupOverlayKeepsSurroundings(t *testing.T) {
	base := strings.Repeat(strings.Repeat("x", 20)+"\n", 9) + strings.Repeat("x", 20)
	out := NewPopupRenderer(NewStyles()).RenderPopupOverlay(base, "", "hi", 20, 10)
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat("x", 20), lines[0])
	assert.Contains(t, lines[4], "hi")
	assert.True(t, strings.HasPrefix(lines[4], "xxxxxxx"))
	for _, l := range lines {
		assert.Equal(t, 20, ansi.StringWidth(l))
	}
}

func TestOverlayPlacesLine(t *testing.T) {
	out := Overlay("abcdef\nghijkl", "XY", 2, 1)
	assert.Equal(t, "abcdef\nghXYkl", out)
	assert.Equal(t, "ab", Overlay("ab", "Z", 0, 3))
}
