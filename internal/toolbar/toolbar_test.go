package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchedit/internal/command"
)

type dispatched struct {
	ids []command.ID
}

func (d *dispatched) Invoke(id command.ID) error {
	d.ids = append(d.ids, id)
	return nil
}

func newTestToolbar(t *testing.T) (*Toolbar, *dispatched) {
	t.Helper()
	d := &dispatched{}
	handlers := map[command.Family]command.Handler{}
	for f := command.FamilyFile; f <= command.FamilyHelp; f++ {
		handlers[f] = d
	}
	reg, err := command.NewRegistry(command.DefaultTable, handlers)
	require.NoError(t, err)
	return New(reg, DefaultItems, CellMetrics), d
}

func TestLayoutTwoColumnsWithSpacers(t *testing.T) {
	tb, _ := newTestToolbar(t)
	pos := map[command.ID][2]int{}
	var spacers [][2]int
	tb.Layout(func(s Slot) bool {
		if s.Item.Spacer {
			spacers = append(spacers, [2]int{s.X, s.Y})
		} else {
			pos[s.Item.ID] = [2]int{s.X, s.Y}
		}
		return true
	})

	assert.Equal(t, [2]int{2, 1}, pos[command.LineSegment])
	assert.Equal(t, [2]int{6, 1}, pos[command.Rectangle])
	assert.Equal(t, [2]int{2, 2}, pos[command.Circle])
	assert.Equal(t, [2]int{6, 4}, pos[command.SplitCurves])
	// a spacer after a full row only adds the gap
	assert.Equal(t, [2]int{2, 6}, pos[command.DistanceDia])
	// a spacer after a half row finishes the row first
	assert.Equal(t, [2]int{2, 10}, pos[command.Reference])
	assert.Equal(t, [2]int{2, 12}, pos[command.GroupExtrude])
	assert.Equal(t, [2]int{6, 15}, pos[command.SelWorkplane])
	assert.Len(t, spacers, 3)
}

func TestHitTestUsesOpenBoxes(t *testing.T) {
	tb, _ := newTestToolbar(t)

	id, within := tb.HitTest(3, 1)
	assert.True(t, within)
	assert.Equal(t, command.LineSegment, id)

	id, within = tb.HitTest(4, 1)
	assert.True(t, within, "gap between buttons is still the toolbar")
	assert.Equal(t, command.None, id)

	id, _ = tb.HitTest(5, 6)
	assert.Equal(t, command.Angle, id)

	_, within = tb.HitTest(9, 1)
	assert.False(t, within)
	_, within = tb.HitTest(2, 17)
	assert.False(t, within)
}

func TestBounds(t *testing.T) {
	tb, _ := newTestToolbar(t)
	assert.Equal(t, Box{MinX: 0, MinY: 0, MaxX: 8, MaxY: 16}, tb.Bounds())
}

func TestPaintAndHitTestAgree(t *testing.T) {
	for name, m := range map[string]Metrics{"cells": CellMetrics, "pixels": PixelMetrics} {
		t.Run(name, func(t *testing.T) {
			tb := New(nil, DefaultItems, m)
			painted := map[[2]int]command.ID{}
			for _, p := range tb.Paint() {
				if p.Item.Spacer {
					assert.Equal(t, Box{}, p.Box)
					continue
				}
				assert.True(t, p.Box.Contains(p.X, p.Y), "the icon sits inside its box")
				for y := p.Box.MinY; y <= p.Box.MaxY; y++ {
					for x := p.Box.MinX; x <= p.Box.MaxX; x++ {
						_, dup := painted[[2]int{x, y}]
						require.False(t, dup, "buttons overlap at %d,%d", x, y)
						painted[[2]int{x, y}] = p.Item.ID
					}
				}
			}

			b := tb.Bounds()
			for y := b.MinY - 2; y <= b.MaxY+2; y++ {
				for x := b.MinX - 2; x <= b.MaxX+2; x++ {
					id, _ := tb.HitTest(x, y)
					want, ok := painted[[2]int{x, y}]
					if !ok {
						want = command.None
					}
					require.Equal(t, want, id, "cell %d,%d", x, y)
				}
			}
		})
	}
}

func TestDelayedTooltipWithAccelerator(t *testing.T) {
	tb, _ := newTestToolbar(t)

	within, restart := tb.MouseMoved(2, 1)
	require.True(t, within)
	require.True(t, restart)
	gen := tb.Generation()
	_, shown := tb.Tooltip()
	assert.False(t, shown, "no tooltip before the delay")

	assert.False(t, tb.TimerFired(gen-1), "stale timer is ignored")
	require.True(t, tb.TimerFired(gen))
	tip, shown := tb.Tooltip()
	require.True(t, shown)
	assert.Equal(t, Tooltip{Text: "Sketch line segment (S)", X: 3, Y: 2}, tip)

	// moving within the same button neither restarts nor moves the tooltip
	_, restart = tb.MouseMoved(3, 1)
	assert.False(t, restart)
	tip, _ = tb.Tooltip()
	assert.Equal(t, 3, tip.X)

	_, restart = tb.MouseMoved(6, 1)
	assert.True(t, restart)
	_, shown = tb.Tooltip()
	assert.False(t, shown)
	require.True(t, tb.TimerFired(tb.Generation()))
	tip, _ = tb.Tooltip()
	assert.Equal(t, "Sketch rectangle (R)", tip.Text)
}

func TestTooltipSuffixRules(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{2, 9, "Constrain point on line / curve / plane / face (O)"},
		{6, 8, "Constrain to be perpendicular ([)"},
		{2, 13, "New group in 3d"},
		{2, 15, "Sketch / constrain in 3d (3)"},
	}
	for _, tt := range tests {
		tb, _ := newTestToolbar(t)
		tb.MouseMoved(tt.x, tt.y)
		require.True(t, tb.TimerFired(tb.Generation()))
		tip, ok := tb.Tooltip()
		require.True(t, ok)
		assert.Equal(t, tt.want, tip.Text)
	}
}

func TestLeavingToolbarHidesTooltip(t *testing.T) {
	tb, _ := newTestToolbar(t)
	tb.MouseMoved(2, 1)
	tb.TimerFired(tb.Generation())

	within, restart := tb.MouseMoved(40, 20)
	assert.False(t, within)
	assert.True(t, restart)
	assert.Equal(t, command.None, tb.Hovered())
	assert.False(t, tb.TimerFired(tb.Generation()))
	_, shown := tb.Tooltip()
	assert.False(t, shown)
}

func TestMouseDownDispatches(t *testing.T) {
	tb, d := newTestToolbar(t)

	hit, err := tb.MouseDown(2, 2)
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = tb.MouseDown(4, 2)
	require.NoError(t, err)
	assert.True(t, hit, "click in a gap is swallowed")

	hit, err = tb.MouseDown(30, 2)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, []command.ID{command.Circle}, d.ids)
}

func TestPaintMarksHovered(t *testing.T) {
	tb, _ := newTestToolbar(t)
	tb.MouseMoved(6, 2)
	var hovered []command.ID
	for _, p := range tb.Paint() {
		if p.Hovered {
			hovered = append(hovered, p.Item.ID)
		}
	}
	assert.Equal(t, []command.ID{command.Arc}, hovered)
}
