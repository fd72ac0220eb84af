package pending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
)

type harness struct {
	doc     *document.Memory
	machine *Machine
	changes int
	modes   []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	bus := eventbus.New()
	h := &harness{doc: document.NewMemory(bus)}
	h.machine = NewMachine(h.doc, bus)
	bus.Subscribe(eventbus.EventDocumentChanged, func(eventbus.DomainEvent) { h.changes++ })
	bus.Subscribe(eventbus.EventPendingChanged, func(e eventbus.DomainEvent) {
		h.modes = append(h.modes, e.(eventbus.PendingChangedEvent).Mode)
	})
	bus.Subscribe(eventbus.EventHandlesInvalidated, func(e eventbus.DomainEvent) {
		h.machine.Invalidate(e.(eventbus.HandlesInvalidatedEvent).Deleted)
	})
	return h
}

func (h *harness) point(t *testing.T, at domain.Vector) domain.HEntity {
	t.Helper()
	var hr domain.HRequest
	require.NoError(t, h.doc.Update("add point", func(tx document.Tx) error {
		var err error
		hr, err = tx.AddRequest(domain.RequestDatumPoint, at)
		return err
	}))
	return hr.Entity(0)
}

func (h *harness) pos(t *testing.T, e domain.HEntity) domain.Vector {
	t.Helper()
	ent, ok := h.doc.Entity(e)
	require.True(t, ok, "entity %v", e)
	return ent.Pos
}

func constraintsOfType(doc document.Reader, ct domain.ConstraintType) []domain.Constraint {
	var out []domain.Constraint
	for _, c := range doc.Constraints() {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

func TestLineClickMoveClick(t *testing.T) {
	h := newHarness(t)
	m := h.machine

	m.Arm(command.LineSegment, "click first point of line")
	assert.Equal(t, Command, m.Mode())

	require.NoError(t, m.Place(domain.Vector{X: 0, Y: 0}, 0))
	require.Equal(t, DraggingNewLinePoint, m.Mode())
	op := m.Current().(*DragNewLinePoint)
	line := op.Line

	assert.True(t, m.Move(domain.Vector{X: 10, Y: 0.1}, domain.Point2d{}))
	assert.Equal(t, domain.ConstraintHorizontal, m.Preview().Suggestion)

	before := h.changes
	res, err := m.Commit(0)
	require.NoError(t, err)
	assert.Equal(t, 1, h.changes-before, "commit is exactly one mutation")
	assert.Equal(t, DraggingNewLinePoint, res.Mode)
	assert.Equal(t, None, m.Mode())

	ent, ok := h.doc.Entity(line)
	require.True(t, ok)
	assert.Equal(t, domain.Vector{X: 10, Y: 0.1}, h.pos(t, ent.Points[1]))
	horiz := constraintsOfType(h.doc, domain.ConstraintHorizontal)
	require.Len(t, horiz, 1)
	assert.Equal(t, line, horiz[0].EntityA)

	// creation and placement are one undo step
	require.NoError(t, h.doc.Undo())
	assert.Empty(t, h.doc.Entities())
	assert.False(t, h.doc.CanUndo())
}

func TestAutoConstrainOff(t *testing.T) {
	h := newHarness(t)
	h.machine.SetAutoConstrain(false)
	h.machine.Arm(command.LineSegment, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	h.machine.Move(domain.Vector{Y: 5}, domain.Point2d{})
	_, err := h.machine.Commit(0)
	require.NoError(t, err)
	assert.Empty(t, h.doc.Constraints())
}

func TestSuggestOrientation(t *testing.T) {
	o := domain.Vector{}
	assert.Equal(t, domain.ConstraintHorizontal, SuggestOrientation(o, domain.Vector{X: 100, Y: 1}))
	assert.Equal(t, domain.ConstraintVertical, SuggestOrientation(o, domain.Vector{X: -1, Y: 100}))
	assert.Equal(t, domain.ConstraintType(0), SuggestOrientation(o, domain.Vector{X: 10, Y: 10}))
	assert.Equal(t, domain.ConstraintType(0), SuggestOrientation(o, o))
}

func TestCancelRollsBackCreation(t *testing.T) {
	h := newHarness(t)
	h.point(t, domain.Vector{X: 50})
	before := h.doc.Entities()

	h.machine.Arm(command.Rectangle, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	h.machine.Move(domain.Vector{X: 3, Y: 4}, domain.Point2d{})
	h.machine.Cancel()

	assert.Equal(t, None, h.machine.Mode())
	assert.Equal(t, before, h.doc.Entities())
	assert.Empty(t, h.doc.Constraints())
	require.True(t, h.doc.CanUndo())
	require.NoError(t, h.doc.Undo())
	assert.False(t, h.doc.CanUndo(), "cancelled creation leaves no undo step")
}

func TestCancelAfterHistoryMovedDeletesCreated(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Circle, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	op := h.machine.Current().(*DragNewRadius)

	// an unrelated step lands on top of the creation
	h.point(t, domain.Vector{X: 9})

	h.machine.Cancel()
	_, ok := h.doc.Entity(op.Circle)
	assert.False(t, ok)
	assert.Len(t, h.doc.Entities(), 1)
}

func TestArmCancelsActiveOperation(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.LineSegment, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	require.Equal(t, DraggingNewLinePoint, h.machine.Mode())

	h.machine.Arm(command.Circle, "click center of circle")

	assert.Equal(t, Command, h.machine.Mode())
	assert.Equal(t, command.Circle, h.machine.Current().Command())
	assert.Empty(t, h.doc.Entities())
}

func TestBeginCancelsActiveOperation(t *testing.T) {
	h := newHarness(t)
	p := h.point(t, domain.Vector{X: 1})
	h.machine.Arm(command.Arc, "")
	require.NoError(t, h.machine.Place(domain.Vector{X: 20}, 0))

	drag, err := NewDragPoints(h.doc, p, nil)
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(drag))

	assert.Equal(t, DraggingPoints, h.machine.Mode())
	assert.Len(t, h.doc.Entities(), 1)
}

func TestBeginRejectsArmedAndCreation(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.machine.Begin(&ArmedCommand{}), ErrInvariant)
	assert.ErrorIs(t, h.machine.Begin(&DragNewPoint{}), ErrInvariant)
	assert.ErrorIs(t, h.machine.Begin(nil), ErrInvariant)
	assert.Equal(t, None, h.machine.Mode())
}

func TestRectangleAuxiliaryPointsFollowPrimary(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Rectangle, "")
	require.NoError(t, h.machine.Place(domain.Vector{X: 1, Y: 1}, 0))
	op := h.machine.Current().(*DragNewPoint)

	order := op.Order()
	require.Len(t, order, 7)
	assert.Equal(t, op.Primary.H, order[0])

	h.machine.Move(domain.Vector{X: 5, Y: 3}, domain.Point2d{})
	_, err := h.machine.Commit(0)
	require.NoError(t, err)

	corners := map[domain.Vector]int{}
	for _, e := range h.doc.Entities() {
		if e.IsPoint() {
			corners[e.Pos]++
		}
	}
	assert.Equal(t, map[domain.Vector]int{
		{X: 1, Y: 1}: 2,
		{X: 5, Y: 1}: 2,
		{X: 5, Y: 3}: 2,
		{X: 1, Y: 3}: 2,
	}, corners)
	assert.Len(t, constraintsOfType(h.doc, domain.ConstraintPointsCoincident), 4)
	assert.Len(t, constraintsOfType(h.doc, domain.ConstraintHorizontal), 2)
	assert.Len(t, constraintsOfType(h.doc, domain.ConstraintVertical), 2)
}

func TestArcCenterDerivedFromEndpoints(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Arc, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	op := h.machine.Current().(*DragNewArcPoint)
	h.machine.Move(domain.Vector{X: 4, Y: 2}, domain.Point2d{})

	center, ok := op.Position(op.Aux[0].H)
	require.True(t, ok)
	assert.Equal(t, domain.Vector{X: 2, Y: 1}, center)
	assert.Equal(t, domain.Vector{X: 2, Y: 1}, h.machine.Preview().Points[op.Aux[0].H])
}

func TestCubicControlPointsAtThirds(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Cubic, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	h.machine.Move(domain.Vector{X: 9}, domain.Point2d{})
	_, err := h.machine.Commit(0)
	require.NoError(t, err)

	var cubic domain.Entity
	for _, e := range h.doc.Entities() {
		if e.IsCubic() {
			cubic = e
		}
	}
	require.Len(t, cubic.Points, 4)
	assert.InDelta(t, 3, h.pos(t, cubic.Points[1]).X, 1e-9)
	assert.InDelta(t, 6, h.pos(t, cubic.Points[2]).X, 1e-9)
	assert.Equal(t, domain.Vector{X: 9}, h.pos(t, cubic.Points[3]))
}

func TestSingleClickEntitiesFinishImmediately(t *testing.T) {
	h := newHarness(t)
	for _, cmd := range []command.ID{command.DatumPoint, command.Workplane, command.Comment} {
		h.machine.Arm(cmd, "")
		require.NoError(t, h.machine.Place(domain.Vector{X: 2}, 0))
		assert.Equal(t, None, h.machine.Mode(), cmd.String())
	}
	comments := constraintsOfType(h.doc, domain.ConstraintComment)
	require.Len(t, comments, 1)
	assert.Equal(t, NewCommentText, comments[0].Comment)
}

func TestPlaceSnapsToHoveredPoint(t *testing.T) {
	h := newHarness(t)
	target := h.point(t, domain.Vector{X: 7, Y: 7})

	h.machine.Arm(command.LineSegment, "")
	require.NoError(t, h.machine.Place(domain.Vector{X: 6.9, Y: 7.2}, target))
	op := h.machine.Current().(*DragNewLinePoint)
	assert.Equal(t, domain.Vector{X: 7, Y: 7}, op.Start)

	coincident := constraintsOfType(h.doc, domain.ConstraintPointsCoincident)
	require.Len(t, coincident, 1)
	assert.Equal(t, target, coincident[0].PtB)
}

func TestCommitSnapsPrimary(t *testing.T) {
	h := newHarness(t)
	target := h.point(t, domain.Vector{X: 10, Y: 10})
	h.machine.Arm(command.LineSegment, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	op := h.machine.Current().(*DragNewLinePoint)
	end := op.Primary.H

	h.machine.Move(domain.Vector{X: 9.8, Y: 10.1}, domain.Point2d{})
	_, err := h.machine.Commit(target)
	require.NoError(t, err)

	assert.Equal(t, domain.Vector{X: 10, Y: 10}, h.pos(t, end))
	coincident := constraintsOfType(h.doc, domain.ConstraintPointsCoincident)
	require.Len(t, coincident, 1)
	assert.Equal(t, end, coincident[0].PtA)
}

func TestDragPointsCarriesCoincidentPoints(t *testing.T) {
	h := newHarness(t)
	a := h.point(t, domain.Vector{X: 1})
	b := h.point(t, domain.Vector{X: 1})
	c := h.point(t, domain.Vector{X: 5})
	require.NoError(t, h.doc.Update("join", func(tx document.Tx) error {
		_, err := tx.AddConstraint(domain.Constraint{Type: domain.ConstraintPointsCoincident, PtA: b, PtB: a})
		return err
	}))

	drag, err := NewDragPoints(h.doc, a, []domain.HEntity{c, a})
	require.NoError(t, err)
	assert.Equal(t, []domain.HEntity{a, c, b}, drag.Order())
	require.NoError(t, h.machine.Begin(drag))

	h.machine.Move(domain.Vector{X: 2, Y: 1}, domain.Point2d{})
	pv := h.machine.Preview()
	assert.Equal(t, domain.Vector{X: 6, Y: 1}, pv.Points[c])
	assert.Equal(t, domain.Vector{X: 1}, h.pos(t, a), "document untouched before commit")

	before := h.changes
	_, err = h.machine.Commit(0)
	require.NoError(t, err)
	assert.Equal(t, 1, h.changes-before)
	assert.Equal(t, domain.Vector{X: 2, Y: 1}, h.pos(t, a))
	assert.Equal(t, domain.Vector{X: 2, Y: 1}, h.pos(t, b))
	assert.Equal(t, domain.Vector{X: 6, Y: 1}, h.pos(t, c))

	require.NoError(t, h.doc.Undo())
	assert.Equal(t, domain.Vector{X: 1}, h.pos(t, a))
}

func TestDragConstraintLabel(t *testing.T) {
	h := newHarness(t)
	a := h.point(t, domain.Vector{})
	b := h.point(t, domain.Vector{X: 10})
	var hc domain.HConstraint
	require.NoError(t, h.doc.Update("dimension", func(tx document.Tx) error {
		var err error
		hc, err = tx.AddConstraint(domain.Constraint{
			Type: domain.ConstraintPtPtDistance, PtA: a, PtB: b, ValA: 10, Label: domain.Vector{X: 5, Y: 2},
		})
		return err
	}))

	drag, err := NewDragConstraint(h.doc, hc, domain.Vector{X: 5, Y: 2})
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(drag))
	h.machine.Move(domain.Vector{X: 6, Y: 4}, domain.Point2d{})

	c, _ := h.machine.doc.Constraint(hc)
	assert.Equal(t, domain.Vector{X: 6, Y: 4}, h.machine.Preview().Label(c))

	h.machine.Cancel()
	c, _ = h.doc.Constraint(hc)
	assert.Equal(t, domain.Vector{X: 5, Y: 2}, c.Label, "cancel restores the label")

	drag, err = NewDragConstraint(h.doc, hc, domain.Vector{X: 5, Y: 2})
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(drag))
	h.machine.Move(domain.Vector{X: 5, Y: 0}, domain.Point2d{})
	_, err = h.machine.Commit(0)
	require.NoError(t, err)
	c, _ = h.doc.Constraint(hc)
	assert.Equal(t, domain.Vector{X: 5, Y: 0}, c.Label)
}

func TestDragRadiusAndNewRadius(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Circle, "")
	require.NoError(t, h.machine.Place(domain.Vector{X: 1, Y: 1}, 0))
	op := h.machine.Current().(*DragNewRadius)
	h.machine.Move(domain.Vector{X: 4, Y: 5}, domain.Point2d{})
	_, err := h.machine.Commit(0)
	require.NoError(t, err)

	d, ok := h.doc.Entity(op.Distance)
	require.True(t, ok)
	assert.InDelta(t, 5, d.Value, 1e-9)

	resize, err := NewDragRadius(h.doc, op.Circle)
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(resize))
	h.machine.Move(domain.Vector{X: 1, Y: 3}, domain.Point2d{})
	_, err = h.machine.Commit(0)
	require.NoError(t, err)
	d, _ = h.doc.Entity(op.Distance)
	assert.InDelta(t, 2, d.Value, 1e-9)

	_, err = NewDragRadius(h.doc, op.Distance)
	assert.ErrorIs(t, err, document.ErrWrongEntityType)
}

func TestDragNormalRotates(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Workplane, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	var wp domain.Entity
	for _, e := range h.doc.Entities() {
		if e.IsWorkplane() {
			wp = e
		}
	}

	drag, err := NewDragNormal(h.doc, wp.Normal, domain.Vector{}, domain.Vector{X: 1})
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(drag))
	h.machine.Move(domain.Vector{Y: 2}, domain.Point2d{})
	_, err = h.machine.Commit(0)
	require.NoError(t, err)

	n, _ := h.doc.Entity(wp.Normal)
	assert.InDelta(t, 1.5707963, n.Angle, 1e-6)
}

func TestMarqueeCommitDoesNotTouchDocument(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.machine.Begin(NewDragMarquee(domain.Point2d{X: 10, Y: 10})))
	h.machine.Move(domain.Vector{}, domain.Point2d{X: 2, Y: 20})
	require.NotNil(t, h.machine.Preview().Marquee)

	rev := h.doc.Revision()
	res, err := h.machine.Commit(0)
	require.NoError(t, err)
	assert.Equal(t, rev, h.doc.Revision())
	require.NotNil(t, res.Marquee)
	assert.Equal(t, Rect{Min: domain.Point2d{X: 2, Y: 10}, Max: domain.Point2d{X: 10, Y: 20}}, *res.Marquee)
	assert.True(t, res.Marquee.Contains(domain.Point2d{X: 5, Y: 15}))
}

func TestDeletedHandleCancelsDrag(t *testing.T) {
	h := newHarness(t)
	p := h.point(t, domain.Vector{X: 3})
	drag, err := NewDragPoints(h.doc, p, nil)
	require.NoError(t, err)
	require.NoError(t, h.machine.Begin(drag))

	require.NoError(t, h.doc.Update("delete", func(tx document.Tx) error {
		tx.DeleteRequests(p.Request())
		return nil
	}))
	assert.Equal(t, None, h.machine.Mode())
}

func TestPlaceAndCommitNeedTheRightMode(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.machine.Place(domain.Vector{}, 0), ErrInvariant)

	_, err := h.machine.Commit(0)
	assert.ErrorIs(t, err, ErrNoOperation)

	h.machine.Arm(command.LineSegment, "")
	_, err = h.machine.Commit(0)
	assert.ErrorIs(t, err, ErrNoOperation)
	assert.Equal(t, Command, h.machine.Mode(), "armed command survives a stray commit")
	assert.False(t, h.machine.Move(domain.Vector{X: 1}, domain.Point2d{}))
}

func TestPlaceRejectsNonPlacingCommand(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.Horizontal, "")
	assert.ErrorIs(t, h.machine.Place(domain.Vector{}, 0), ErrInvariant)
	assert.Equal(t, None, h.machine.Mode())
	assert.Empty(t, h.doc.Entities())
}

func TestPendingChangedAnnouncesModes(t *testing.T) {
	h := newHarness(t)
	h.machine.Arm(command.LineSegment, "")
	require.NoError(t, h.machine.Place(domain.Vector{}, 0))
	h.machine.Cancel()
	assert.Equal(t, []string{"command", "dragging-new-line-point", "none"}, h.modes)
}
