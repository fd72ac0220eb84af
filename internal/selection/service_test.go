package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
)

func newLine(t *testing.T, doc *document.Memory, a, b domain.Vector) domain.HRequest {
	t.Helper()
	var hr domain.HRequest
	require.NoError(t, doc.Update("add line", func(tx document.Tx) error {
		var err error
		if hr, err = tx.AddRequest(domain.RequestLineSegment, a); err != nil {
			return err
		}
		return tx.SetPoint(hr.Entity(2), b)
	}))
	return hr
}

func TestToggleNeverDuplicates(t *testing.T) {
	s := NewService(nil)
	a := EntityItem(domain.HRequest(1).Entity(1))
	b := ConstraintItem(3)

	seq := []Item{a, b, a, a, b, a, {Entity: a.Entity, Emphasized: true}}
	for _, it := range seq {
		s.Toggle(it)
		seen := map[Item]int{}
		for _, got := range s.Items() {
			got.Emphasized = false
			seen[got]++
			assert.LessOrEqual(t, seen[got], 1)
		}
	}
	// a toggled five times, b twice
	require.Equal(t, 1, s.Len())
	assert.Equal(t, a.Entity, s.Items()[0].Entity)
}

func TestToggleIgnoresEmptyItem(t *testing.T) {
	s := NewService(nil)
	s.Toggle(Item{})
	assert.Equal(t, 0, s.Len())
}

func TestItemNamingTwoHandlesIsRejected(t *testing.T) {
	s := NewService(nil)
	both := Item{Entity: domain.HRequest(1).Entity(0), Constraint: domain.HConstraint(3)}
	assert.False(t, both.IsValid())

	s.Toggle(both)
	s.MakeSelected(both)
	assert.Equal(t, 0, s.Len())

	assert.True(t, EntityItem(domain.HRequest(1).Entity(0)).IsValid())
	assert.True(t, ConstraintItem(3).IsValid())
}

func TestSetHoverLeavesSelectionAlone(t *testing.T) {
	s := NewService(nil)
	a := EntityItem(domain.HRequest(1).Entity(0))
	s.Toggle(a)
	s.SetHover(EntityItem(domain.HRequest(2).Entity(0)))

	assert.Equal(t, []Item{a}, s.Items())
	assert.Equal(t, domain.HRequest(2).Entity(0), s.Hover().Entity)
	assert.False(t, s.IsSelected(s.Hover()))
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	s := NewService(nil)
	for i := 5; i > 0; i-- {
		s.MakeSelected(EntityItem(domain.HRequest(i).Entity(0)))
	}
	s.MakeSelected(EntityItem(domain.HRequest(3).Entity(0)))

	items := s.Items()
	require.Len(t, items, 5)
	assert.Equal(t, domain.HRequest(5).Entity(0), items[0].Entity)
	assert.Equal(t, domain.HRequest(1).Entity(0), items[4].Entity)
}

func TestPurgeStaleThenClassify(t *testing.T) {
	doc := document.NewMemory(nil)
	l1 := newLine(t, doc, domain.Vector{}, domain.Vector{X: 1})
	l2 := newLine(t, doc, domain.Vector{X: 2}, domain.Vector{X: 3})

	s := NewService(nil)
	s.Toggle(EntityItem(l1.Entity(0)))
	s.Toggle(EntityItem(l1.Entity(1)))
	s.Toggle(EntityItem(l2.Entity(1)))
	s.SetHover(EntityItem(l1.Entity(2)))

	deleted := domain.NewHandleSet()
	deleted.Requests[l1] = struct{}{}
	for i := 0; i < 3; i++ {
		deleted.Entities[l1.Entity(i)] = struct{}{}
	}
	s.PurgeStale(deleted)

	c := s.Classify(doc)
	assert.Equal(t, 1, c.N)
	assert.Equal(t, 1, c.Points)
	assert.Equal(t, []domain.HEntity{l2.Entity(1)}, c.PointHandles)
	assert.True(t, s.Hover().IsEmpty())
	for _, h := range c.PointHandles {
		assert.False(t, deleted.HasEntity(h))
	}
}

func TestClassifySkipsUnresolvedHandles(t *testing.T) {
	doc := document.NewMemory(nil)
	s := NewService(nil)
	s.Toggle(EntityItem(domain.HRequest(42).Entity(1)))
	s.Toggle(ConstraintItem(7))

	c := s.Classify(doc)
	assert.Equal(t, 0, c.N)
	assert.Equal(t, 2, s.Len())
}

func TestPurgeNonexistent(t *testing.T) {
	doc := document.NewMemory(nil)
	l1 := newLine(t, doc, domain.Vector{}, domain.Vector{X: 1})
	s := NewService(nil)
	s.Toggle(EntityItem(l1.Entity(0)))
	s.Toggle(EntityItem(domain.HRequest(42).Entity(1)))
	s.SetHover(ConstraintItem(9))

	s.PurgeNonexistent(doc)

	assert.Equal(t, []Item{EntityItem(l1.Entity(0))}, s.Items())
	assert.True(t, s.Hover().IsEmpty())
}

func TestClassifyCounts(t *testing.T) {
	doc := document.NewMemory(nil)
	line := newLine(t, doc, domain.Vector{}, domain.Vector{X: 1})
	var circle, arc domain.HRequest
	var hc domain.HConstraint
	require.NoError(t, doc.Update("add", func(tx document.Tx) error {
		var err error
		if circle, err = tx.AddRequest(domain.RequestCircle, domain.Vector{}); err != nil {
			return err
		}
		if arc, err = tx.AddRequest(domain.RequestArc, domain.Vector{}); err != nil {
			return err
		}
		hc, err = tx.AddConstraint(domain.Constraint{Type: domain.ConstraintPtPtDistance, PtA: line.Entity(1), PtB: line.Entity(2), ValA: 1})
		return err
	}))

	s := NewService(nil)
	s.Toggle(EntityItem(line.Entity(0)))
	s.Toggle(EntityItem(line.Entity(1)))
	s.Toggle(EntityItem(circle.Entity(0)))
	s.Toggle(EntityItem(arc.Entity(0)))
	s.Toggle(EntityItem(arc.Entity(4)))
	s.Toggle(ConstraintItem(hc))

	c := s.Classify(doc)
	assert.Equal(t, 6, c.N)
	assert.Equal(t, 1, c.Points)
	assert.Equal(t, 3, c.Entities)
	assert.Equal(t, 1, c.LineSegments)
	assert.Equal(t, 2, c.CircleOrArcs)
	assert.Equal(t, 1, c.Arcs)
	assert.Equal(t, 1, c.AnyNormals)
	assert.Equal(t, 2, c.Vectors)
	assert.Equal(t, 1, c.Constraints)
	assert.Equal(t, 1, c.ConstraintLabels)
	assert.Equal(t, 2, c.WithEndpoints)
	assert.Equal(t, []domain.HEntity{line.Entity(0), circle.Entity(0), arc.Entity(0)}, c.EntityHandles)
}

func TestEqualIgnoresOrder(t *testing.T) {
	a, b := NewService(nil), NewService(nil)
	x, y := EntityItem(domain.HRequest(1).Entity(0)), ConstraintItem(2)
	a.Toggle(x)
	a.Toggle(y)
	b.Toggle(y)
	b.Toggle(x)
	assert.True(t, a.Equal(b))

	b.Toggle(y)
	assert.False(t, a.Equal(b))
}

func TestMakeUnselectedCoincidentPoints(t *testing.T) {
	doc := document.NewMemory(nil)
	l1 := newLine(t, doc, domain.Vector{}, domain.Vector{X: 1})
	l2 := newLine(t, doc, domain.Vector{X: 1}, domain.Vector{X: 2})

	s := NewService(nil)
	s.MakeSelected(EntityItem(l1.Entity(2)))
	s.MakeSelected(EntityItem(l2.Entity(1)))
	s.MakeSelected(EntityItem(l2.Entity(2)))

	s.MakeUnselected(EntityItem(l1.Entity(2)), doc, true)
	assert.Equal(t, []Item{EntityItem(l2.Entity(2))}, s.Items())
}

func TestPublishesSelectionEvents(t *testing.T) {
	bus := eventbus.New()
	var totals []int
	cleared := 0
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		totals = append(totals, e.(eventbus.SelectionChangedEvent).Total)
	})
	bus.Subscribe(eventbus.EventSelectionCleared, func(eventbus.DomainEvent) { cleared++ })

	s := NewService(bus)
	s.Toggle(ConstraintItem(1))
	s.Toggle(ConstraintItem(2))
	s.Toggle(ConstraintItem(1))
	s.Clear()

	assert.Equal(t, []int{1, 2, 1}, totals)
	assert.Equal(t, 1, cleared)
}
