package selection

import (
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
)

// Service holds the hovered item and the ordered, duplicate-free selection
type Service struct {
	items []Item
	hover Item
	bus   eventbus.EventBus
}

// NewService creates a new selection service. bus may be nil.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{bus: bus}
}

// SetHover replaces the hovered item
func (s *Service) SetHover(item Item) {
	s.hover = item
}

// ClearHover forgets the hovered item
func (s *Service) ClearHover() {
	s.hover = Item{}
}

// Hover returns the hovered item
func (s *Service) Hover() Item {
	return s.hover
}

func (s *Service) indexOf(item Item) int {
	for i, it := range s.items {
		if it.Equals(item) {
			return i
		}
	}
	return -1
}

// Toggle removes the item if it is selected, otherwise appends it
func (s *Service) Toggle(item Item) {
	if !item.IsValid() {
		return
	}
	if i := s.indexOf(item); i >= 0 {
		s.removeAt(i)
		s.publish(0, 1)
		return
	}
	s.items = append(s.items, item)
	s.publish(1, 0)
}

// MakeSelected adds the item unless it is already selected
func (s *Service) MakeSelected(item Item) {
	if !item.IsValid() || s.indexOf(item) >= 0 {
		return
	}
	s.items = append(s.items, item)
	s.publish(1, 0)
}

// MakeUnselected removes the item. With coincident set, points of doc
// lying at the same position as item are unselected too.
func (s *Service) MakeUnselected(item Item, doc document.Reader, coincident bool) {
	removed := 0
	if i := s.indexOf(item); i >= 0 {
		s.removeAt(i)
		removed++
	}
	if coincident && doc != nil && !item.Entity.IsNull() {
		if p, ok := doc.Entity(item.Entity); ok && p.IsPoint() {
			kept := s.items[:0]
			for _, it := range s.items {
				if q, ok := doc.Entity(it.Entity); ok && q.IsPoint() && q.Pos.Dist(p.Pos) < 1e-6 {
					removed++
					continue
				}
				kept = append(kept, it)
			}
			s.items = kept
		}
	}
	if removed > 0 {
		s.publish(0, removed)
	}
}

func (s *Service) removeAt(i int) {
	s.items = append(s.items[:i:i], s.items[i+1:]...)
}

// Clear empties the selection and the hover
func (s *Service) Clear() {
	s.items = nil
	s.hover = Item{}
	if s.bus != nil {
		s.bus.Publish(eventbus.SelectionClearedEvent{})
	}
}

// PurgeStale removes every item, and the hover, that refers to a deleted handle
func (s *Service) PurgeStale(deleted domain.HandleSet) {
	if s.hover.IsStale(deleted) {
		s.hover = Item{}
	}
	removed := 0
	kept := s.items[:0]
	for _, it := range s.items {
		if it.IsStale(deleted) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	if removed > 0 {
		s.publish(0, removed)
	}
}

// PurgeNonexistent removes every item the document can no longer resolve
func (s *Service) PurgeNonexistent(doc document.Reader) {
	if !s.hover.IsEmpty() && !exists(doc, s.hover) {
		s.hover = Item{}
	}
	removed := 0
	kept := s.items[:0]
	for _, it := range s.items {
		if !exists(doc, it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	if removed > 0 {
		s.publish(0, removed)
	}
}

func exists(doc document.Reader, it Item) bool {
	if !it.Entity.IsNull() {
		_, ok := doc.Entity(it.Entity)
		return ok
	}
	_, ok := doc.Constraint(it.Constraint)
	return ok
}

// Items returns the selection in the order it was made
func (s *Service) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected items
func (s *Service) Len() int {
	return len(s.items)
}

// IsSelected reports whether the item is selected
func (s *Service) IsSelected(item Item) bool {
	return s.indexOf(item) >= 0
}

// Equal reports whether both selections hold the same items, in any order
func (s *Service) Equal(o *Service) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for _, it := range s.items {
		i := o.indexOf(it)
		if i < 0 || o.items[i].Emphasized != it.Emphasized {
			return false
		}
	}
	return true
}

// Classify summarizes the selection. Items the document cannot resolve
// are skipped.
func (s *Service) Classify(doc document.Reader) Classification {
	var c Classification
	for _, it := range s.items {
		if !it.Constraint.IsNull() {
			con, ok := doc.Constraint(it.Constraint)
			if !ok {
				continue
			}
			c.Constraints++
			c.ConstraintHandles = append(c.ConstraintHandles, con.H)
			c.Stylables++
			if con.HasLabel() {
				c.ConstraintLabels++
			}
			c.N++
			continue
		}
		e, ok := doc.Entity(it.Entity)
		if !ok {
			continue
		}
		switch {
		case e.IsPoint():
			c.Points++
			c.PointHandles = append(c.PointHandles, e.H)
		case e.IsNormal():
			c.AnyNormals++
			c.AnyNormalHandles = append(c.AnyNormalHandles, e.H)
		default:
			c.Entities++
			c.EntityHandles = append(c.EntityHandles, e.H)
		}
		if e.IsWorkplane() {
			c.Workplanes++
		}
		if e.IsFace() {
			c.Faces++
			c.FaceHandles = append(c.FaceHandles, e.H)
		}
		if e.IsLineSegment() {
			c.LineSegments++
		}
		if e.IsCircleOrArc() {
			c.CircleOrArcs++
		}
		if e.Type == domain.EntityArc {
			c.Arcs++
		}
		if e.IsCubic() {
			c.Cubics++
		}
		if e.Type == domain.EntityCubicPeriodic {
			c.PeriodicCubics++
		}
		if e.HasVector() {
			c.Vectors++
			c.VectorHandles = append(c.VectorHandles, e.H)
		}
		if e.IsStylable() {
			c.Stylables++
		}
		if e.HasEndpoints() {
			c.WithEndpoints++
		}
		c.N++
	}
	return c
}

func (s *Service) publish(added, removed int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   len(s.items),
	})
}
