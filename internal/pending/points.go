package pending

import (
	"fmt"

	"sketchedit/internal/document"
	"sketchedit/internal/domain"
)

// Tracked is a point carried along by a drag. A nil Derive moves the
// point by the primary's displacement; otherwise its position is derived
// from the primary's working position.
type Tracked struct {
	H      domain.HEntity
	Origin domain.Vector
	Derive func(primary domain.Vector) domain.Vector
}

// PointSet is the ordered working set of a point drag: the primary point
// first, then the auxiliary points in the order they are updated.
type PointSet struct {
	Primary Tracked
	Aux     []Tracked
	live    map[domain.HEntity]domain.Vector
}

func newPointSet(primary Tracked, aux ...Tracked) PointSet {
	s := PointSet{Primary: primary, Aux: aux, live: make(map[domain.HEntity]domain.Vector, len(aux)+1)}
	s.move(primary.Origin)
	return s
}

func (s *PointSet) move(p domain.Vector) {
	s.live[s.Primary.H] = p
	delta := p.Minus(s.Primary.Origin)
	for _, a := range s.Aux {
		if a.Derive != nil {
			s.live[a.H] = a.Derive(p)
		} else {
			s.live[a.H] = a.Origin.Plus(delta)
		}
	}
}

// Order lists the handles primary first, then auxiliaries
func (s *PointSet) Order() []domain.HEntity {
	out := make([]domain.HEntity, 0, len(s.Aux)+1)
	out = append(out, s.Primary.H)
	for _, a := range s.Aux {
		out = append(out, a.H)
	}
	return out
}

// Position returns the working position of a tracked point
func (s *PointSet) Position(h domain.HEntity) (domain.Vector, bool) {
	v, ok := s.live[h]
	return v, ok
}

func (s *PointSet) contains(h domain.HEntity) bool {
	_, ok := s.live[h]
	return ok
}

func (s *PointSet) refersTo(deleted domain.HandleSet) bool {
	for h := range s.live {
		if deleted.HasEntity(h) {
			return true
		}
	}
	return false
}

func (s *PointSet) preview(pv *Preview) {
	for h, v := range s.live {
		pv.Points[h] = v
	}
}

// snap moves the primary onto snapTo and makes them coincident
func (s *PointSet) snap(tx document.Tx, snapTo domain.HEntity) error {
	if snapTo.IsNull() || s.contains(snapTo) {
		return nil
	}
	target, ok := tx.Entity(snapTo)
	if !ok || !target.IsPoint() {
		return nil
	}
	s.move(target.Pos)
	_, err := tx.AddConstraint(domain.Constraint{
		Type: domain.ConstraintPointsCoincident,
		PtA:  s.Primary.H,
		PtB:  snapTo,
	})
	return err
}

// write stores the working positions, primary first
func (s *PointSet) write(tx document.Tx) error {
	for _, h := range s.Order() {
		if err := tx.SetPoint(h, s.live[h]); err != nil {
			return fmt.Errorf("failed to move point %v: %w", h, err)
		}
	}
	return nil
}

// coincidentWith returns the points joined to any of seed by a
// points-coincident constraint, transitively, excluding seed itself.
func coincidentWith(doc document.Reader, seed []domain.HEntity) []domain.HEntity {
	in := make(map[domain.HEntity]bool, len(seed))
	for _, h := range seed {
		in[h] = true
	}
	var out []domain.HEntity
	constraints := doc.Constraints()
	for grew := true; grew; {
		grew = false
		for _, c := range constraints {
			if c.Type != domain.ConstraintPointsCoincident {
				continue
			}
			var other domain.HEntity
			switch {
			case in[c.PtA] && !in[c.PtB]:
				other = c.PtB
			case in[c.PtB] && !in[c.PtA]:
				other = c.PtA
			default:
				continue
			}
			in[other] = true
			out = append(out, other)
			grew = true
		}
	}
	return out
}
