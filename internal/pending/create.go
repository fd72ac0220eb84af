package pending

import (
	"fmt"
	"log"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
)

// NewCommentText is the text of a freshly placed comment
const NewCommentText = "NEW COMMENT -- DOUBLE-CLICK TO EDIT"

// Place handles the click of an armed command. The new entity is created
// as one undo step; entities with a free point then continue as a drag
// that ends in Commit or Cancel. Single-click entities finish at once.
func (m *Machine) Place(at domain.Vector, snapTo domain.HEntity) error {
	armed, ok := m.op.(*ArmedCommand)
	if !ok {
		err := fmt.Errorf("%w: place while %s", ErrInvariant, m.Mode())
		m.Cancel()
		return err
	}
	cmd := armed.Cmd
	m.op = nil

	cp := m.doc.Checkpoint()
	var next Operation
	err := m.doc.Update("create "+cmd.String(), func(tx document.Tx) error {
		var err error
		next, err = build(tx, cmd, at, snapTo)
		return err
	})
	if err != nil {
		log.Printf("Pending: failed to place %s: %v", cmd, err)
		m.announce()
		return err
	}
	if next == nil {
		log.Printf("Pending: placed %s", cmd)
		m.announce()
		return nil
	}
	if c := creationOf(next); c != nil {
		c.checkpoint = cp
		c.placed = m.doc.Revision()
	}
	m.set(next)
	return nil
}

// build creates the requests for cmd at the given position. It returns
// the drag that places the remaining free point, or nil when the entity
// is complete.
func build(tx document.Tx, cmd command.ID, at domain.Vector, snapTo domain.HEntity) (Operation, error) {
	start := at
	if p, ok := snapPoint(tx, snapTo); ok {
		start = p
	}

	switch cmd {
	case command.DatumPoint:
		hr, err := tx.AddRequest(domain.RequestDatumPoint, start)
		if err != nil {
			return nil, err
		}
		return nil, anchor(tx, hr.Entity(0), snapTo)

	case command.Workplane:
		hr, err := tx.AddRequest(domain.RequestWorkplane, start)
		if err != nil {
			return nil, err
		}
		return nil, anchor(tx, hr.Entity(1), snapTo)

	case command.Comment:
		_, err := tx.AddConstraint(domain.Constraint{
			Type:    domain.ConstraintComment,
			Comment: NewCommentText,
			Label:   at,
		})
		return nil, err

	case command.LineSegment, command.ConstrSegment:
		hr, err := tx.AddRequest(domain.RequestLineSegment, start)
		if err != nil {
			return nil, err
		}
		if cmd == command.ConstrSegment {
			if err := tx.SetConstruction(hr, true); err != nil {
				return nil, err
			}
		}
		if err := anchor(tx, hr.Entity(1), snapTo); err != nil {
			return nil, err
		}
		return &DragNewLinePoint{
			base:     base{Cmd: cmd, Desc: "click to place next point of line"},
			creation: creation{Created: []domain.HRequest{hr}},
			PointSet: newPointSet(Tracked{H: hr.Entity(2), Origin: start}),
			Line:     hr.Entity(0),
			Start:    start,
		}, nil

	case command.Rectangle:
		return buildRectangle(tx, start, snapTo)

	case command.Circle:
		hr, err := tx.AddRequest(domain.RequestCircle, start)
		if err != nil {
			return nil, err
		}
		if err := anchor(tx, hr.Entity(1), snapTo); err != nil {
			return nil, err
		}
		return &DragNewRadius{
			base:     base{Cmd: cmd, Desc: "click to set radius"},
			creation: creation{Created: []domain.HRequest{hr}},
			Circle:   hr.Entity(0),
			Distance: hr.Entity(3),
			Center:   start,
		}, nil

	case command.Arc:
		hr, err := tx.AddRequest(domain.RequestArc, start)
		if err != nil {
			return nil, err
		}
		if err := anchor(tx, hr.Entity(2), snapTo); err != nil {
			return nil, err
		}
		center := Tracked{H: hr.Entity(1), Origin: start, Derive: func(p domain.Vector) domain.Vector {
			return start.Mid(p)
		}}
		return &DragNewArcPoint{
			base:     base{Cmd: cmd, Desc: "click to place point"},
			creation: creation{Created: []domain.HRequest{hr}},
			PointSet: newPointSet(Tracked{H: hr.Entity(3), Origin: start}, center),
		}, nil

	case command.Cubic:
		hr, err := tx.AddRequest(domain.RequestCubic, start)
		if err != nil {
			return nil, err
		}
		if err := anchor(tx, hr.Entity(1), snapTo); err != nil {
			return nil, err
		}
		third := func(t float64) func(domain.Vector) domain.Vector {
			return func(p domain.Vector) domain.Vector { return start.Lerp(p, t) }
		}
		return &DragNewCubicPoint{
			base:     base{Cmd: cmd, Desc: "click to place next point of cubic"},
			creation: creation{Created: []domain.HRequest{hr}},
			PointSet: newPointSet(
				Tracked{H: hr.Entity(4), Origin: start},
				Tracked{H: hr.Entity(2), Origin: start, Derive: third(1.0 / 3)},
				Tracked{H: hr.Entity(3), Origin: start, Derive: third(2.0 / 3)},
			),
		}, nil

	case command.TTFText:
		hr, err := tx.AddRequest(domain.RequestTTFText, start)
		if err != nil {
			return nil, err
		}
		if err := anchor(tx, hr.Entity(1), snapTo); err != nil {
			return nil, err
		}
		return &DragNewPoint{
			base:     base{Cmd: cmd, Desc: "click to place bottom right of text"},
			creation: creation{Created: []domain.HRequest{hr}},
			PointSet: newPointSet(Tracked{H: hr.Entity(2), Origin: start}),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s does not place an entity", ErrInvariant, cmd)
}

// buildRectangle creates four lines joined corner to corner, with the top
// and bottom horizontal and the sides vertical. The corner opposite the
// click follows the mouse; the two adjacent corners are derived from it.
func buildRectangle(tx document.Tx, start domain.Vector, snapTo domain.HEntity) (Operation, error) {
	var lines [4]domain.HRequest
	for i := range lines {
		hr, err := tx.AddRequest(domain.RequestLineSegment, start)
		if err != nil {
			return nil, err
		}
		lines[i] = hr
	}
	a := func(i int) domain.HEntity { return lines[i%4].Entity(1) }
	b := func(i int) domain.HEntity { return lines[i%4].Entity(2) }

	for i := 0; i < 4; i++ {
		if _, err := tx.AddConstraint(domain.Constraint{
			Type: domain.ConstraintPointsCoincident,
			PtA:  b(i),
			PtB:  a(i + 1),
		}); err != nil {
			return nil, err
		}
		orientation := domain.ConstraintHorizontal
		if i%2 == 1 {
			orientation = domain.ConstraintVertical
		}
		if _, err := tx.AddConstraint(domain.Constraint{Type: orientation, EntityA: lines[i].Entity(0)}); err != nil {
			return nil, err
		}
	}
	if err := anchor(tx, a(0), snapTo); err != nil {
		return nil, err
	}

	follow := func(p domain.Vector) domain.Vector { return p }
	beside := func(p domain.Vector) domain.Vector { return domain.Vector{X: p.X, Y: start.Y} }
	below := func(p domain.Vector) domain.Vector { return domain.Vector{X: start.X, Y: p.Y} }

	return &DragNewPoint{
		base:     base{Cmd: command.Rectangle, Desc: "click to place other corner of rectangle"},
		creation: creation{Created: lines[:]},
		PointSet: newPointSet(
			Tracked{H: b(1), Origin: start},
			Tracked{H: a(2), Origin: start, Derive: follow},
			Tracked{H: b(0), Origin: start, Derive: beside},
			Tracked{H: a(1), Origin: start, Derive: beside},
			Tracked{H: b(2), Origin: start, Derive: below},
			Tracked{H: a(3), Origin: start, Derive: below},
		),
	}, nil
}

func snapPoint(tx document.Reader, snapTo domain.HEntity) (domain.Vector, bool) {
	if snapTo.IsNull() {
		return domain.Vector{}, false
	}
	e, ok := tx.Entity(snapTo)
	if !ok || !e.IsPoint() {
		return domain.Vector{}, false
	}
	return e.Pos, true
}

// anchor makes the first point of a new entity coincident with snapTo
func anchor(tx document.Tx, pt, snapTo domain.HEntity) error {
	if _, ok := snapPoint(tx, snapTo); !ok {
		return nil
	}
	_, err := tx.AddConstraint(domain.Constraint{
		Type: domain.ConstraintPointsCoincident,
		PtA:  pt,
		PtB:  snapTo,
	})
	return err
}
