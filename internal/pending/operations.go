package pending

import (
	"fmt"
	"math"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
)

// Operation is one variant of the pending operation. Each variant carries
// exactly the working data its mode needs.
type Operation interface {
	Mode() Mode
	Command() command.ID
	Description() string
	Moved() bool

	move(p domain.Vector, screen domain.Point2d)
	refersTo(deleted domain.HandleSet) bool
	preview(pv *Preview)
	commit(tx document.Tx, snapTo domain.HEntity, autoConstrain bool) error
}

type base struct {
	Cmd   command.ID
	Desc  string
	dirty bool
}

func (b *base) Command() command.ID { return b.Cmd }
func (b *base) Description() string { return b.Desc }
func (b *base) Moved() bool { return b.dirty }
func (b *base) touch() { b.dirty = true }
func (b *base) preview(*Preview) {}
func (b *base) refersTo(domain.HandleSet) bool { return false }

// creation records the requests made when a new entity was placed, and
// the checkpoint taken just before.
type creation struct {
	Created    []domain.HRequest
	checkpoint document.Checkpoint
	placed     uint64
}

func (c *creation) created() *creation { return c }

func (c *creation) refersTo(deleted domain.HandleSet) bool {
	for _, h := range c.Created {
		if deleted.HasRequest(h) {
			return true
		}
	}
	return false
}

type creator interface {
	created() *creation
}

func creationOf(op Operation) *creation {
	if c, ok := op.(creator); ok {
		return c.created()
	}
	return nil
}

// ArmedCommand waits for the click that places a new entity
type ArmedCommand struct {
	base
}

func (o *ArmedCommand) Mode() Mode { return Command }
func (o *ArmedCommand) move(domain.Vector, domain.Point2d) {}
func (o *ArmedCommand) commit(document.Tx, domain.HEntity, bool) error { return ErrNoOperation }

// DragPoints moves existing points
type DragPoints struct {
	base
	PointSet
}

// NewDragPoints starts a drag of primary together with the other selected
// points and every point coincident with any of them.
func NewDragPoints(doc document.Reader, primary domain.HEntity, others []domain.HEntity) (*DragPoints, error) {
	origin, err := pointAt(doc, primary)
	if err != nil {
		return nil, err
	}
	seen := map[domain.HEntity]bool{primary: true}
	var aux []Tracked
	add := func(h domain.HEntity) {
		if seen[h] {
			return
		}
		e, ok := doc.Entity(h)
		if !ok || !e.IsPoint() {
			return
		}
		seen[h] = true
		aux = append(aux, Tracked{H: h, Origin: e.Pos})
	}
	for _, h := range others {
		add(h)
	}
	seed := make([]domain.HEntity, 0, len(seen))
	seed = append(seed, primary)
	for _, a := range aux {
		seed = append(seed, a.H)
	}
	for _, h := range coincidentWith(doc, seed) {
		add(h)
	}
	return &DragPoints{
		base:     base{Desc: "dragging points"},
		PointSet: newPointSet(Tracked{H: primary, Origin: origin}, aux...),
	}, nil
}

func (o *DragPoints) Mode() Mode { return DraggingPoints }

func (o *DragPoints) move(p domain.Vector, _ domain.Point2d) {
	o.PointSet.move(p)
	o.touch()
}

func (o *DragPoints) refersTo(deleted domain.HandleSet) bool { return o.PointSet.refersTo(deleted) }
func (o *DragPoints) preview(pv *Preview) { o.PointSet.preview(pv) }

func (o *DragPoints) commit(tx document.Tx, snapTo domain.HEntity, _ bool) error {
	if err := o.snap(tx, snapTo); err != nil {
		return err
	}
	return o.write(tx)
}

// DragNewPoint places the free point of a rectangle or text
type DragNewPoint struct {
	base
	creation
	PointSet
}

func (o *DragNewPoint) Mode() Mode { return DraggingNewPoint }

func (o *DragNewPoint) move(p domain.Vector, _ domain.Point2d) {
	o.PointSet.move(p)
	o.touch()
}

func (o *DragNewPoint) refersTo(deleted domain.HandleSet) bool {
	return o.creation.refersTo(deleted) || o.PointSet.refersTo(deleted)
}
func (o *DragNewPoint) preview(pv *Preview) { o.PointSet.preview(pv) }

func (o *DragNewPoint) commit(tx document.Tx, snapTo domain.HEntity, _ bool) error {
	if err := o.snap(tx, snapTo); err != nil {
		return err
	}
	return o.write(tx)
}

// DragNewLinePoint places the far end of a new line segment
type DragNewLinePoint struct {
	base
	creation
	PointSet
	Line       domain.HEntity
	Start      domain.Vector
	Suggestion domain.ConstraintType
}

func (o *DragNewLinePoint) Mode() Mode { return DraggingNewLinePoint }

func (o *DragNewLinePoint) move(p domain.Vector, _ domain.Point2d) {
	o.PointSet.move(p)
	o.Suggestion = SuggestOrientation(o.Start, p)
	o.touch()
}

func (o *DragNewLinePoint) refersTo(deleted domain.HandleSet) bool {
	return o.creation.refersTo(deleted) || o.PointSet.refersTo(deleted)
}

func (o *DragNewLinePoint) preview(pv *Preview) {
	o.PointSet.preview(pv)
	pv.Suggestion = o.Suggestion
}

func (o *DragNewLinePoint) commit(tx document.Tx, snapTo domain.HEntity, autoConstrain bool) error {
	if err := o.snap(tx, snapTo); err != nil {
		return err
	}
	if err := o.write(tx); err != nil {
		return err
	}
	end, _ := o.Position(o.Primary.H)
	suggestion := SuggestOrientation(o.Start, end)
	if !autoConstrain || suggestion == 0 {
		return nil
	}
	_, err := tx.AddConstraint(domain.Constraint{Type: suggestion, EntityA: o.Line})
	return err
}

// SuggestOrientation returns horizontal or vertical when the segment from
// a to b lies within a slope ratio of 50 of an axis, and zero otherwise.
func SuggestOrientation(a, b domain.Vector) domain.ConstraintType {
	d := b.Minus(a)
	dx, dy := math.Abs(d.X), math.Abs(d.Y)
	if dx < domain.LengthEps && dy < domain.LengthEps {
		return 0
	}
	switch {
	case dy < domain.LengthEps || dx/dy > 50:
		return domain.ConstraintHorizontal
	case dx < domain.LengthEps || dy/dx > 50:
		return domain.ConstraintVertical
	}
	return 0
}

// DragNewCubicPoint places the last point of a new cubic
type DragNewCubicPoint struct {
	base
	creation
	PointSet
}

func (o *DragNewCubicPoint) Mode() Mode { return DraggingNewCubicPoint }

func (o *DragNewCubicPoint) move(p domain.Vector, _ domain.Point2d) {
	o.PointSet.move(p)
	o.touch()
}

func (o *DragNewCubicPoint) refersTo(deleted domain.HandleSet) bool {
	return o.creation.refersTo(deleted) || o.PointSet.refersTo(deleted)
}
func (o *DragNewCubicPoint) preview(pv *Preview) { o.PointSet.preview(pv) }

func (o *DragNewCubicPoint) commit(tx document.Tx, snapTo domain.HEntity, _ bool) error {
	if err := o.snap(tx, snapTo); err != nil {
		return err
	}
	return o.write(tx)
}

// DragNewArcPoint places the end point of a new arc; the center follows
type DragNewArcPoint struct {
	base
	creation
	PointSet
}

func (o *DragNewArcPoint) Mode() Mode { return DraggingNewArcPoint }

func (o *DragNewArcPoint) move(p domain.Vector, _ domain.Point2d) {
	o.PointSet.move(p)
	o.touch()
}

func (o *DragNewArcPoint) refersTo(deleted domain.HandleSet) bool {
	return o.creation.refersTo(deleted) || o.PointSet.refersTo(deleted)
}
func (o *DragNewArcPoint) preview(pv *Preview) { o.PointSet.preview(pv) }

func (o *DragNewArcPoint) commit(tx document.Tx, snapTo domain.HEntity, _ bool) error {
	if err := o.snap(tx, snapTo); err != nil {
		return err
	}
	return o.write(tx)
}

// DragNewRadius sizes a freshly placed circle
type DragNewRadius struct {
	base
	creation
	Circle   domain.HEntity
	Distance domain.HEntity
	Center   domain.Vector
	Radius   float64
}

func (o *DragNewRadius) Mode() Mode { return DraggingNewRadius }

func (o *DragNewRadius) move(p domain.Vector, _ domain.Point2d) {
	o.Radius = p.Dist(o.Center)
	o.touch()
}

func (o *DragNewRadius) refersTo(deleted domain.HandleSet) bool {
	return o.creation.refersTo(deleted) || deleted.HasEntity(o.Distance)
}

func (o *DragNewRadius) preview(pv *Preview) { pv.Distances[o.Distance] = o.Radius }

func (o *DragNewRadius) commit(tx document.Tx, _ domain.HEntity, _ bool) error {
	return tx.SetDistance(o.Distance, o.Radius)
}

// DragConstraint moves a constraint's label
type DragConstraint struct {
	base
	Constraint domain.HConstraint
	Origin     domain.Vector
	Grab       domain.Vector
	Label      domain.Vector
}

// NewDragConstraint starts a label drag grabbed at grab
func NewDragConstraint(doc document.Reader, h domain.HConstraint, grab domain.Vector) (*DragConstraint, error) {
	c, ok := doc.Constraint(h)
	if !ok {
		return nil, fmt.Errorf("constraint %d: %w", h, document.ErrNotFound)
	}
	if !c.HasLabel() {
		return nil, fmt.Errorf("%w: constraint %d has no label", ErrInvariant, h)
	}
	return &DragConstraint{
		base:       base{Desc: "dragging constraint label"},
		Constraint: h,
		Origin:     c.Label,
		Grab:       grab,
		Label:      c.Label,
	}, nil
}

func (o *DragConstraint) Mode() Mode { return DraggingConstraint }

func (o *DragConstraint) move(p domain.Vector, _ domain.Point2d) {
	o.Label = o.Origin.Plus(p.Minus(o.Grab))
	o.touch()
}

func (o *DragConstraint) refersTo(deleted domain.HandleSet) bool {
	return deleted.HasConstraint(o.Constraint)
}

func (o *DragConstraint) preview(pv *Preview) { pv.Labels[o.Constraint] = o.Label }

func (o *DragConstraint) commit(tx document.Tx, _ domain.HEntity, _ bool) error {
	c, ok := tx.Constraint(o.Constraint)
	if !ok {
		return fmt.Errorf("constraint %d: %w", o.Constraint, document.ErrNotFound)
	}
	c.Label = o.Label
	return tx.UpdateConstraint(c)
}

// DragRadius resizes an existing circle
type DragRadius struct {
	base
	Circle   domain.HEntity
	Distance domain.HEntity
	Center   domain.Vector
	Origin   float64
	Radius   float64
}

// NewDragRadius starts resizing circle
func NewDragRadius(doc document.Reader, circle domain.HEntity) (*DragRadius, error) {
	e, ok := doc.Entity(circle)
	if !ok {
		return nil, fmt.Errorf("entity %v: %w", circle, document.ErrNotFound)
	}
	if e.Type != domain.EntityCircle {
		return nil, fmt.Errorf("entity %v: %w", circle, document.ErrWrongEntityType)
	}
	center, err := pointAt(doc, e.Points[0])
	if err != nil {
		return nil, err
	}
	d, ok := doc.Entity(e.Distance)
	if !ok {
		return nil, fmt.Errorf("entity %v: %w", e.Distance, document.ErrNotFound)
	}
	return &DragRadius{
		base:     base{Desc: "dragging radius"},
		Circle:   circle,
		Distance: e.Distance,
		Center:   center,
		Origin:   d.Value,
		Radius:   d.Value,
	}, nil
}

func (o *DragRadius) Mode() Mode { return DraggingRadius }

func (o *DragRadius) move(p domain.Vector, _ domain.Point2d) {
	o.Radius = p.Dist(o.Center)
	o.touch()
}

func (o *DragRadius) refersTo(deleted domain.HandleSet) bool {
	return deleted.HasEntity(o.Circle) || deleted.HasEntity(o.Distance)
}

func (o *DragRadius) preview(pv *Preview) { pv.Distances[o.Distance] = o.Radius }

func (o *DragRadius) commit(tx document.Tx, _ domain.HEntity, _ bool) error {
	return tx.SetDistance(o.Distance, o.Radius)
}

// DragNormal rotates a normal about a center point
type DragNormal struct {
	base
	Normal domain.HEntity
	Center domain.Vector
	Grab   domain.Vector
	Origin float64
	Angle  float64
}

// NewDragNormal starts rotating normal about center, grabbed at grab
func NewDragNormal(doc document.Reader, normal domain.HEntity, center, grab domain.Vector) (*DragNormal, error) {
	e, ok := doc.Entity(normal)
	if !ok {
		return nil, fmt.Errorf("entity %v: %w", normal, document.ErrNotFound)
	}
	if !e.IsNormal() {
		return nil, fmt.Errorf("entity %v: %w", normal, document.ErrWrongEntityType)
	}
	return &DragNormal{
		base:   base{Desc: "dragging normal"},
		Normal: normal,
		Center: center,
		Grab:   grab,
		Origin: e.Angle,
		Angle:  e.Angle,
	}, nil
}

func (o *DragNormal) Mode() Mode { return DraggingNormal }

func (o *DragNormal) move(p domain.Vector, _ domain.Point2d) {
	from := o.Grab.Minus(o.Center)
	to := p.Minus(o.Center)
	if from.Mag() < domain.LengthEps || to.Mag() < domain.LengthEps {
		return
	}
	o.Angle = o.Origin + to.Angle() - from.Angle()
	o.touch()
}

func (o *DragNormal) refersTo(deleted domain.HandleSet) bool { return deleted.HasEntity(o.Normal) }
func (o *DragNormal) preview(pv *Preview) { pv.Angles[o.Normal] = o.Angle }

func (o *DragNormal) commit(tx document.Tx, _ domain.HEntity, _ bool) error {
	return tx.SetAngle(o.Normal, o.Angle)
}

// DragMarquee sweeps a selection rectangle in screen space
type DragMarquee struct {
	base
	Start domain.Point2d
	End   domain.Point2d
}

func NewDragMarquee(start domain.Point2d) *DragMarquee {
	return &DragMarquee{base: base{Desc: "selecting"}, Start: start, End: start}
}

func (o *DragMarquee) Mode() Mode { return DraggingMarquee }

func (o *DragMarquee) move(_ domain.Vector, screen domain.Point2d) {
	o.End = screen
	o.touch()
}

// Rect returns the swept rectangle
func (o *DragMarquee) Rect() Rect { return NewRect(o.Start, o.End) }

func (o *DragMarquee) preview(pv *Preview) {
	r := o.Rect()
	pv.Marquee = &r
}

func (o *DragMarquee) commit(document.Tx, domain.HEntity, bool) error { return nil }

func pointAt(doc document.Reader, h domain.HEntity) (domain.Vector, error) {
	e, ok := doc.Entity(h)
	if !ok {
		return domain.Vector{}, fmt.Errorf("entity %v: %w", h, document.ErrNotFound)
	}
	if !e.IsPoint() {
		return domain.Vector{}, fmt.Errorf("entity %v: %w", h, document.ErrWrongEntityType)
	}
	return e.Pos, nil
}
