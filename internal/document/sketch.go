package document

import (
	"fmt"
	"sort"

	"sketchedit/internal/domain"
)

// sketch is one immutable-by-convention snapshot of the document.
// clone copies the maps; entity point slices are never modified in place.
type sketch struct {
	requests    map[domain.HRequest]domain.Request
	entities    map[domain.HEntity]domain.Entity
	constraints map[domain.HConstraint]domain.Constraint
	groups      map[domain.HGroup]domain.Group
	styles      map[domain.HStyle]domain.Style

	nextRequest    domain.HRequest
	nextConstraint domain.HConstraint
	nextGroup      domain.HGroup

	activeGroup     domain.HGroup
	activeWorkplane domain.HEntity
}

func newSketch() *sketch {
	s := &sketch{
		requests:       make(map[domain.HRequest]domain.Request),
		entities:       make(map[domain.HEntity]domain.Entity),
		constraints:    make(map[domain.HConstraint]domain.Constraint),
		groups:         make(map[domain.HGroup]domain.Group),
		styles:         make(map[domain.HStyle]domain.Style),
		nextRequest:    1,
		nextConstraint: 1,
		nextGroup:      1,
	}
	g := s.AddGroup(domain.Group{Name: "sketch-in-plane", Kind: domain.GroupDrawingWorkplane, Scale: 1, Color: "#ffffff", Visible: true})
	s.activeGroup = g
	s.styles[1] = domain.Style{H: 1, Name: "active-grp", Width: 1.5, Color: "#ffffff"}
	s.styles[2] = domain.Style{H: 2, Name: "construction", Width: 1.5, Color: "#1a8c1a"}
	s.styles[3] = domain.Style{H: 3, Name: "constraint", Width: 1, Color: "#ff00ff"}
	return s
}

func (s *sketch) clone() *sketch {
	c := *s
	c.requests = make(map[domain.HRequest]domain.Request, len(s.requests))
	for k, v := range s.requests {
		c.requests[k] = v
	}
	c.entities = make(map[domain.HEntity]domain.Entity, len(s.entities))
	for k, v := range s.entities {
		c.entities[k] = v
	}
	c.constraints = make(map[domain.HConstraint]domain.Constraint, len(s.constraints))
	for k, v := range s.constraints {
		c.constraints[k] = v
	}
	c.groups = make(map[domain.HGroup]domain.Group, len(s.groups))
	for k, v := range s.groups {
		c.groups[k] = v
	}
	c.styles = make(map[domain.HStyle]domain.Style, len(s.styles))
	for k, v := range s.styles {
		c.styles[k] = v
	}
	return &c
}

// vanished lists the handles present in s but missing from next
func (s *sketch) vanished(next *sketch) domain.HandleSet {
	gone := domain.NewHandleSet()
	for h := range s.entities {
		if _, ok := next.entities[h]; !ok {
			gone.Entities[h] = struct{}{}
		}
	}
	for h := range s.requests {
		if _, ok := next.requests[h]; !ok {
			gone.Requests[h] = struct{}{}
		}
	}
	for h := range s.constraints {
		if _, ok := next.constraints[h]; !ok {
			gone.Constraints[h] = struct{}{}
		}
	}
	for h := range s.groups {
		if _, ok := next.groups[h]; !ok {
			gone.Groups[h] = struct{}{}
		}
	}
	return gone
}

func (s *sketch) Entity(h domain.HEntity) (domain.Entity, bool) {
	e, ok := s.entities[h]
	return e, ok
}

func (s *sketch) Request(h domain.HRequest) (domain.Request, bool) {
	r, ok := s.requests[h]
	return r, ok
}

func (s *sketch) Constraint(h domain.HConstraint) (domain.Constraint, bool) {
	c, ok := s.constraints[h]
	return c, ok
}

func (s *sketch) Group(h domain.HGroup) (domain.Group, bool) {
	g, ok := s.groups[h]
	return g, ok
}

func (s *sketch) Style(h domain.HStyle) (domain.Style, bool) {
	st, ok := s.styles[h]
	return st, ok
}

func (s *sketch) Entities() []domain.Entity {
	out := make([]domain.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].H < out[j].H })
	return out
}

func (s *sketch) Constraints() []domain.Constraint {
	out := make([]domain.Constraint, 0, len(s.constraints))
	for _, c := range s.constraints {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].H < out[j].H })
	return out
}

func (s *sketch) Groups() []domain.Group {
	out := make([]domain.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].H < out[j].H })
	return out
}

func (s *sketch) Styles() []domain.Style {
	out := make([]domain.Style, 0, len(s.styles))
	for _, st := range s.styles {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].H < out[j].H })
	return out
}

func (s *sketch) ActiveGroup() domain.HGroup { return s.activeGroup }
func (s *sketch) ActiveWorkplane() domain.HEntity { return s.activeWorkplane }

// AddRequest creates a request and the entities it generates, with every
// point placed at `at`.
func (s *sketch) AddRequest(t domain.RequestType, at domain.Vector) (domain.HRequest, error) {
	hr := s.nextRequest
	r := domain.Request{H: hr, Type: t, Group: s.activeGroup, Workplane: s.activeWorkplane}

	base := domain.Entity{Request: hr, Group: s.activeGroup, Workplane: s.activeWorkplane}
	point := func(i int) domain.HEntity {
		e := base
		e.H, e.Type, e.Pos = hr.Entity(i), domain.EntityPoint, at
		s.entities[e.H] = e
		return e.H
	}
	normal := func(i int) domain.HEntity {
		e := base
		e.H, e.Type = hr.Entity(i), domain.EntityNormal
		s.entities[e.H] = e
		return e.H
	}
	primary := base
	primary.H = hr.Entity(0)

	switch t {
	case domain.RequestDatumPoint:
		point(0)
		s.requests[hr] = r
		s.nextRequest++
		return hr, nil
	case domain.RequestWorkplane:
		primary.Type = domain.EntityWorkplane
		primary.Points = []domain.HEntity{point(1)}
		primary.Normal = normal(2)
	case domain.RequestLineSegment:
		primary.Type = domain.EntityLineSegment
		primary.Points = []domain.HEntity{point(1), point(2)}
	case domain.RequestCircle:
		primary.Type = domain.EntityCircle
		primary.Points = []domain.HEntity{point(1)}
		primary.Normal = normal(2)
		d := base
		d.H, d.Type = hr.Entity(3), domain.EntityDistance
		s.entities[d.H] = d
		primary.Distance = d.H
	case domain.RequestArc:
		primary.Type = domain.EntityArc
		primary.Points = []domain.HEntity{point(1), point(2), point(3)}
		primary.Normal = normal(4)
	case domain.RequestCubic:
		primary.Type = domain.EntityCubic
		primary.Points = []domain.HEntity{point(1), point(2), point(3), point(4)}
	case domain.RequestTTFText:
		primary.Type = domain.EntityTTFText
		primary.Points = []domain.HEntity{point(1), point(2)}
		primary.Normal = normal(3)
		primary.Str = "Abc"
		r.Str = primary.Str
	default:
		return 0, fmt.Errorf("unknown request type %v", t)
	}
	s.entities[primary.H] = primary
	s.requests[hr] = r
	s.nextRequest++
	return hr, nil
}

// DeleteRequests removes requests, their entities, and every constraint
// that refers to one of those entities.
func (s *sketch) DeleteRequests(hs ...domain.HRequest) {
	doomed := make(map[domain.HRequest]bool, len(hs))
	for _, h := range hs {
		doomed[h] = true
		delete(s.requests, h)
	}
	for h, e := range s.entities {
		if doomed[e.Request] {
			delete(s.entities, h)
		}
	}
	for h, c := range s.constraints {
		if s.dangling(c) {
			delete(s.constraints, h)
		}
	}
	if _, ok := s.entities[s.activeWorkplane]; !ok {
		s.activeWorkplane = 0
	}
}

func (s *sketch) dangling(c domain.Constraint) bool {
	for _, h := range []domain.HEntity{c.PtA, c.PtB, c.EntityA, c.EntityB} {
		if h.IsNull() {
			continue
		}
		if _, ok := s.entities[h]; !ok {
			return true
		}
	}
	return false
}

func (s *sketch) SetConstruction(h domain.HRequest, construction bool) error {
	r, ok := s.requests[h]
	if !ok {
		return fmt.Errorf("request %v: %w", h, ErrNotFound)
	}
	r.Construction = construction
	s.requests[h] = r
	for eh, e := range s.entities {
		if e.Request == h {
			e.Construction = construction
			s.entities[eh] = e
		}
	}
	return nil
}

func (s *sketch) SetText(h domain.HRequest, text string) error {
	r, ok := s.requests[h]
	if !ok || r.Type != domain.RequestTTFText {
		return fmt.Errorf("text request %v: %w", h, ErrNotFound)
	}
	r.Str = text
	s.requests[h] = r
	e := s.entities[h.Entity(0)]
	e.Str = text
	s.entities[e.H] = e
	return nil
}

func (s *sketch) entityOf(h domain.HEntity, t domain.EntityType) (domain.Entity, error) {
	e, ok := s.entities[h]
	if !ok {
		return e, fmt.Errorf("entity %v: %w", h, ErrNotFound)
	}
	if e.Type != t {
		return e, fmt.Errorf("entity %v is %v, want %v: %w", h, e.Type, t, ErrWrongEntityType)
	}
	return e, nil
}

func (s *sketch) SetPoint(h domain.HEntity, p domain.Vector) error {
	e, err := s.entityOf(h, domain.EntityPoint)
	if err != nil {
		return err
	}
	e.Pos = p
	s.entities[h] = e
	return nil
}

func (s *sketch) SetDistance(h domain.HEntity, v float64) error {
	e, err := s.entityOf(h, domain.EntityDistance)
	if err != nil {
		return err
	}
	e.Value = v
	s.entities[h] = e
	return nil
}

func (s *sketch) SetAngle(h domain.HEntity, radians float64) error {
	e, err := s.entityOf(h, domain.EntityNormal)
	if err != nil {
		return err
	}
	e.Angle = radians
	s.entities[h] = e
	return nil
}

func (s *sketch) AddConstraint(c domain.Constraint) (domain.HConstraint, error) {
	if s.dangling(c) {
		return 0, fmt.Errorf("constraint %v refers to a missing entity: %w", c.Type, ErrNotFound)
	}
	c.H = s.nextConstraint
	if c.Group.IsNull() {
		c.Group = s.activeGroup
	}
	if c.Workplane.IsNull() {
		c.Workplane = s.activeWorkplane
	}
	s.constraints[c.H] = c
	s.nextConstraint++
	return c.H, nil
}

func (s *sketch) UpdateConstraint(c domain.Constraint) error {
	if _, ok := s.constraints[c.H]; !ok {
		return fmt.Errorf("constraint %v: %w", c.H, ErrNotFound)
	}
	if s.dangling(c) {
		return fmt.Errorf("constraint %v refers to a missing entity: %w", c.H, ErrNotFound)
	}
	s.constraints[c.H] = c
	return nil
}

func (s *sketch) DeleteConstraints(hs ...domain.HConstraint) {
	for _, h := range hs {
		delete(s.constraints, h)
	}
}

func (s *sketch) AddGroup(g domain.Group) domain.HGroup {
	g.H = s.nextGroup
	s.groups[g.H] = g
	s.nextGroup++
	return g.H
}

func (s *sketch) UpdateGroup(g domain.Group) error {
	if _, ok := s.groups[g.H]; !ok {
		return fmt.Errorf("group %d: %w", g.H, ErrNotFound)
	}
	s.groups[g.H] = g
	return nil
}

func (s *sketch) SetActiveGroup(h domain.HGroup) error {
	if _, ok := s.groups[h]; !ok {
		return fmt.Errorf("group %d: %w", h, ErrNotFound)
	}
	s.activeGroup = h
	return nil
}

func (s *sketch) SetActiveWorkplane(h domain.HEntity) error {
	if h.IsNull() {
		s.activeWorkplane = 0
		return nil
	}
	if _, err := s.entityOf(h, domain.EntityWorkplane); err != nil {
		return err
	}
	s.activeWorkplane = h
	return nil
}

func (s *sketch) UpdateStyle(st domain.Style) error {
	if _, ok := s.styles[st.H]; !ok {
		return fmt.Errorf("style %d: %w", st.H, ErrNotFound)
	}
	s.styles[st.H] = st
	return nil
}
