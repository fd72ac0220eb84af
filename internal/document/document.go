package document

import (
	"errors"

	"sketchedit/internal/domain"
)

var (
	ErrNotFound        = errors.New("document: handle not found")
	ErrCheckpointGone  = errors.New("document: checkpoint no longer reachable")
	ErrNothingToUndo   = errors.New("document: nothing to undo")
	ErrNothingToRedo   = errors.New("document: nothing to redo")
	ErrWrongEntityType = errors.New("document: wrong entity type")
)

// Checkpoint identifies a document state that Rollback can return to
type Checkpoint struct {
	Revision uint64
}

// Reader provides read access to the sketch.
// Lookups answer (value, false) for handles that no longer exist.
type Reader interface {
	Entity(h domain.HEntity) (domain.Entity, bool)
	Request(h domain.HRequest) (domain.Request, bool)
	Constraint(h domain.HConstraint) (domain.Constraint, bool)
	Group(h domain.HGroup) (domain.Group, bool)
	Style(h domain.HStyle) (domain.Style, bool)

	// Entities, Constraints, Groups and Styles are ordered by handle
	Entities() []domain.Entity
	Constraints() []domain.Constraint
	Groups() []domain.Group
	Styles() []domain.Style

	ActiveGroup() domain.HGroup
	ActiveWorkplane() domain.HEntity
}

// Tx mutates a working copy of the sketch inside Update or Amend
type Tx interface {
	Reader

	AddRequest(t domain.RequestType, at domain.Vector) (domain.HRequest, error)
	DeleteRequests(hs ...domain.HRequest)
	SetConstruction(h domain.HRequest, construction bool) error
	SetText(h domain.HRequest, text string) error

	SetPoint(h domain.HEntity, p domain.Vector) error
	SetDistance(h domain.HEntity, v float64) error
	SetAngle(h domain.HEntity, radians float64) error

	AddConstraint(c domain.Constraint) (domain.HConstraint, error)
	UpdateConstraint(c domain.Constraint) error
	DeleteConstraints(hs ...domain.HConstraint)

	AddGroup(g domain.Group) domain.HGroup
	UpdateGroup(g domain.Group) error
	SetActiveGroup(h domain.HGroup) error
	SetActiveWorkplane(h domain.HEntity) error
	UpdateStyle(s domain.Style) error
}

// Document is the sketch plus its undo history
type Document interface {
	Reader

	// Update applies fn atomically as one undo step. If fn returns an
	// error nothing changes. fn must not call back into the document.
	Update(description string, fn func(tx Tx) error) error

	// Amend applies fn atomically but folds the change into the most
	// recent undo step.
	Amend(fn func(tx Tx) error) error

	// Checkpoint records the current state for a later Rollback
	Checkpoint() Checkpoint

	// Rollback restores the state recorded by cp and discards the undo
	// step taken from it. It fails with ErrCheckpointGone once another
	// undo step was pushed or popped since cp.
	Rollback(cp Checkpoint) error

	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool

	// Revision increases by one with every mutation
	Revision() uint64
}
