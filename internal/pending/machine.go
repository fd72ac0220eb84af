package pending

import (
	"errors"
	"fmt"
	"log"

	"sketchedit/internal/command"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
)

var (
	// ErrInvariant reports a pending operation found in an impossible state
	ErrInvariant = errors.New("pending: unexpected operation state")
	// ErrNoOperation is returned when there is nothing to commit
	ErrNoOperation = errors.New("pending: no operation to commit")
)

// Result describes a committed operation
type Result struct {
	Mode    Mode
	Command command.ID
	// Marquee is set when a marquee drag was committed
	Marquee *Rect
}

// Machine owns the single pending operation. At most one operation is
// active; starting another cancels the current one first.
type Machine struct {
	doc           document.Document
	bus           eventbus.EventBus
	op            Operation
	autoConstrain bool
}

// NewMachine creates an idle machine editing doc
func NewMachine(doc document.Document, bus eventbus.EventBus) *Machine {
	return &Machine{doc: doc, bus: bus, autoConstrain: true}
}

// SetAutoConstrain controls whether new lines get their suggested
// horizontal or vertical constraint on commit
func (m *Machine) SetAutoConstrain(on bool) { m.autoConstrain = on }

// Mode is the mode of the active operation, None when idle
func (m *Machine) Mode() Mode {
	if m.op == nil {
		return None
	}
	return m.op.Mode()
}

// Current returns the active operation, or nil
func (m *Machine) Current() Operation { return m.op }

// Active reports whether an operation is in progress
func (m *Machine) Active() bool { return m.op != nil }

// Moved reports whether the active operation has followed the mouse
func (m *Machine) Moved() bool { return m.op != nil && m.op.Moved() }

// Description is the hint shown while the operation is active
func (m *Machine) Description() string {
	if m.op == nil {
		return ""
	}
	return m.op.Description()
}

// Arm cancels any active operation and waits for a placement click
func (m *Machine) Arm(cmd command.ID, description string) {
	m.cancel()
	m.set(&ArmedCommand{base: base{Cmd: cmd, Desc: description}})
}

// Begin cancels any active operation and starts op
func (m *Machine) Begin(op Operation) error {
	m.cancel()
	if op == nil {
		m.announce()
		return fmt.Errorf("%w: begin with nil operation", ErrInvariant)
	}
	if op.Mode() == Command || creationOf(op) != nil {
		m.announce()
		return fmt.Errorf("%w: %s cannot be started directly", ErrInvariant, op.Mode())
	}
	m.set(op)
	return nil
}

// Move feeds a pointer position to the active drag. It reports whether the
// preview changed.
func (m *Machine) Move(p domain.Vector, screen domain.Point2d) bool {
	if m.op == nil || !m.op.Mode().IsDragging() {
		return false
	}
	m.op.move(p, screen)
	return true
}

// Preview returns the working values of the active operation
func (m *Machine) Preview() Preview {
	pv := newPreview()
	if m.op != nil {
		m.op.preview(&pv)
	}
	return pv
}

// Commit ends the active drag with exactly one document mutation. Drags of
// existing geometry become a new undo step; placing a new entity amends
// the step that created it, so creation and placement undo together.
func (m *Machine) Commit(snapTo domain.HEntity) (Result, error) {
	op := m.op
	if op == nil || !op.Mode().IsDragging() {
		return Result{}, ErrNoOperation
	}
	m.op = nil
	res := Result{Mode: op.Mode(), Command: op.Command()}

	if mq, ok := op.(*DragMarquee); ok {
		r := mq.Rect()
		res.Marquee = &r
		m.announce()
		return res, nil
	}

	fn := func(tx document.Tx) error { return op.commit(tx, snapTo, m.autoConstrain) }
	var err error
	c := creationOf(op)
	if c != nil && m.doc.Revision() == c.placed {
		err = m.doc.Amend(fn)
	} else {
		err = m.doc.Update(op.Description(), fn)
	}
	if err != nil {
		if c != nil {
			m.discard(c)
		}
		log.Printf("Pending: commit of %s failed: %v", res.Mode, err)
		m.announce()
		return res, fmt.Errorf("commit %s: %w", res.Mode, err)
	}
	log.Printf("Pending: committed %s", res.Mode)
	m.announce()
	return res, nil
}

// Cancel abandons the active operation and undoes anything it created
func (m *Machine) Cancel() {
	if m.op == nil {
		return
	}
	m.cancel()
	m.announce()
}

// Invalidate cancels the active operation when it refers to a deleted
// handle. It reports whether the operation was cancelled.
func (m *Machine) Invalidate(deleted domain.HandleSet) bool {
	if m.op == nil || !m.op.refersTo(deleted) {
		return false
	}
	log.Printf("Pending: %s refers to deleted handles", m.op.Mode())
	m.Cancel()
	return true
}

func (m *Machine) cancel() {
	op := m.op
	if op == nil {
		return
	}
	m.op = nil
	if c := creationOf(op); c != nil {
		m.discard(c)
	}
	log.Printf("Pending: cancelled %s", op.Mode())
}

// discard removes the requests a creation made. A checkpoint rollback is
// tried first; when history moved on, surviving requests are deleted.
func (m *Machine) discard(c *creation) {
	if err := m.doc.Rollback(c.checkpoint); err == nil {
		return
	}
	var live []domain.HRequest
	for _, h := range c.Created {
		if _, ok := m.doc.Request(h); ok {
			live = append(live, h)
		}
	}
	if len(live) == 0 {
		return
	}
	err := m.doc.Update("discard unfinished entities", func(tx document.Tx) error {
		tx.DeleteRequests(live...)
		return nil
	})
	if err != nil {
		log.Printf("Pending: failed to discard unfinished entities: %v", err)
	}
}

func (m *Machine) set(op Operation) {
	m.op = op
	log.Printf("Pending: started %s", op.Mode())
	m.announce()
}

func (m *Machine) announce() {
	if m.bus == nil {
		return
	}
	m.bus.Publish(eventbus.PendingChangedEvent{Mode: m.Mode().String(), Description: m.Description()})
}
