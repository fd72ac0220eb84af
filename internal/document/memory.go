package document

import (
	"fmt"
	"log"
	"sync"

	"sketchedit/internal/domain"
	"sketchedit/internal/eventbus"
)

// DefaultMaxHistory bounds the number of undo steps kept
const DefaultMaxHistory = 100

// step is one undo (or redo) snapshot
type step struct {
	description string
	state       *sketch
	// revision of the document when state was current
	revision uint64
}

// Memory is an in-memory implementation of Document
type Memory struct {
	mu         sync.RWMutex
	bus        eventbus.EventBus
	current    *sketch
	revision   uint64
	undo       []step
	redo       []step
	maxHistory int
}

// NewMemory creates an empty sketch with one active group.
// bus may be nil.
func NewMemory(bus eventbus.EventBus) *Memory {
	return &Memory{
		bus:        bus,
		current:    newSketch(),
		maxHistory: DefaultMaxHistory,
	}
}

func (m *Memory) Entity(h domain.HEntity) (domain.Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Entity(h)
}

func (m *Memory) Request(h domain.HRequest) (domain.Request, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Request(h)
}

func (m *Memory) Constraint(h domain.HConstraint) (domain.Constraint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Constraint(h)
}

func (m *Memory) Group(h domain.HGroup) (domain.Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Group(h)
}

func (m *Memory) Style(h domain.HStyle) (domain.Style, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Style(h)
}

func (m *Memory) Entities() []domain.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Entities()
}

func (m *Memory) Constraints() []domain.Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Constraints()
}

func (m *Memory) Groups() []domain.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Groups()
}

func (m *Memory) Styles() []domain.Style {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Styles()
}

func (m *Memory) ActiveGroup() domain.HGroup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.ActiveGroup()
}

func (m *Memory) ActiveWorkplane() domain.HEntity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.ActiveWorkplane()
}

func (m *Memory) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

func (m *Memory) CanUndo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.undo) > 0
}

func (m *Memory) CanRedo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.redo) > 0
}

// Update applies fn as one undo step
func (m *Memory) Update(description string, fn func(tx Tx) error) error {
	m.mu.Lock()
	work := m.current.clone()
	if err := fn(work); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to %s: %w", description, err)
	}
	m.undo = append(m.undo, step{description: description, state: m.current, revision: m.revision})
	if len(m.undo) > m.maxHistory {
		m.undo = m.undo[1:]
	}
	m.redo = m.redo[:0]
	prev := m.swap(work)
	rev := m.revision
	m.mu.Unlock()

	m.announce(prev, work, rev, description)
	return nil
}

// Amend applies fn without pushing an undo step
func (m *Memory) Amend(fn func(tx Tx) error) error {
	m.mu.Lock()
	work := m.current.clone()
	if err := fn(work); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to amend: %w", err)
	}
	description := "amend"
	if n := len(m.undo); n > 0 {
		description = m.undo[n-1].description
	}
	prev := m.swap(work)
	rev := m.revision
	m.mu.Unlock()

	m.announce(prev, work, rev, description)
	return nil
}

func (m *Memory) Checkpoint() Checkpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Checkpoint{Revision: m.revision}
}

// Rollback restores the state recorded by cp
func (m *Memory) Rollback(cp Checkpoint) error {
	m.mu.Lock()
	if cp.Revision == m.revision {
		m.mu.Unlock()
		return nil
	}
	n := len(m.undo)
	if n == 0 || m.undo[n-1].revision != cp.Revision {
		m.mu.Unlock()
		return fmt.Errorf("rollback to revision %d: %w", cp.Revision, ErrCheckpointGone)
	}
	target := m.undo[n-1]
	m.undo = m.undo[:n-1]
	prev := m.swap(target.state)
	rev := m.revision
	m.mu.Unlock()

	log.Printf("Document: rolled back %q", target.description)
	m.announce(prev, target.state, rev, "rollback "+target.description)
	return nil
}

// Undo restores the state before the most recent undo step
func (m *Memory) Undo() error {
	m.mu.Lock()
	n := len(m.undo)
	if n == 0 {
		m.mu.Unlock()
		return ErrNothingToUndo
	}
	target := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.redo = append(m.redo, step{description: target.description, state: m.current, revision: m.revision})
	prev := m.swap(target.state)
	rev := m.revision
	m.mu.Unlock()

	m.announce(prev, target.state, rev, "undo "+target.description)
	return nil
}

// Redo reapplies the most recently undone step
func (m *Memory) Redo() error {
	m.mu.Lock()
	n := len(m.redo)
	if n == 0 {
		m.mu.Unlock()
		return ErrNothingToRedo
	}
	target := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, step{description: target.description, state: m.current, revision: m.revision})
	prev := m.swap(target.state)
	rev := m.revision
	m.mu.Unlock()

	m.announce(prev, target.state, rev, "redo "+target.description)
	return nil
}

// swap installs next as the current state; the caller holds the lock
func (m *Memory) swap(next *sketch) *sketch {
	prev := m.current
	m.current = next
	m.revision++
	return prev
}

// announce publishes invalidated handles first so subscribers purge
// stale references before reacting to the change itself.
func (m *Memory) announce(prev, next *sketch, rev uint64, description string) {
	if m.bus == nil {
		return
	}
	if gone := prev.vanished(next); !gone.Empty() {
		m.bus.Publish(eventbus.HandlesInvalidatedEvent{Deleted: gone})
	}
	m.bus.Publish(eventbus.DocumentChangedEvent{Revision: rev, Description: description})
}
