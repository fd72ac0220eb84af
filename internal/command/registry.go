package command

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrUnknownCommand   = errors.New("command: unknown command")
	ErrNoHandler        = errors.New("command: no handler for family")
	ErrDisabled         = errors.New("command: command is disabled")
	ErrDuplicateCommand = errors.New("command: duplicate command in table")
)

// Entry is one row of the command table. An entry with an empty Label is
// a separator; an entry with Level < 0 ends the table.
type Entry struct {
	Level  int
	Label  string
	ID     ID
	Accel  Accel
	Kind   Kind
	Family Family
}

// IsSeparator reports whether the entry is a separator
func (e Entry) IsSeparator() bool { return e.Label == "" }

// IsSentinel reports whether the entry terminates the table
func (e Entry) IsSentinel() bool { return e.Level < 0 }

// Handler runs the commands of one family
type Handler interface {
	Invoke(id ID) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(id ID) error

func (f HandlerFunc) Invoke(id ID) error { return f(id) }

// Checker reports the live state of check and radio entries
type Checker interface {
	Checked(id ID) bool
}

// Enabler reports whether a command can run right now
type Enabler interface {
	Enabled(id ID) bool
}

// Registry maps commands to their table entries and family handlers.
// Menu, toolbar and keyboard all dispatch through it.
type Registry struct {
	entries  []Entry
	byID     map[ID]int
	handlers map[Family]Handler
}

// NewRegistry builds a registry from the table, stopping at the sentinel
func NewRegistry(table []Entry, handlers map[Family]Handler) (*Registry, error) {
	r := &Registry{
		byID:     make(map[ID]int),
		handlers: handlers,
	}
	for _, e := range table {
		if e.IsSentinel() {
			break
		}
		if e.ID != None {
			if _, dup := r.byID[e.ID]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, e.ID)
			}
			r.byID[e.ID] = len(r.entries)
		}
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Entries returns the table without its sentinel
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Entry returns the table entry for id
func (r *Registry) Entry(id ID) (Entry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Accel returns the accelerator bound to id
func (r *Registry) Accel(id ID) Accel {
	e, _ := r.Entry(id)
	return e.Accel
}

// Enabled reports whether id can run; commands are enabled unless their
// family handler says otherwise.
func (r *Registry) Enabled(id ID) bool {
	e, ok := r.Entry(id)
	if !ok {
		return false
	}
	if en, ok := r.handlers[e.Family].(Enabler); ok {
		return en.Enabled(id)
	}
	return true
}

// Checked reports the state of a check or radio entry
func (r *Registry) Checked(id ID) bool {
	e, ok := r.Entry(id)
	if !ok || e.Kind == KindNormal {
		return false
	}
	if c, ok := r.handlers[e.Family].(Checker); ok {
		return c.Checked(id)
	}
	return false
}

// Dispatch runs the handler bound to id
func (r *Registry) Dispatch(id ID) error {
	e, ok := r.Entry(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	h, ok := r.handlers[e.Family]
	if !ok || h == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, e.Family)
	}
	if !r.Enabled(id) {
		return fmt.Errorf("%w: %s", ErrDisabled, id)
	}
	log.Printf("Command: dispatching %s", id)
	if err := h.Invoke(id); err != nil {
		return fmt.Errorf("command %s: %w", id, err)
	}
	return nil
}

// ResolveAccel finds the first enabled command bound to the accelerator
func (r *Registry) ResolveAccel(a Accel) (ID, bool) {
	if a.IsZero() {
		return None, false
	}
	for _, e := range r.entries {
		if e.IsSeparator() || e.ID == None || e.Accel != a {
			continue
		}
		if !r.Enabled(e.ID) {
			continue
		}
		return e.ID, true
	}
	return None, false
}
