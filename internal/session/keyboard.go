package session

import "sketchedit/internal/command"

var escape = command.NewAccel(command.EscapeKey, false, false)

// KeyDown handles an accelerator. Escape cancels the pending operation
// before it unselects anything. Keys are ignored while the edit control
// has focus; the front end routes them there instead. It reports whether
// the key was used.
func (s *Session) KeyDown(a command.Accel) bool {
	if s.edit.Active() {
		return false
	}
	if a == escape && s.pending.Active() {
		s.pending.Cancel()
		s.press = nil
		return true
	}
	id, ok := s.registry.ResolveAccel(a)
	if !ok {
		return false
	}
	s.Dispatch(id)
	return true
}
