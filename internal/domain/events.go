package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventHandlesInvalidated        EventType = "HandlesInvalidated"
	EventDocumentChanged           EventType = "DocumentChanged"
	EventMessage                   EventType = "Message"
	EventSelectionChanged          EventType = "SelectionChanged"
	EventSelectionCleared          EventType = "SelectionCleared"
	EventPendingChanged            EventType = "PendingChanged"
	EventConfigChanged             EventType = "ConfigChanged"
	EventCommandReferenceRequested EventType = "CommandReferenceRequested"
	EventQuitRequested             EventType = "QuitRequested"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// HandlesInvalidatedEvent is emitted after a mutation removed handles from the document
type HandlesInvalidatedEvent struct {
	Deleted HandleSet
}

func (e HandlesInvalidatedEvent) Type() EventType { return EventHandlesInvalidated }

// DocumentChangedEvent is emitted after every successful document mutation
type DocumentChangedEvent struct {
	Revision    uint64
	Description string
}

func (e DocumentChangedEvent) Type() EventType { return EventDocumentChanged }

// MessageLevel classifies a user-visible message
type MessageLevel int

const (
	MessageInfo MessageLevel = iota
	MessageError
)

// MessageEvent carries a message for the status line
type MessageEvent struct {
	Level MessageLevel
	Text  string
}

func (e MessageEvent) Type() EventType { return EventMessage }

// SelectionChangedEvent is emitted when items are added to or removed from the selection
type SelectionChangedEvent struct {
	Added   int
	Removed int
	Total   int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the selection is emptied
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// PendingChangedEvent is emitted when the pending operation starts or ends
type PendingChangedEvent struct {
	Mode        string
	Description string
}

func (e PendingChangedEvent) Type() EventType { return EventPendingChanged }

// ConfigChangedEvent is emitted when settings need to be saved
type ConfigChangedEvent struct {
	Key string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// CommandReferenceRequestedEvent asks the front end to show the command reference
type CommandReferenceRequestedEvent struct{}

func (e CommandReferenceRequestedEvent) Type() EventType { return EventCommandReferenceRequested }

// QuitRequestedEvent asks the front end to exit
type QuitRequestedEvent struct{}

func (e QuitRequestedEvent) Type() EventType { return EventQuitRequested }
