package session

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"sketchedit/internal/command"
	"sketchedit/internal/config"
	"sketchedit/internal/document"
	"sketchedit/internal/domain"
	"sketchedit/internal/editcontrol"
	"sketchedit/internal/eventbus"
	"sketchedit/internal/pending"
	"sketchedit/internal/selection"
	"sketchedit/internal/toolbar"
)

// Session is one editing session over a document. It owns the selection,
// the pending operation, the command registry, the toolbar and the inline
// edit control, and turns input events into document mutations. Every
// method runs on the caller's goroutine.
type Session struct {
	doc      document.Document
	bus      eventbus.EventBus
	cfg      *config.Config
	cam      Camera
	sel      *selection.Service
	pending  *pending.Machine
	registry *command.Registry
	toolbar  *toolbar.Toolbar
	edit     *editcontrol.Control
	metrics  toolbar.Metrics

	mouse      domain.Point2d
	press      *press
	dragOffset domain.Vector
	message    domain.MessageEvent

	unsubscribe []func()
}

// press remembers a left-button press until the pointer moves or the
// button is released
type press struct {
	at    domain.Point2d
	world domain.Vector
	hit   Hit
}

// Option configures a Session
type Option func(*Session)

// WithCamera sets the initial view
func WithCamera(c Camera) Option {
	return func(s *Session) { s.cam = c }
}

// WithToolbarMetrics sets the toolbar layout units
func WithToolbarMetrics(m toolbar.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New creates a session and subscribes it to document invalidations
func New(doc document.Document, bus eventbus.EventBus, cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		doc:     doc,
		bus:     bus,
		cfg:     cfg,
		cam:     Camera{Scale: cfg.View.Scale, Width: 80, Height: 24, Aspect: 1},
		sel:     selection.NewService(bus),
		pending: pending.NewMachine(doc, bus),
		edit:    editcontrol.New(),
		metrics: toolbar.CellMetrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pending.SetAutoConstrain(cfg.Editor.AutoConstrain)

	reg, err := command.NewRegistry(command.DefaultTable, s.handlers())
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}
	s.registry = reg
	s.toolbar = toolbar.New(reg, toolbar.DefaultItems, s.metrics)

	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(eventbus.EventHandlesInvalidated, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.HandlesInvalidatedEvent); ok {
				s.invalidate(ev.Deleted)
			}
		}),
		bus.Subscribe(eventbus.EventMessage, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.MessageEvent); ok {
				s.message = ev
			}
		}),
	)
	return s, nil
}

// Close detaches the session from the event bus
func (s *Session) Close() {
	for _, un := range s.unsubscribe {
		un()
	}
	s.unsubscribe = nil
}

func (s *Session) Document() document.Document { return s.doc }
func (s *Session) Selection() *selection.Service { return s.sel }
func (s *Session) Pending() *pending.Machine { return s.pending }
func (s *Session) Registry() *command.Registry { return s.registry }
func (s *Session) Toolbar() *toolbar.Toolbar { return s.toolbar }
func (s *Session) Edit() *editcontrol.Control { return s.edit }
func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) Camera() Camera { return s.cam }

// Message is the most recent status message
func (s *Session) Message() domain.MessageEvent { return s.message }

// SetViewport resizes the canvas, keeping the view centre
func (s *Session) SetViewport(width, height float64) {
	s.cam.Width, s.cam.Height = width, height
}

// SetAspect sets the height of a screen unit relative to its width
func (s *Session) SetAspect(aspect float64) { s.cam.Aspect = aspect }

// TooltipDelay is how long the pointer must rest on a toolbar button
func (s *Session) TooltipDelay() time.Duration {
	return time.Duration(s.cfg.Editor.TooltipDelayMS) * time.Millisecond
}

// Dispatch runs a command as if it had been picked from the menu
func (s *Session) Dispatch(id command.ID) error {
	err := s.registry.Dispatch(id)
	s.report(err)
	return err
}

func (s *Session) invalidate(deleted domain.HandleSet) {
	s.sel.PurgeStale(deleted)
	s.pending.Invalidate(deleted)
	s.edit.Invalidate(deleted)
	if s.press != nil && s.press.hit.Item().IsStale(deleted) {
		s.press = nil
	}
}

// report shows an error on the status line. An invariant violation also
// drops the pending operation and the selection.
func (s *Session) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, pending.ErrInvariant) {
		log.Printf("Session: resetting after %v", err)
		s.pending.Cancel()
		s.sel.Clear()
		s.press = nil
	}
	s.complain(err.Error())
}

func (s *Session) info(text string) {
	s.bus.Publish(eventbus.MessageEvent{Level: domain.MessageInfo, Text: text})
}

func (s *Session) complain(text string) {
	s.bus.Publish(eventbus.MessageEvent{Level: domain.MessageError, Text: text})
}

func (s *Session) configChanged(key string) {
	s.pending.SetAutoConstrain(s.cfg.Editor.AutoConstrain)
	s.bus.Publish(eventbus.ConfigChangedEvent{Key: key})
}

func (s *Session) geometry() geometry {
	return geometry{doc: s.doc, pv: s.pending.Preview()}
}

// world converts a screen position, rounding to the grid when snapping
// is on
func (s *Session) world(p domain.Point2d) domain.Vector {
	v := s.cam.ToWorld(p)
	if s.cfg.Editor.SnapToGrid {
		v = s.snapToGrid(v)
	}
	return v
}

func (s *Session) snapToGrid(v domain.Vector) domain.Vector {
	g := s.cfg.Editor.GridSpacing
	if g <= 0 {
		return v
	}
	return domain.Vector{X: math.Round(v.X/g) * g, Y: math.Round(v.Y/g) * g}
}

// selectionOrHover classifies the selection, falling back to the hovered
// item when nothing is selected
func (s *Session) selectionOrHover() selection.Classification {
	s.sel.PurgeNonexistent(s.doc)
	if s.sel.Len() == 0 && !s.sel.Hover().IsEmpty() {
		s.sel.MakeSelected(s.sel.Hover())
	}
	return s.sel.Classify(s.doc)
}
