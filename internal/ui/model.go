package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sketchedit/internal/editcontrol"
	"sketchedit/internal/eventbus"
	"sketchedit/internal/session"
	"sketchedit/internal/ui/views"
)

// doubleClickInterval is the longest gap between two presses on the same
// cell that still counts as a double-click
const doubleClickInterval = 400 * time.Millisecond

// cellAspect is the width of a terminal cell relative to its height
const cellAspect = 0.5

// Model represents the UI state
type Model struct {
	sess *session.Session
	bus  eventbus.EventBus

	width  int
	height int
	keys   keyMap
	help   help.Model

	styles    *views.Styles
	renderer  *views.Renderer
	status    *views.StatusRenderer
	reference *views.ReferenceRenderer
	popup     *views.PopupRenderer
	pager     *PagerOps

	inPagerMode   bool // tracks if we're currently in pager mode
	showKeys      bool
	showReference bool
	quitting      bool

	// set by bus handlers during Update, turned into commands after it
	wantQuit      bool
	wantReference bool

	leftDown  bool
	lastPress time.Time
	lastCell  [2]int
	now       func() time.Time

	// Program reference for terminal management
	program *tea.Program

	unsubscribe []func()
}

// NewModel creates a new UI model over an editing session
func NewModel(sess *session.Session, bus eventbus.EventBus) *Model {
	styles := views.NewStyles()
	m := &Model{
		sess:      sess,
		bus:       bus,
		keys:      newKeyMap(),
		help:      help.New(),
		styles:    styles,
		renderer:  views.NewRenderer(styles),
		status:    views.NewStatusRenderer(styles),
		reference: views.NewReferenceRenderer(styles),
		popup:     views.NewPopupRenderer(styles),
		pager:     NewPagerOps(nil),
		now:       time.Now,
	}
	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventQuitRequested, func(eventbus.DomainEvent) {
			m.wantQuit = true
		}),
		bus.Subscribe(eventbus.EventCommandReferenceRequested, func(eventbus.DomainEvent) {
			m.wantReference = true
		}),
	)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Close detaches the model from the event bus
func (m *Model) Close() {
	for _, un := range m.unsubscribe {
		un()
	}
	m.unsubscribe = nil
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sess.SetViewport(float64(msg.Width), float64(m.canvasHeight()))
		m.sess.SetAspect(cellAspect)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tooltipMsg:
		m.sess.TimerCallback(msg.gen)

	case EventMsg:
		m.bus.Publish(msg.Event)

	case referencePagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to popup
			log.Printf("Reference pager failed: %v, falling back to popup", msg.err)
			m.showReference = true
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case quitMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		if m.sess.Edit().Active() {
			cmd, _ = m.sess.Edit().Update(msg)
		}
	}
	return m, tea.Batch(cmd, m.drainRequests())
}

// drainRequests turns what bus handlers asked for into commands
func (m *Model) drainRequests() tea.Cmd {
	if m.wantQuit {
		m.wantQuit = false
		return func() tea.Msg { return quitMsg{} }
	}
	if m.wantReference {
		m.wantReference = false
		if m.program == nil {
			m.showReference = true
			return nil
		}
		return m.fetchReferencePager(m.reference.Render(m.sess.Registry().Entries(), true))
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.wantQuit = true
		return nil
	}
	if m.showReference || m.showKeys {
		switch msg.String() {
		case "esc", "q", "?", "f1":
			m.showReference = false
			m.showKeys = false
		}
		return nil
	}

	edit := m.sess.Edit()
	if edit.Active() {
		cmd, outcome := edit.Update(msg)
		if outcome == editcontrol.Submitted && edit.Err() != nil {
			log.Printf("UI: edit failed: %v", edit.Err())
		}
		return cmd
	}

	if key.Matches(msg, m.keys.Help) {
		m.showKeys = true
		return nil
	}
	if a, ok := accelFromKey(msg); ok {
		m.sess.KeyDown(a)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := float64(msg.X), float64(msg.Y)
	if msg.Y >= m.canvasHeight() {
		if msg.Action == tea.MouseActionMotion && !m.leftDown {
			m.sess.MouseLeave()
		}
		return nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.sess.MouseMoved(x, y, m.leftDown, msg.Shift, msg.Ctrl) {
			return m.tooltipTimer()
		}

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.leftDown = true
			double := m.isDoubleClick(msg.X, msg.Y)
			m.sess.MouseLeftDown(x, y, msg.Shift, msg.Ctrl)
			if double {
				m.sess.MouseLeftDoubleClick(x, y)
			}
		case tea.MouseButtonRight:
			m.sess.MouseRightDown(x, y)
		case tea.MouseButtonWheelUp:
			m.sess.MouseScroll(x, y, 1)
		case tea.MouseButtonWheelDown:
			m.sess.MouseScroll(x, y, -1)
		}

	case tea.MouseActionRelease:
		// X10 mouse reporting does not say which button was released
		if m.leftDown {
			m.leftDown = false
			m.sess.MouseLeftUp(x, y)
		}
	}
	return nil
}

// isDoubleClick records a press and reports whether it completes a
// double-click
func (m *Model) isDoubleClick(x, y int) bool {
	now := m.now()
	at := [2]int{x, y}
	double := at == m.lastCell && !m.lastPress.IsZero() && now.Sub(m.lastPress) <= doubleClickInterval
	if double {
		m.lastPress = time.Time{}
	} else {
		m.lastPress = now
	}
	m.lastCell = at
	return double
}

// tooltipTimer starts the tooltip delay for the current hover
func (m *Model) tooltipTimer() tea.Cmd {
	gen := m.sess.Toolbar().Generation()
	return tea.Tick(m.sess.TooltipDelay(), func(time.Time) tea.Msg {
		return tooltipMsg{gen: gen}
	})
}

// fetchReferencePager returns a command that shows the command reference
// using ov pager
func (m *Model) fetchReferencePager(content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return referencePagerMsg{err: err}
	}
}

// canvasHeight is the number of rows left for drawing
func (m *Model) canvasHeight() int {
	return max(m.height-views.StatusRows-1, 0)
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	f := m.sess.Frame()
	ch := m.canvasHeight()
	canvas := m.renderer.Render(f, m.width, ch)
	if f.Edit != nil {
		canvas = views.Overlay(canvas, m.styles.EditPrompt.Render(f.Edit.View), int(f.Edit.At.X), int(f.Edit.At.Y))
	}
	switch {
	case m.showReference:
		body := m.reference.Render(m.sess.Registry().Entries(), false)
		canvas = m.popup.RenderPopupOverlay(canvas, "", body, m.width, ch)
	case m.showKeys:
		canvas = m.popup.RenderPopupOverlay(canvas, "Keys", m.help.FullHelpView(m.keys.FullHelp()), m.width, ch)
	}

	return canvas + "\n" + m.status.Render(f, m.width) + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}
