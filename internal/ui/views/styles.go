package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Grid           lipgloss.Style
	Curve          lipgloss.Style
	Construction   lipgloss.Style
	Point          lipgloss.Style
	Selected       lipgloss.Style
	Hovered        lipgloss.Style
	Label          lipgloss.Style
	Reference      lipgloss.Style
	Marquee        lipgloss.Style
	Toolbar        lipgloss.Style
	ToolbarHover   lipgloss.Style
	ToolbarChecked lipgloss.Style
	Tooltip        lipgloss.Style
	Status         lipgloss.Style
	StatusMode     lipgloss.Style
	StatusError    lipgloss.Style
	StatusInfo     lipgloss.Style
	EditPrompt     lipgloss.Style
	Help           lipgloss.Style
	Popup          lipgloss.Style
	Title          lipgloss.Style
	Section        lipgloss.Style
	Key            lipgloss.Style
	Desc           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Grid:           lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Curve:          lipgloss.NewStyle(),
		Construction:   lipgloss.NewStyle().Faint(true),
		Point:          lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Selected:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		Hovered:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // yellow
		Label:          lipgloss.NewStyle().Foreground(lipgloss.Color("207")), // magenta
		Reference:      lipgloss.NewStyle().Foreground(lipgloss.Color("207")).Italic(true),
		Marquee:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Toolbar:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		ToolbarHover:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		ToolbarChecked: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Background(lipgloss.Color("236")),
		Tooltip:        lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("229")),
		Status:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusMode:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true), // blue
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),           // red
		StatusInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),            // green
		EditPrompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Help:           lipgloss.NewStyle().Faint(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		Key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// paint picks the style of a canvas cell. Geometry in a plain state is
// drawn in its group or style color.
func (s *Styles) paint(k kind, color string) lipgloss.Style {
	switch k {
	case kindGrid:
		return s.Grid
	case kindCurve:
		if color != "" {
			return s.Curve.Foreground(lipgloss.Color(color))
		}
		return s.Curve
	case kindConstruction:
		if color != "" {
			return s.Construction.Foreground(lipgloss.Color(color))
		}
		return s.Construction
	case kindPoint:
		return s.Point
	case kindSelected:
		return s.Selected
	case kindHovered:
		return s.Hovered
	case kindLabel:
		return s.Label
	case kindReference:
		return s.Reference
	case kindMarquee:
		return s.Marquee
	case kindToolbar:
		return s.Toolbar
	case kindToolbarHover:
		return s.ToolbarHover
	case kindToolbarChecked:
		return s.ToolbarChecked
	case kindTooltip:
		return s.Tooltip
	}
	return lipgloss.NewStyle()
}
