package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sketchedit/internal/domain"
	"sketchedit/internal/pending"
	"sketchedit/internal/session"
)

// StatusRows is how many terminal rows the status area takes
const StatusRows = 2

// StatusRenderer renders the two lines under the canvas: the pending
// operation or edit control, then the latest message
type StatusRenderer struct {
	styles *Styles
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(styles *Styles) *StatusRenderer {
	return &StatusRenderer{styles: styles}
}

// Render returns the status area for a frame, clipped to width
func (sr *StatusRenderer) Render(f session.Frame, width int) string {
	first := sr.modeLine(f)
	if f.Edit != nil {
		first = sr.styles.EditPrompt.Render("edit: ") + f.Edit.View
		if f.Edit.Err != nil {
			first += "  " + sr.styles.StatusError.Render(f.Edit.Err.Error())
		}
	}

	var second string
	if f.Message.Text != "" {
		style := sr.styles.StatusInfo
		if f.Message.Level == domain.MessageError {
			style = sr.styles.StatusError
		}
		second = style.Render(f.Message.Text)
	}

	clip := lipgloss.NewStyle().MaxWidth(width)
	return clip.Render(first) + "\n" + clip.Render(second)
}

func (sr *StatusRenderer) modeLine(f session.Frame) string {
	if f.Mode == pending.None {
		return sr.styles.Status.Render("ready  ? for keys, F1 for the command reference")
	}
	parts := []string{sr.styles.StatusMode.Render(strings.ToUpper(f.Mode.String()))}
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	if f.Suggestion != "" {
		parts = append(parts, sr.styles.Status.Render(fmt.Sprintf("(would add %s)", f.Suggestion)))
	}
	return strings.Join(parts, "  ")
}
