package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centres a popup over the main content. The content
// around it is greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, title, body string, width, height int) string {
	content := body
	if title != "" {
		content = pr.styles.Title.Render(title) + "\n" + body
	}
	styledPopup := pr.styles.Popup.Render(content)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if modalW > width || modalH > height {
		// nothing to keep visible around it
		clipped := lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(styledPopup)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, clipped)
	}
	x := (width - modalW) / 2
	y := (height - modalH) / 2

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}
	for i, line := range strings.Split(styledPopup, "\n") {
		base[y+i] = splice(base[y+i], line, x, modalW)
	}
	return strings.Join(base[:height], "\n")
}

// Overlay draws a styled line over base with its first cell at (x, y)
func Overlay(base, line string, x, y int) string {
	lines := strings.Split(base, "\n")
	if y < 0 || y >= len(lines) {
		return base
	}
	lines[y] = splice(lines[y], line, max(x, 0), ansi.StringWidth(line))
	return strings.Join(lines, "\n")
}

// splice replaces the cells [x, x+w) of a styled line with overlay
func splice(line, overlay string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+w, "")
	return left + overlay + right
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, l := range lines {
		if l != "" {
			lines[i] = gray.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
