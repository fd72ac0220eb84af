package views

import (
	"fmt"
	"strings"

	"sketchedit/internal/command"
)

// ReferenceRenderer renders the command reference: every menu with its
// commands and their accelerators
type ReferenceRenderer struct {
	styles *Styles
}

// NewReferenceRenderer creates a new reference renderer
func NewReferenceRenderer(styles *Styles) *ReferenceRenderer {
	return &ReferenceRenderer{styles: styles}
}

// Render formats the command table. Plain mode drops all styling, for
// the pager.
func (rr *ReferenceRenderer) Render(entries []command.Entry, plain bool) string {
	title := rr.styles.Title.Render
	section := rr.styles.Section.Render
	key := rr.styles.Key.Render
	desc := rr.styles.Desc.Render
	if plain {
		id := func(s ...string) string { return strings.Join(s, " ") }
		title, section, key, desc = id, id, id, id
	}

	var b strings.Builder
	b.WriteString(title("Sketch Editor - Command Reference"))
	b.WriteString("\n")
	for _, e := range entries {
		switch {
		case e.IsSentinel():
			return b.String()
		case e.Level == 0:
			b.WriteString("\n")
			b.WriteString(section(menuLabel(e.Label)))
			b.WriteString("\n")
		case e.IsSeparator():
			continue
		default:
			label := e.Accel.Label()
			if label == "" {
				label = "-"
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", key(fmt.Sprintf("%-14s", label)), desc(menuLabel(e.Label))))
		}
	}
	return b.String()
}

// menuLabel drops the mnemonic marker from a menu label
func menuLabel(s string) string {
	return strings.ReplaceAll(s, "&", "")
}
