package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"seekterm/internal/domain"
	"seekterm/internal/render"
)

// HelpRenderer builds the pager documents
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(14),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

func (r *HelpRenderer) line(b *strings.Builder, key, desc string) {
	b.WriteString("  " + r.key.Render(key) + r.desc.Render(desc) + "\n")
}

// RenderHelpContent generates the key reference shown by '?'
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("seekterm help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Query"))
	help.WriteString("\n")
	r.line(&help, "enter", "Run the search")
	r.line(&help, "esc, tab", "Leave the query field")
	r.line(&help, "/, tab", "Edit the query")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Results"))
	help.WriteString("\n")
	r.line(&help, "↑/↓, j/k", "Move selection")
	r.line(&help, "g/G", "First/last result")
	r.line(&help, "PgUp/PgDn", "Page up/down")
	r.line(&help, "c, y, enter", "Copy the result's link")
	r.line(&help, "o", "Show result details")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Other"))
	help.WriteString("\n")
	r.line(&help, "?", "Show this help")
	r.line(&help, "q, ctrl+c", "Quit")

	return help.String()
}

// RenderDetails generates the details document for one result
func (r *HelpRenderer) RenderDetails(u domain.PresentationUnit) string {
	var b strings.Builder
	b.WriteString(r.title.Render(u.Title))
	b.WriteString("\n")

	fields := []struct{ k, v string }{
		{"Rank", fmt.Sprintf("#%d", u.Index+1)},
		{"Size", u.Size},
		{"Resolution", u.Resolution},
		{"Seeders", u.Seeders},
		{"Leechers", u.Leechers},
		{"Source", u.Source},
		{"Site", u.Origin},
		{"Score", u.Score},
	}
	for _, f := range fields {
		r.line(&b, f.k, f.v)
	}

	b.WriteString(r.section.Render("Link"))
	b.WriteString("\n")
	if u.Identifier == "" {
		b.WriteString("  " + r.desc.Render("none"))
	} else {
		b.WriteString("  " + render.Sanitize(u.Identifier))
	}
	b.WriteString("\n")
	return b.String()
}
