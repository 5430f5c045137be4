package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"seekterm/internal/domain"
)

// CardHeight is the number of lines a record card occupies, spacing included
const CardHeight = 3

// ResultRenderer handles rendering of presentation units
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// RenderCard renders a record unit as a two-line card
func (r *ResultRenderer) RenderCard(u domain.PresentationUnit, isSelected bool, width int) string {
	if width < 20 {
		width = 20
	}

	cursor := "  "
	if isSelected {
		cursor = "▸ "
	}
	prefix := fmt.Sprintf("%s%d. ", cursor, u.Index+1)
	title := ansi.Truncate(u.Title, width-lipgloss.Width(prefix)-1, "…")

	titleStyle := r.styles.CardTitle
	if isSelected {
		titleStyle = titleStyle.Inherit(r.styles.SelectionBg)
	}
	first := titleStyle.Render(prefix + title)

	resColor := GetResolutionColor(u.Resolution)
	peers := r.styles.Seeders.Render("↑"+u.Seeders) + " " + r.styles.Leechers.Render("↓"+u.Leechers)
	parts := []string{
		r.styles.Meta.Render(u.Size),
		lipgloss.NewStyle().Foreground(lipgloss.Color(resColor)).Render(u.Resolution),
		peers,
		r.styles.Meta.Render(u.Source),
		r.styles.Meta.Render(u.Origin),
		r.styles.Score.Render("★ " + u.Score),
	}
	if !u.HasAction() || u.Identifier == "" {
		parts = append(parts, r.styles.Dim.Render("no link"))
	}
	sep := r.styles.Dim.Render(" · ")
	second := strings.Repeat(" ", lipgloss.Width(prefix)) + strings.Join(parts, sep)
	second = ansi.Truncate(second, width, "…")

	return first + "\n" + second
}

// RenderMessage renders an empty or error unit
func (r *ResultRenderer) RenderMessage(u domain.PresentationUnit, width int) string {
	style := r.styles.Empty
	icon := "∅ "
	if u.Kind == domain.UnitError {
		style = r.styles.Error
		icon = "✗ "
	}
	return style.Width(width).Render(icon + u.Message)
}
