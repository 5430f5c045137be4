package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"seekterm/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	InputView      string
	InputFocused   bool
	Searching      bool
	SpinnerView    string
	StatusText     string
	StatusProgress int
	StatusVisible  bool
	Tree           domain.PresentationTree
	SelectedIndex  int
	ViewportOffset int
	Notification   *domain.Notification
	Health         *domain.EndpointHealth
	HealthErr      error
	Endpoint       string
	HelpModel      help.Model
	KeyMap         help.KeyMap
}

// ProgressWidth is the width of the progress bar in cells
const ProgressWidth = 30

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	resultRender *ResultRenderer
	toastRender  *ToastRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		resultRender: NewResultRenderer(styles),
		toastRender:  NewToastRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles { return r.styles }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}
	inner := state.Width - 2
	if inner < 20 {
		inner = 20
	}

	content.WriteString(r.renderHeader(state, inner))
	content.WriteString("\n")

	inputStyle := r.styles.Input
	if state.InputFocused {
		inputStyle = r.styles.InputFocused
	}
	inputLine := state.InputView
	if state.Searching && state.SpinnerView != "" {
		inputLine += " " + state.SpinnerView
	}
	content.WriteString(inputStyle.Width(inner - 2).Render(inputLine))
	content.WriteString("\n")

	content.WriteString(r.RenderStatus(state.StatusText, state.StatusProgress, state.StatusVisible))
	content.WriteString("\n\n")

	footer, footerH := "", 0
	if state.KeyMap != nil {
		footer = r.styles.Help.Render(state.HelpModel.View(state.KeyMap))
		footerH = lipgloss.Height(footer)
	}

	used := lipgloss.Height(content.String()) + footerH
	content.WriteString(r.RenderResults(state, inner, state.Height-used-1))

	body := content.String()
	if pad := state.Height - lipgloss.Height(body) - footerH; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	if footer != "" {
		body += "\n" + footer
	}
	return r.styles.Main.Render(body)
}

func (r *Renderer) renderHeader(state ViewState, width int) string {
	logo := r.styles.Title.Render("seekterm")

	// a visible notification takes the place of the health badge
	var right string
	switch {
	case state.Notification != nil:
		right = r.toastRender.RenderToast(state.Notification, width-lipgloss.Width(logo)-1)
	case state.HealthErr != nil:
		right = r.styles.HealthDown.Render("● offline")
	case state.Health != nil:
		label := state.Health.Site
		if label == "" {
			label = state.Endpoint
		}
		if state.Health.Mirror != "" {
			label = fmt.Sprintf("%s (%s)", label, state.Health.Mirror)
		}
		right = r.styles.HealthOK.Render("● " + label)
	default:
		right = r.styles.Dim.Render("○ " + state.Endpoint)
	}

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if gap < 1 {
		return logo
	}
	return logo + strings.Repeat(" ", gap) + right
}

// RenderStatus renders the status label with a progress bar. A hidden
// status renders as an empty line so the layout does not jump.
func (r *Renderer) RenderStatus(text string, progress int, visible bool) string {
	if !visible {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * ProgressWidth / 100
	bar := r.styles.ProgressFull.Render(strings.Repeat("█", filled)) +
		r.styles.ProgressEmpty.Render(strings.Repeat("░", ProgressWidth-filled))
	return fmt.Sprintf("%s %s %3d%%", r.styles.Status.Render(text), bar, progress)
}

// RenderResults renders the presentation tree within height lines
func (r *Renderer) RenderResults(state ViewState, width, height int) string {
	units := state.Tree.Units
	if len(units) == 0 {
		return ""
	}
	if units[0].Kind != domain.UnitRecord {
		return r.resultRender.RenderMessage(units[0], width)
	}

	visible := VisibleCards(height)
	start := state.ViewportOffset
	if start < 0 || start >= len(units) {
		start = 0
	}
	end := start + visible
	if end > len(units) {
		end = len(units)
	}

	var b strings.Builder
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%d results", len(units))))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		b.WriteString(r.resultRender.RenderCard(units[i], i == state.SelectedIndex, width))
		b.WriteString("\n\n")
	}
	if end < len(units) || start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("showing %d-%d of %d", start+1, end, len(units))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// VisibleCards returns how many cards fit in height lines
func VisibleCards(height int) int {
	n := (height - 2) / CardHeight
	if n < 1 {
		return 1
	}
	return n
}
