package views

import (
	"github.com/charmbracelet/x/ansi"

	"seekterm/internal/domain"
)

// ToastRenderer renders the notification banner
type ToastRenderer struct {
	styles *Styles
}

// NewToastRenderer creates a new toast renderer
func NewToastRenderer(styles *Styles) *ToastRenderer {
	return &ToastRenderer{styles: styles}
}

// RenderToast renders n within maxWidth cells. Entering and leaving
// notifications are drawn faint.
func (tr *ToastRenderer) RenderToast(n *domain.Notification, maxWidth int) string {
	if n == nil {
		return ""
	}
	style := tr.styles.ToastStyle(n.Kind)
	if n.Stage != domain.StageShown {
		style = style.Faint(true)
	}
	// padding takes four cells
	limit := maxWidth - 4
	if limit < 8 {
		limit = 8
	}
	return style.Render(ansi.Truncate(n.Message, limit, "…"))
}
