package views

import (
	"github.com/charmbracelet/lipgloss"

	"seekterm/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Status        lipgloss.Style
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	CardTitle     lipgloss.Style
	Meta          lipgloss.Style
	Seeders       lipgloss.Style
	Leechers      lipgloss.Style
	Score         lipgloss.Style
	SelectionBg   lipgloss.Style
	Empty         lipgloss.Style
	Error         lipgloss.Style
	HealthOK      lipgloss.Style
	HealthDown    lipgloss.Style
	ToastInfo     lipgloss.Style
	ToastSuccess  lipgloss.Style
	ToastError    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	toast := lipgloss.NewStyle().Bold(true).Padding(0, 2)
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 1),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		ProgressFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		ProgressEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		CardTitle:     lipgloss.NewStyle().Bold(true),
		Meta:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Seeders:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Leechers:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Score:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		HealthOK:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		HealthDown:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ToastInfo:     toast.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("51")),
		ToastSuccess:  toast.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("78")),
		ToastError:    toast.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("203")),
	}
}

// ToastStyle returns the style for a notification kind
func (s *Styles) ToastStyle(kind domain.NotificationKind) lipgloss.Style {
	switch kind {
	case domain.NotifySuccess:
		return s.ToastSuccess
	case domain.NotifyError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}

// GetResolutionColor returns the color for a resolution label
func GetResolutionColor(resolution string) string {
	switch resolution {
	case "2160P", "4K", "UHD":
		return "213" // magenta
	case "1080P":
		return "78" // green
	case "720P":
		return "33" // blue
	default:
		return "245" // gray, including the unknown placeholder
	}
}
