package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the presentation config of the dialog, passed at construction time.
type Styles struct {
	Overlay     lipgloss.Style
	Content     lipgloss.Style
	Title       lipgloss.Style
	Label       lipgloss.Style
	LabelError  lipgloss.Style
	FieldError  lipgloss.Style
	Submit      lipgloss.Style
	Description lipgloss.Style
	Link        lipgloss.Style
	Close       lipgloss.Style
	Faded       lipgloss.Style
	Toast       lipgloss.Style
	ToastTitle  lipgloss.Style
	Trigger     lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	purple := lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#8B5CF6"}
	gray := lipgloss.AdaptiveColor{Light: "#374151", Dark: "#9CA3AF"}
	red := lipgloss.Color("#DC2626")

	return Styles{
		Overlay: lipgloss.NewStyle().Padding(1, 2),
		Content: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(purple).
			Padding(1, 2).
			Width(44),
		Title:       lipgloss.NewStyle().Bold(true),
		Label:       lipgloss.NewStyle().Foreground(gray),
		LabelError:  lipgloss.NewStyle().Foreground(red),
		FieldError:  lipgloss.NewStyle().Foreground(red).Italic(true),
		Submit:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(purple).Padding(0, 2),
		Description: lipgloss.NewStyle().Foreground(gray),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")).Underline(true),
		Close:       lipgloss.NewStyle().Foreground(gray),
		Faded:       lipgloss.NewStyle().Faint(true),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(gray).
			Padding(0, 1),
		ToastTitle: lipgloss.NewStyle().Bold(true),
		Trigger:    lipgloss.NewStyle().Foreground(purple).Bold(true),
		Help:       lipgloss.NewStyle().Foreground(gray),
	}
}
