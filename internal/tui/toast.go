package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
)

// Toast shows the current notification and owns its dismiss timing.
// It reads the notifier but never writes to it.
type Toast struct {
	notifier *dialog.Notifier
	duration time.Duration
	styles   Styles

	pulse   uint64
	visible bool
}

func NewToast(notifier *dialog.Notifier, duration time.Duration, styles Styles) *Toast {
	return &Toast{notifier: notifier, duration: duration, styles: styles}
}

// Sync picks up a new notification pulse and (re)starts the dismiss timer.
func (t *Toast) Sync() tea.Cmd {
	n := t.notifier.Current()
	if !n.Visible || n.Pulse == t.pulse {
		return nil
	}
	t.pulse = n.Pulse
	t.visible = true

	pulse := n.Pulse
	return tea.Tick(t.duration, func(time.Time) tea.Msg { return toastExpiredMsg{pulse: pulse} })
}

func (t *Toast) Update(msg tea.Msg) {
	if msg, ok := msg.(toastExpiredMsg); ok && msg.pulse == t.pulse {
		t.visible = false
	}
}

func (t *Toast) Visible() bool {
	return t.visible
}

func (t *Toast) View() string {
	if !t.visible {
		return ""
	}
	n := t.notifier.Current()
	return t.styles.Toast.Render(t.styles.ToastTitle.Render(n.Title) + "\n" + n.Description)
}
