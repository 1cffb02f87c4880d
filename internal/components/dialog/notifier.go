package dialog

import "sync"

// Notifier holds the notification state. It only ever sets Visible to true;
// hiding is the notification component's business.
type Notifier struct {
	mu    sync.RWMutex
	state Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Show replaces the content and pulses visibility.
func (n *Notifier) Show(title, description string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state = Notification{
		Title:       title,
		Description: description,
		Visible:     true,
		Pulse:       n.state.Pulse + 1,
	}
	return n.state
}

func (n *Notifier) Current() Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}
