package dialog

import (
	"sync"

	"github.com/rs/zerolog"
)

// Controller owns dialog visibility. It starts closed.
type Controller struct {
	mu     sync.RWMutex
	open   bool
	logger zerolog.Logger
}

func NewController(logger zerolog.Logger) *Controller {
	return &Controller{
		logger: logger.With().Str("component", "dialog").Logger(),
	}
}

// Open shows the dialog. It reports whether the visibility changed.
func (c *Controller) Open() bool {
	return c.SetOpen(true)
}

// Close hides the dialog. It reports whether the visibility changed.
func (c *Controller) Close() bool {
	return c.SetOpen(false)
}

// SetOpen is the single entry for open-change events from the trigger,
// the close affordance and overlay dismissal.
func (c *Controller) SetOpen(open bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open == open {
		return false
	}
	c.open = open
	c.logger.Debug().Bool("open", open).Msg("Dialog visibility changed")
	return true
}

func (c *Controller) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}
