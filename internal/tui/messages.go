package tui

import (
	"time"

	"github.com/andrasnagy-data/authdialog/internal/components/authclient"
	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
)

// loginResultMsg carries the classified outcome of one login attempt.
type loginResultMsg struct {
	username string
	outcome  dialog.Outcome
}

// transitionTickMsg advances the dialog's enter/exit effect.
type transitionTickMsg struct{ at time.Time }

// toastExpiredMsg hides the toast shown for the given pulse.
type toastExpiredMsg struct{ pulse uint64 }

// sessionLoadedMsg is sent when the session view has been refreshed.
type sessionLoadedMsg struct {
	session *authclient.Session
	err     error
}

// SignupRequestedMsg is emitted by the nested signup trigger inside the dialog.
type SignupRequestedMsg struct{}
