package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

const frameInterval = time.Second / 60

// LoginDialog renders the login modal on top of dialog.Controller and dialog.Coordinator.
type LoginDialog struct {
	ctx        context.Context
	ctrl       *dialog.Controller
	coord      *dialog.Coordinator
	transition *dialog.Transition
	inputs     [fieldCount]textinput.Model
	focus      int
	spinner    spinner.Model
	styles     Styles
	now        func() time.Time
	logger     zerolog.Logger
}

func NewLoginDialog(ctx context.Context, ctrl *dialog.Controller, coord *dialog.Coordinator, styles Styles, logger zerolog.Logger) *LoginDialog {
	username := textinput.New()
	username.Placeholder = "Username"
	username.Prompt = ""
	username.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &LoginDialog{
		ctx:        ctx,
		ctrl:       ctrl,
		coord:      coord,
		transition: dialog.NewTransition(),
		inputs:     [fieldCount]textinput.Model{username, password},
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:     styles,
		now:        time.Now,
		logger:     logger.With().Str("component", "tui.login").Logger(),
	}
}

// Open is the trigger: it shows a fresh form.
func (d *LoginDialog) Open() tea.Cmd {
	if !d.ctrl.Open() {
		return nil
	}
	for i := range d.inputs {
		d.inputs[i].Reset()
	}
	d.coord.ClearFieldError(dialog.FieldUsername)
	d.coord.ClearFieldError(dialog.FieldPassword)

	return tea.Batch(d.setFocus(fieldUsername), d.syncTransition())
}

// Close is the close affordance and overlay dismissal.
func (d *LoginDialog) Close() tea.Cmd {
	d.ctrl.Close()
	return d.syncTransition()
}

func (d *LoginDialog) IsOpen() bool {
	return d.ctrl.IsOpen()
}

func (d *LoginDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		d.coord.Finish(msg.username, msg.outcome)
		return d.syncTransition()

	case transitionTickMsg:
		d.transition.Progress(msg.at)
		if d.transition.Animating() {
			return transitionTick()
		}
		return nil

	case spinner.TickMsg:
		if !d.coord.InFlight() {
			return nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !d.ctrl.IsOpen() {
			return nil
		}
		return d.handleKey(msg)
	}

	if !d.ctrl.IsOpen() {
		return nil
	}
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	return cmd
}

func (d *LoginDialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return d.Close()
	case "enter":
		return d.submit()
	case "tab", "down":
		return d.setFocus((d.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return d.setFocus((d.focus + fieldCount - 1) % fieldCount)
	case "ctrl+n":
		return func() tea.Msg { return SignupRequestedMsg{} }
	}

	before := d.inputs[d.focus].Value()
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)

	// Re-validate on change once a field shows an error.
	if field := fieldName(d.focus); d.coord.FieldErrors()[field] != "" && d.inputs[d.focus].Value() != before && d.inputs[d.focus].Value() != "" {
		d.coord.ClearFieldError(field)
	}
	return cmd
}

func (d *LoginDialog) submit() tea.Cmd {
	values := dialog.FormValues{
		Username: d.inputs[fieldUsername].Value(),
		Password: d.inputs[fieldPassword].Value(),
	}

	creds, err := d.coord.Begin(values)
	var verr *dialog.ValidationError
	switch {
	case errors.As(err, &verr):
		if _, ok := verr.Fields[dialog.FieldUsername]; ok {
			return d.setFocus(fieldUsername)
		}
		return d.setFocus(fieldPassword)
	case errors.Is(err, dialog.ErrSubmissionInFlight):
		d.logger.Debug().Msg("Submit ignored, login already in flight")
		return nil
	case err != nil:
		d.logger.Error().Err(err).Msg("Submit failed")
		return nil
	}

	ctx, coord := d.ctx, d.coord
	attempt := func() tea.Msg {
		return loginResultMsg{username: creds.Username, outcome: coord.Attempt(ctx, creds)}
	}
	return tea.Batch(attempt, d.spinner.Tick)
}

func (d *LoginDialog) setFocus(i int) tea.Cmd {
	d.focus = i
	var cmd tea.Cmd
	for j := range d.inputs {
		if j == i {
			cmd = d.inputs[j].Focus()
		} else {
			d.inputs[j].Blur()
		}
	}
	return cmd
}

// syncTransition lets the enter/exit effect follow the dialog state.
func (d *LoginDialog) syncTransition() tea.Cmd {
	if d.transition.Sync(d.ctrl.IsOpen(), d.now()) {
		return transitionTick()
	}
	return nil
}

func transitionTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return transitionTickMsg{at: t} })
}

func fieldName(i int) string {
	if i == fieldPassword {
		return dialog.FieldPassword
	}
	return dialog.FieldUsername
}

// View renders the overlay and content while the dialog is shown or fading out.
func (d *LoginDialog) View() string {
	phase, opacity := d.transition.Progress(d.now())
	if phase == dialog.PhaseHidden {
		return ""
	}

	s := d.styles
	errs := d.coord.FieldErrors()

	var b strings.Builder
	b.WriteString(s.Title.Render("Login"))
	b.WriteString(strings.Repeat(" ", 28))
	b.WriteString(s.Close.Render("esc ✕"))
	b.WriteString("\n\n")

	for i, label := range [fieldCount]string{"Username", "Password"} {
		msg := errs[fieldName(i)]
		if msg != "" {
			b.WriteString(s.LabelError.Render(label))
		} else {
			b.WriteString(s.Label.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(d.inputs[i].View())
		b.WriteString("\n")
		if msg != "" {
			b.WriteString(s.FieldError.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if d.coord.InFlight() {
		b.WriteString(d.spinner.View() + " Logging in...")
	} else {
		b.WriteString(s.Submit.Render("Login"))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Description.Render("Don't have an account? "))
	b.WriteString(s.Link.Render("Sign up!"))
	b.WriteString(s.Description.Render(" (ctrl+n)"))

	box := s.Overlay.Render(s.Content.Render(b.String()))
	if opacity < 1 {
		return s.Faded.Render(box)
	}
	return box
}
