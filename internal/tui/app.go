package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/andrasnagy-data/authdialog/internal/components/authclient"
	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
)

type (
	// SessionSource backs the session line that refreshes on every reseed.
	SessionSource interface {
		Me(ctx context.Context) (*authclient.Session, error)
	}

	Options struct {
		Auth          dialog.Authenticator
		Sessions      SessionSource
		Rules         dialog.Rules
		Styles        Styles
		ToastDuration time.Duration
		Logger        zerolog.Logger
	}

	// App is the parent scope of the login dialog: it renders the trigger,
	// holds the reseed token and refreshes the views that depend on it.
	App struct {
		ctx      context.Context
		login    *LoginDialog
		toast    *Toast
		sessions SessionSource
		styles   Styles
		logger   zerolog.Logger

		seed      float64
		seenSeed  float64
		session   *authclient.Session
		signupAsk bool
		width     int
	}
)

func NewApp(o Options) *App {
	if o.ToastDuration <= 0 {
		o.ToastDuration = 5 * time.Second
	}
	if o.Styles.Content.GetWidth() == 0 {
		o.Styles = DefaultStyles()
	}

	a := &App{
		ctx:      context.Background(),
		sessions: o.Sessions,
		styles:   o.Styles,
		logger:   o.Logger.With().Str("component", "tui").Logger(),
	}

	ctrl := dialog.NewController(o.Logger)
	notifier := dialog.NewNotifier()
	coord := dialog.NewCoordinator(dialog.Params{
		Auth:     o.Auth,
		Dialog:   ctrl,
		Notifier: notifier,
		Reseed:   func(token float64) { a.seed = token },
		Rules:    o.Rules,
		Logger:   o.Logger,
	})

	a.login = NewLoginDialog(a.ctx, ctrl, coord, o.Styles, o.Logger)
	a.toast = NewToast(notifier, o.ToastDuration, o.Styles)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.refreshSession()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.login.IsOpen() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "l", "enter":
				a.signupAsk = false
				return a, a.login.Open()
			}
			return a, nil
		}

	case toastExpiredMsg:
		a.toast.Update(msg)
		return a, nil

	case sessionLoadedMsg:
		a.session = msg.session
		if msg.err != nil && !errors.Is(msg.err, authclient.ErrNotLoggedIn) {
			a.logger.Warn().Err(msg.err).Msg("Failed to refresh session")
		}
		return a, nil

	case SignupRequestedMsg:
		a.logger.Info().Msg("Signup requested from login dialog")
		a.signupAsk = true
		return a, nil
	}

	cmds = append(cmds, a.login.Update(msg))
	cmds = append(cmds, a.toast.Sync())

	if a.seed != a.seenSeed {
		a.seenSeed = a.seed
		cmds = append(cmds, a.refreshSession())
	}

	return a, tea.Batch(cmds...)
}

func (a *App) refreshSession() tea.Cmd {
	if a.sessions == nil {
		return nil
	}
	ctx, sessions := a.ctx, a.sessions
	return func() tea.Msg {
		s, err := sessions.Me(ctx)
		return sessionLoadedMsg{session: s, err: err}
	}
}

func (a *App) View() string {
	s := a.styles

	var b strings.Builder
	if a.session != nil {
		b.WriteString("Logged in as " + s.Trigger.Render(a.session.Username))
	} else {
		b.WriteString(s.Trigger.Render("[ Login ]"))
	}
	b.WriteString("\n")
	if a.signupAsk {
		b.WriteString(s.Help.Render("Sign up is not available from this client."))
		b.WriteString("\n")
	}

	if dialogView := a.login.View(); dialogView != "" {
		b.WriteString(dialogView)
		b.WriteString("\n")
	} else {
		b.WriteString(s.Help.Render("l: login  q: quit"))
		b.WriteString("\n")
	}

	if toastView := a.toast.View(); toastView != "" {
		b.WriteString(lipgloss.PlaceHorizontal(max(a.width, lipgloss.Width(toastView)), lipgloss.Right, toastView))
		b.WriteString("\n")
	}
	return b.String()
}

// Run drives the program from the fx lifecycle and shuts the app down when the program exits.
func Run(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *App, logger zerolog.Logger) {
	program := tea.NewProgram(app, tea.WithAltScreen())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if _, err := program.Run(); err != nil {
					logger.Error().Err(err).Msg("Dialog program failed")
					shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			program.Quit()
			return nil
		},
	})
}
