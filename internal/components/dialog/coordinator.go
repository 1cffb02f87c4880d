package dialog

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrSubmissionInFlight = errors.New("a login attempt is already in flight")
)

type (
	// Authenticator is the external login operation.
	Authenticator interface {
		Login(ctx context.Context, creds Credentials) (Response, error)
	}

	// AuthenticatorFunc adapts a function to Authenticator.
	AuthenticatorFunc func(ctx context.Context, creds Credentials) (Response, error)

	// Params wires a Coordinator. Rules defaults to DefaultRules when zero.
	Params struct {
		Auth     Authenticator
		Dialog   *Controller
		Notifier *Notifier
		Seeder   *Seeder
		Reseed   ReseedFunc
		Rules    Rules
		Logger   zerolog.Logger
	}

	// Coordinator validates and submits credentials, classifies the result and
	// drives the dialog and notification state.
	Coordinator struct {
		auth     Authenticator
		dialog   *Controller
		notifier *Notifier
		seeder   *Seeder
		reseed   ReseedFunc
		rules    Rules
		logger   zerolog.Logger

		mu        sync.Mutex
		inFlight  bool
		fieldErrs FieldErrors
	}
)

func (f AuthenticatorFunc) Login(ctx context.Context, creds Credentials) (Response, error) {
	return f(ctx, creds)
}

func NewCoordinator(p Params) *Coordinator {
	rules := p.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	seeder := p.Seeder
	if seeder == nil {
		seeder = NewSeeder()
	}
	return &Coordinator{
		auth:     p.Auth,
		dialog:   p.Dialog,
		notifier: p.Notifier,
		seeder:   seeder,
		reseed:   p.Reseed,
		rules:    rules,
		logger:   p.Logger.With().Str("component", "submission").Logger(),
	}
}

// Validate checks the form and keeps the field errors for the view.
func (c *Coordinator) Validate(v FormValues) FieldErrors {
	errs := c.rules.Validate(v)

	c.mu.Lock()
	c.fieldErrs = errs
	c.mu.Unlock()

	return errs
}

// FieldErrors returns the errors of the last validation.
func (c *Coordinator) FieldErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs
}

// ClearFieldError drops the error of one field, e.g. once the user edits it.
func (c *Coordinator) ClearFieldError(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fieldErrs, field)
}

func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Begin validates the form and claims the in-flight slot. On success the
// caller must run Attempt and hand its result to Finish.
func (c *Coordinator) Begin(v FormValues) (Credentials, error) {
	if errs := c.Validate(v); errs != nil {
		c.logger.Debug().Interface("fields", errs).Msg("Login form invalid")
		return Credentials{}, &ValidationError{Fields: errs}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return Credentials{}, ErrSubmissionInFlight
	}
	c.inFlight = true

	return Credentials{Username: v.Username, Password: v.Password}, nil
}

// Attempt calls the login operation and classifies the result. It touches no
// state, so it may run off the UI goroutine. A failing call becomes an error outcome.
func (c *Coordinator) Attempt(ctx context.Context, creds Credentials) Outcome {
	c.logger.Debug().Str("username", creds.Username).Msg("Login attempt")

	resp, err := c.auth.Login(ctx, creds)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", creds.Username).Msg("Login operation failed")
		return Outcome{Kind: OutcomeError, Text: err.Error()}
	}
	return Classify(resp)
}

// Finish applies the outcome and releases the in-flight slot.
func (c *Coordinator) Finish(username string, outcome Outcome) Notification {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	return c.HandleOutcome(username, outcome)
}

// HandleOutcome updates dialog, notification and reseed token for one outcome.
func (c *Coordinator) HandleOutcome(username string, outcome Outcome) Notification {
	logger := c.logger.With().Str("username", username).Str("outcome", outcome.Kind.String()).Logger()

	if outcome.Kind == OutcomeSuccess {
		c.dialog.Close()
	}

	title, desc := outcome.Notification(username)
	n := c.notifier.Show(title, desc)

	if outcome.Kind == OutcomeSuccess && c.reseed != nil {
		c.reseed(c.seeder.Next())
	}

	logger.Debug().Uint64("pulse", n.Pulse).Msg("Login outcome handled")
	return n
}

// Submit runs the whole flow synchronously: validate, login, apply the outcome.
// It returns a *ValidationError without calling the login operation when a
// required field is empty, and ErrSubmissionInFlight when another attempt is pending.
func (c *Coordinator) Submit(ctx context.Context, v FormValues) (Outcome, error) {
	creds, err := c.Begin(v)
	if err != nil {
		return Outcome{}, err
	}

	outcome := c.Attempt(ctx, creds)
	c.Finish(creds.Username, outcome)
	return outcome, nil
}
