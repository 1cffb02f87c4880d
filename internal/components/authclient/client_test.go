package authclient

import (
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrasnagy-data/authdialog/internal/components/auth"
	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(&config.Config{AuthURL: url, LoginTimeout: 5 * time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

// newAuthServer serves the real auth routes for a single user "alice" / "s3cret".
func newAuthServer(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}
	cfg := &config.Config{
		SecretKey:    hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
		Username:     "alice",
		PasswordHash: string(hash),
		UserId:       "6f1c2a64-2c7e-4c1b-9d0e-0a4b8f0d3c11",
		UserVerified: verified,
	}
	repo, err := auth.NewRepo(cfg, nil)
	if err != nil {
		t.Fatalf("NewRepo error: %v", err)
	}
	srvc, err := auth.NewAuthService(cfg, repo)
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}

	r := chi.NewRouter()
	r.Mount("/auth", auth.NewRouter(srvc))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, u := range []string{"ftp://example.com", "://nope"} {
		if _, err := NewClient(&config.Config{AuthURL: u}, zerolog.Nop()); err == nil {
			t.Fatalf("NewClient(%q) succeeded", u)
		}
	}
}

func TestLoginAgainstAuthService(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
		creds    dialog.Credentials
		want     dialog.Response
	}{
		{"success", true, dialog.Credentials{Username: "alice", Password: "s3cret"}, dialog.Response{}},
		{"error", true, dialog.Credentials{Username: "alice", Password: "wrong"}, dialog.Response{Error: "Invalid username or password"}},
		{"message", false, dialog.Credentials{Username: "alice", Password: "s3cret"}, dialog.Response{Message: "Please verify your email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAuthServer(t, tt.verified)
			c := newClient(t, srv.URL)

			got, err := c.Login(context.Background(), tt.creds)
			if err != nil {
				t.Fatalf("Login error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("response = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSessionAfterLogin(t *testing.T) {
	srv := newAuthServer(t, true)
	c := newClient(t, srv.URL)

	if _, err := c.Me(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Me before login err = %v, want ErrNotLoggedIn", err)
	}

	if _, err := c.Login(context.Background(), dialog.Credentials{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	s, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if s.Username != "alice" {
		t.Fatalf("session = %+v", s)
	}
}

func TestLoginNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Login(context.Background(), dialog.Credentials{Username: "a", Password: "b"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("err = %v, want StatusError 502", err)
	}
}

func TestLoginEmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Login(context.Background(), dialog.Credentials{Username: "a", Password: "b"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want StatusError", err)
	}
}

func TestCoordinatorOverHTTP(t *testing.T) {
	srv := newAuthServer(t, true)
	c := newClient(t, srv.URL)

	ctrl := dialog.NewController(zerolog.Nop())
	notifier := dialog.NewNotifier()
	var tokens []float64
	coord := dialog.NewCoordinator(dialog.Params{
		Auth:     c,
		Dialog:   ctrl,
		Notifier: notifier,
		Reseed:   func(token float64) { tokens = append(tokens, token) },
		Logger:   zerolog.Nop(),
	})
	ctrl.Open()

	if _, err := coord.Submit(context.Background(), dialog.FormValues{Username: "alice", Password: "wrong"}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if n := notifier.Current(); n.Title != dialog.TitleError || !ctrl.IsOpen() {
		t.Fatalf("after bad password: %+v open=%v", n, ctrl.IsOpen())
	}

	if _, err := coord.Submit(context.Background(), dialog.FormValues{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	n := notifier.Current()
	if n.Description != "Welcome back alice!" || ctrl.IsOpen() || len(tokens) != 1 {
		t.Fatalf("after success: %+v open=%v tokens=%v", n, ctrl.IsOpen(), tokens)
	}
}

func TestCoordinatorServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctrl := dialog.NewController(zerolog.Nop())
	notifier := dialog.NewNotifier()
	coord := dialog.NewCoordinator(dialog.Params{
		Auth:     newClient(t, url),
		Dialog:   ctrl,
		Notifier: notifier,
		Logger:   zerolog.Nop(),
	})
	ctrl.Open()

	outcome, err := coord.Submit(context.Background(), dialog.FormValues{Username: "alice", Password: "x"})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if outcome.Kind != dialog.OutcomeError || notifier.Current().Title != dialog.TitleError {
		t.Fatalf("outcome = %+v, notification = %+v", outcome, notifier.Current())
	}
	if !ctrl.IsOpen() {
		t.Fatal("dialog closed after transport failure")
	}
}
