package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/andrasnagy-data/authdialog/internal/components/dialog"
	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 16

var (
	ErrNotLoggedIn = errors.New("not logged in")
)

type (
	// Client talks to the auth service. Session cookies set by a successful
	// login are kept in its cookie jar.
	Client struct {
		baseURL *url.URL
		http    *http.Client
		logger  zerolog.Logger
	}

	// Session is the user behind the current session cookie.
	Session struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}

	// StatusError is returned when the service answers without a usable login body.
	StatusError struct {
		StatusCode int
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("auth service responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func NewClient(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.AuthURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse AUTH_URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("AUTH_URL must be http or https, got %q", cfg.AuthURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Jar = jar
	httpClient.Timeout = cfg.LoginTimeout

	return &Client{
		baseURL: base,
		http:    httpClient,
		logger:  logger.With().Str("component", "authclient").Logger(),
	}, nil
}

// Login posts the credentials and decodes the {message?, error?} body, whatever the status code.
// Transport failures and responses without a JSON body are returned as errors.
func (c *Client) Login(ctx context.Context, creds dialog.Credentials) (dialog.Response, error) {
	var out dialog.Response

	body, err := json.Marshal(creds)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/login"), bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Int("status", resp.StatusCode).Str("username", creds.Username).Msg("Login response")

	if !isJSON(resp) {
		return out, &StatusError{StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return out, fmt.Errorf("decode login response: %w", err)
	}

	// A 4xx/5xx without a message or error must not read as success.
	if resp.StatusCode >= http.StatusBadRequest && out.Message == "" && out.Error == "" {
		return out, &StatusError{StatusCode: resp.StatusCode}
	}
	return out, nil
}

// Me returns the session for the cookie held by the client.
func (c *Client) Me(ctx context.Context) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/auth/me"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrNotLoggedIn
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	s := new(Session)
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

func isJSON(resp *http.Response) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
