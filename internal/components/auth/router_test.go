package auth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const testUserID = "6f1c2a64-2c7e-4c1b-9d0e-0a4b8f0d3c11"

func testConfig(t *testing.T, verified bool) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}
	return &config.Config{
		SecretKey:    hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef")),
		Username:     "alice",
		PasswordHash: string(hash),
		UserId:       testUserID,
		UserVerified: verified,
	}
}

func newTestService(t *testing.T, verified bool) servicer {
	t.Helper()
	cfg := testConfig(t, verified)
	repo, err := NewRepo(cfg, nil)
	if err != nil {
		t.Fatalf("NewRepo error: %v", err)
	}
	srvc, err := NewAuthService(cfg, repo)
	if err != nil {
		t.Fatalf("NewAuthService error: %v", err)
	}
	return srvc
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
		username string
		password string
		wantErr  error
	}{
		{"valid", true, "alice", "s3cret", nil},
		{"wrong password", true, "alice", "nope", ErrInvalidCredentials},
		{"unknown user", true, "bob", "s3cret", ErrInvalidCredentials},
		{"unverified", false, "alice", "s3cret", ErrUnverified},
		{"unverified wrong password", false, "alice", "nope", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srvc := newTestService(t, tt.verified)
			user, err := srvc.ValidateCredentials(context.Background(), tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.ID != uuid.MustParse(testUserID) {
				t.Fatalf("user = %+v", user)
			}
		})
	}
}

func TestNewAuthServiceRejectsBadKey(t *testing.T) {
	cfg := testConfig(t, true)
	cfg.SecretKey = "not-hex"
	if _, err := NewAuthService(cfg, &configRepo{}); err == nil {
		t.Fatal("expected error for non-hex secret key")
	}
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) LoginResponse {
	t.Helper()
	var resp LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestLoginShapes(t *testing.T) {
	tests := []struct {
		name       string
		verified   bool
		body       string
		wantStatus int
		want       LoginResponse
		wantCookie bool
	}{
		{"success", true, `{"username":"alice","password":"s3cret"}`, http.StatusOK, LoginResponse{}, true},
		{"invalid", true, `{"username":"alice","password":"x"}`, http.StatusUnauthorized, LoginResponse{Error: msgInvalidCredentials}, false},
		{"unverified", false, `{"username":"alice","password":"s3cret"}`, http.StatusOK, LoginResponse{Message: msgUnverified}, false},
		{"missing", true, `{"username":"alice"}`, http.StatusBadRequest, LoginResponse{Error: msgMissingFields}, false},
		{"malformed", true, `{`, http.StatusBadRequest, LoginResponse{Error: msgMissingFields}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(newTestService(t, tt.verified))
			rec := postJSON(t, h, tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeResponse(t, rec); got != tt.want {
				t.Fatalf("response = %+v, want %+v", got, tt.want)
			}
			if hasCookie := len(rec.Result().Cookies()) > 0; hasCookie != tt.wantCookie {
				t.Fatalf("cookie set = %v, want %v", hasCookie, tt.wantCookie)
			}
		})
	}
}

func TestLoginForm(t *testing.T) {
	h := NewRouter(newTestService(t, true))

	form := url.Values{"username": {"alice"}, "password": {"s3cret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMeRequiresSession(t *testing.T) {
	h := NewRouter(newTestService(t, true))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without cookie = %d", rec.Code)
	}

	login := postJSON(t, h, `{"username":"alice","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range login.Result().Cookies() {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status with cookie = %d", rec.Code)
	}
	var me SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.Username != "alice" || me.ID != uuid.MustParse(testUserID) {
		t.Fatalf("me = %+v", me)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewRouter(newTestService(t, true))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v", cookies)
	}
}
