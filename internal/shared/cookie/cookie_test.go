package cookie

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func newCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(bytes.Repeat([]byte{7}, 32))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestNewCodecRejectsShortKey(t *testing.T) {
	if _, err := NewCodec([]byte("short")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
}

func TestSetAndGetCookie(t *testing.T) {
	c := newCodec(t)
	want := Session{UserID: uuid.New(), Username: "alice"}

	rec := httptest.NewRecorder()
	if err := c.SetCookie(rec, want); err != nil {
		t.Fatalf("SetCookie error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}

	got, err := c.GetCookie(req)
	if err != nil {
		t.Fatalf("GetCookie error: %v", err)
	}
	if *got != want {
		t.Fatalf("session = %+v, want %+v", got, want)
	}
}

func TestGetCookieRejectsTampering(t *testing.T) {
	c := newCodec(t)

	rec := httptest.NewRecorder()
	if err := c.SetCookie(rec, Session{UserID: uuid.New(), Username: "alice"}); err != nil {
		t.Fatalf("SetCookie error: %v", err)
	}
	ck := rec.Result().Cookies()[0]
	ck.Value = ck.Value[:len(ck.Value)-2] + "xx"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)

	if _, err := c.GetCookie(req); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}

func TestGetCookieFromOtherKey(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := newCodec(t).SetCookie(rec, Session{UserID: uuid.New()}); err != nil {
		t.Fatalf("SetCookie error: %v", err)
	}

	other, err := NewCodec(bytes.Repeat([]byte{9}, 32))
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if _, err := other.GetCookie(req); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}
