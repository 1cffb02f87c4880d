package cookie

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const (
	cookieName string = "session"
	maxAge     int    = 7 * 24 * 60 * 60
)

var (
	ErrInvalidValue = errors.New("invalid cookie value")
	ErrInvalidKey   = errors.New("secret key must be 32 bytes")
)

type (
	// Session is the payload carried by the session cookie.
	Session struct {
		UserID   uuid.UUID `json:"uid"`
		Username string    `json:"usr"`
	}

	// Codec signs and encrypts session cookies. The cookie name is part of the
	// authenticated payload, so values cannot be moved between cookie names.
	Codec struct {
		sc *securecookie.SecureCookie
	}
)

// NewCodec derives separate hash and block keys from a 32-byte secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) != 32 {
		return nil, ErrInvalidKey
	}
	hashKey := sha256.Sum256(append([]byte("session-hash:"), secret...))
	blockKey := sha256.Sum256(append([]byte("session-block:"), secret...))

	sc := securecookie.New(hashKey[:], blockKey[:]).
		MaxAge(maxAge).
		SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc}, nil
}

func (c *Codec) GetCookie(r *http.Request) (*Session, error) {
	ck, err := r.Cookie(cookieName)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := c.sc.Decode(cookieName, ck.Value, &s); err != nil {
		return nil, ErrInvalidValue
	}
	if s.UserID == uuid.Nil {
		return nil, ErrInvalidValue
	}
	return &s, nil
}

func (c *Codec) SetCookie(w http.ResponseWriter, s Session) error {
	encoded, err := c.sc.Encode(cookieName, s)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		HttpOnly: true,
		// Send cookie to all routes in the app
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *Codec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		MaxAge:   -1,
	})
}
