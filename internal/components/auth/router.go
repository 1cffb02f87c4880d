package auth

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/andrasnagy-data/authdialog/internal/shared/cookie"
	"github.com/andrasnagy-data/authdialog/internal/shared/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgUnverified         = "Please verify your email"
	msgMissingFields      = "Username and password are required"
	msgLoginFailed        = "Login failed. Please try again."
)

type (
	Router struct {
		service servicer
	}
)

func NewRouter(service servicer) chi.Router {
	router := &Router{service: service}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", r.HandleLogInFlow)
	router.Post("/logout", r.HandleLogOut)
	router.With(middleware.NewAuthMiddleware(r.service.Codec())).Get("/me", r.Me)
	return router
}

// HandleLogInFlow answers with one of the three login shapes: {"message"}, {"error"} or {}.
func (r *Router) HandleLogInFlow(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	in, err := decodeLogin(w, req)
	if err != nil {
		logger.Debug().Err(err).Msg("Login failed: malformed request")
		writeJSON(w, http.StatusBadRequest, LoginResponse{Error: msgMissingFields})
		return
	}
	if in.Username == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, LoginResponse{Error: msgMissingFields})
		return
	}

	logger.Debug().Str("username", in.Username).Msg("Login attempt")

	user, err := r.service.ValidateCredentials(ctx, in.Username, in.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		logger.Warn().Str("username", in.Username).Msg("Login failed: invalid credentials")
		writeJSON(w, http.StatusUnauthorized, LoginResponse{Error: msgInvalidCredentials})
		return
	case errors.Is(err, ErrUnverified):
		logger.Info().Str("username", in.Username).Msg("Login held: email not verified")
		writeJSON(w, http.StatusOK, LoginResponse{Message: msgUnverified})
		return
	case err != nil:
		logger.Error().Err(err).Str("username", in.Username).Msg("Login failed: user lookup")
		writeJSON(w, http.StatusInternalServerError, LoginResponse{Error: msgLoginFailed})
		return
	}

	err = r.service.Codec().SetCookie(w, cookie.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		logger.Error().Err(err).Str("username", in.Username).Msg("Login failed: could not set cookie")
		writeJSON(w, http.StatusInternalServerError, LoginResponse{Error: msgLoginFailed})
		return
	}

	logger.Debug().Str("username", user.Username).Str("user_id", user.ID.String()).Msg("Login successful")
	writeJSON(w, http.StatusOK, LoginResponse{})
}

func (r *Router) HandleLogOut(w http.ResponseWriter, _ *http.Request) {
	r.service.Codec().ClearCookie(w)
	writeJSON(w, http.StatusOK, LoginResponse{})
}

// Me returns the user behind the session cookie.
func (r *Router) Me(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	session, _ := middleware.GetSession(ctx)
	user, err := r.service.GetUserByID(ctx, session.UserID)
	if errors.Is(err, ErrUserNotFound) {
		r.service.Codec().ClearCookie(w)
		writeJSON(w, http.StatusUnauthorized, LoginResponse{Error: "Not logged in"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load session user")
		writeJSON(w, http.StatusInternalServerError, LoginResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{ID: user.ID, Username: user.Username})
}

// decodeLogin accepts both JSON bodies and classic form posts.
func decodeLogin(w http.ResponseWriter, req *http.Request) (LoginRequest, error) {
	var in LoginRequest

	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<16)).Decode(&in)
		return in, err
	}

	if err := req.ParseForm(); err != nil {
		return in, err
	}
	in.Username = req.FormValue("username")
	in.Password = req.FormValue("password")
	return in, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
