package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/hlog"
)

const (
	dbOK          = "ok"
	dbUnavailable = "unavailable"
	dbDisabled    = "disabled"
)

type (
	pinger interface {
		Ping(ctx context.Context) error
	}

	// HealthSrvc handles business logic for health check functionality
	HealthSrvc struct {
		db pinger
	}

	// HealthResponse represents the response structure for health check endpoint
	HealthResponse struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Database  string    `json:"database"`
	}
)

func NewHealthHandler(srvc *HealthSrvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := hlog.FromRequest(r)

		response := srvc.check(ctx)

		w.Header().Set("Content-Type", "application/json")

		if response.Database != dbUnavailable {
			logger.Debug().Str("database", response.Database).Msg("Healthcheck ok")
			w.WriteHeader(http.StatusOK)
		} else {
			logger.Error().Msg("Database healthcheck failed")
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Error().Err(err).Msg("Failed to encode health check response")
			return
		}
	}
}

// NewHealthSrvc checks the user store when one is configured; a nil pool reports the database as disabled.
func NewHealthSrvc(pool *pgxpool.Pool) *HealthSrvc {
	if pool == nil {
		return &HealthSrvc{}
	}
	return &HealthSrvc{db: pool}
}

func (s *HealthSrvc) check(ctx context.Context) HealthResponse {
	now := time.Now().UTC()

	if s.db == nil {
		return HealthResponse{Status: "serving", Timestamp: now, Database: dbDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		return HealthResponse{Status: "not serving", Timestamp: now, Database: dbUnavailable}
	}
	return HealthResponse{Status: "serving", Timestamp: now, Database: dbOK}
}
