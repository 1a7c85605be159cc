package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

func Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Hello World!!!")
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	code, status, dbState := http.StatusOK, "ok", "ok"
	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("❌ health check: database ping failed")
		code, status, dbState = http.StatusServiceUnavailable, "degraded", "unavailable"
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"service":   "pupils-backend",
		"database":  dbState,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
