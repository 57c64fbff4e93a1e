package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"jobsforce/api/internal/utils"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store        Pinger
	aiConfigured bool
	logger       *zap.Logger
}

func NewHealthHandler(store Pinger, aiConfigured bool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, aiConfigured: aiConfigured, logger: logger}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Readyz checks the database; the AI provider is reported but never fails
// readiness since the API degrades without it.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbOK := true
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("readiness ping failed", zap.Error(err))
			dbOK = false
		}
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}
	utils.JSON(w, status, map[string]any{
		"status":       statusWord(dbOK),
		"database":     dbOK,
		"aiConfigured": h.aiConfigured,
	})
}

func statusWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "degraded"
}
