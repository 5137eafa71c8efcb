package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/model"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the store is reachable
type HealthHandler struct {
	db database.Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db database.Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", slog.String("error", err.Error()))
		WriteError(w, model.NewServiceUnavailableError())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
