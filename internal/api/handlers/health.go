package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
)

// Pinger is a session store that can report its health
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	store     Pinger
	storeName string
	logger    *logger.Logger
}

// NewHealthHandler creates a new health handler. store may be nil when no
// pingable session store is configured.
func NewHealthHandler(store Pinger, storeName string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		storeName: storeName,
		logger:    log,
	}
}

// Healthz handles liveness check
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness check
// @Summary Readiness check
// @Description Pings the SQL session store when one is configured
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		utils.WriteSuccess(w, http.StatusOK, map[string]string{
			"status":       "ready",
			"sessionStore": h.storeName,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Session store ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Session store connection failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":       "ready",
		"sessionStore": h.storeName,
		"database":     "connected",
	})
}
