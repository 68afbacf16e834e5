package handlers

import (
	"net/http"

	"github.com/pandey-solutions/saves/internal/api/dto"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
	"github.com/pandey-solutions/saves/internal/services"
)

// DashboardHandler serves generated and showcase dashboards
type DashboardHandler struct {
	resolver   *SessionResolver
	dashboards *services.DashboardService
	logger     *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(resolver *SessionResolver, dashboards *services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		resolver:   resolver,
		dashboards: dashboards,
		logger:     log,
	}
}

// Get returns the generated dashboard
// @Summary Get dashboard
// @Description Seeded by ?seed, else the account of ?roleArn, else the session's persisted role
// @Tags Dashboard
// @Produce json
// @Param roleArn query string false "Role ARN"
// @Param seed query string false "Explicit seed"
// @Success 200 {object} dto.DashboardDTO
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	seed := h.seed(w, r)
	utils.WriteSuccess(w, http.StatusOK, dto.ToDashboardDTO(h.dashboards.Generate(seed)))
}

// Scan returns the simulated analysis log
// @Summary Get scan steps
// @Tags Dashboard
// @Produce json
// @Param roleArn query string false "Role ARN"
// @Param seed query string false "Explicit seed"
// @Success 200 {object} dto.ScanDTO
// @Router /dashboard/scan [get]
func (h *DashboardHandler) Scan(w http.ResponseWriter, r *http.Request) {
	seed := h.seed(w, r)
	utils.WriteSuccess(w, http.StatusOK, dto.ToScanDTO(seed, h.dashboards.ScanSteps(seed)))
}

// Demo returns the public showcase dataset
// @Summary Get live demo data
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dashboard.Showcase
// @Router /demo [get]
func (h *DashboardHandler) Demo(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.dashboards.Showcase())
}

func (h *DashboardHandler) seed(w http.ResponseWriter, r *http.Request) string {
	q := r.URL.Query()
	if seed := q.Get("seed"); seed != "" {
		return seed
	}
	store, id := h.resolver.Resolve(w, r)
	return h.dashboards.ResolveSeed(r.Context(), store, id.SessionID, q.Get("roleArn"), "")
}
