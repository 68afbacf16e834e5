package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pandey-solutions/saves/internal/api/dto"
	"github.com/pandey-solutions/saves/internal/domain/view"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
	"github.com/pandey-solutions/saves/internal/pkg/validator"
	"github.com/pandey-solutions/saves/internal/services"
)

// Path actions accepted by Dispatch
var viewActions = map[string]view.Kind{
	"start":   view.ActionStart,
	"demo":    view.ActionDemo,
	"home":    view.ActionHome,
	"back":    view.ActionBack,
	"dismiss": view.ActionDismiss,
	"method":  view.ActionSelectMethod,
}

// ViewHandler exposes the per-session UI state machine
type ViewHandler struct {
	resolver  *SessionResolver
	views     *services.ViewService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewViewHandler creates a new view handler
func NewViewHandler(resolver *SessionResolver, views *services.ViewService, log *logger.Logger, val *validator.Validator) *ViewHandler {
	return &ViewHandler{
		resolver:  resolver,
		views:     views,
		logger:    log,
		validator: val,
	}
}

// Get returns the current view state
// @Summary Get view state
// @Tags View
// @Produce json
// @Success 200 {object} dto.ViewStateDTO
// @Router /view [get]
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, id := h.resolver.Resolve(w, r)
	utils.WriteSuccess(w, http.StatusOK, dto.ToViewStateDTO(h.views.State(id)))
}

// Dispatch applies a navigation action
// @Summary Dispatch view action
// @Tags View
// @Accept json
// @Produce json
// @Param action path string true "start, demo, home, back, dismiss or method"
// @Param request body dto.ViewActionRequest false "Method selection"
// @Success 200 {object} dto.ViewStateDTO
// @Failure 400 {object} utils.ErrorResponse "Unknown action"
// @Failure 409 {object} utils.ErrorResponse "Action not allowed in the current view"
// @Router /view/{action} [post]
func (h *ViewHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	kind, ok := viewActions[chi.URLParam(r, "action")]
	if !ok {
		utils.WriteError(w, errors.BadRequest("Unknown view action"))
		return
	}

	var req dto.ViewActionRequest
	if appErr := decodeJSON(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	action := view.Action{Kind: kind}
	if kind == view.ActionSelectMethod {
		if req.Method == "" {
			utils.WriteError(w, errors.BadRequest("Method is required"))
			return
		}
		action.Method = view.Method(req.Method)
	}

	_, id := h.resolver.Resolve(w, r)
	st, err := h.views.Dispatch(id, action)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ToViewStateDTO(st))
}
