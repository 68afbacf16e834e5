package handlers

import (
	"fmt"
	"net/http"

	"github.com/pandey-solutions/saves/internal/api/dto"
	"github.com/pandey-solutions/saves/internal/domain/view"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
	"github.com/pandey-solutions/saves/internal/services"
	"github.com/pandey-solutions/saves/internal/setup"
)

// SetupHandler serves the role provisioning artefacts
type SetupHandler struct {
	resolver *SessionResolver
	views    *services.ViewService
	opts     setup.Options
	logger   *logger.Logger
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(resolver *SessionResolver, views *services.ViewService, opts setup.Options, log *logger.Logger) *SetupHandler {
	return &SetupHandler{
		resolver: resolver,
		views:    views,
		opts:     opts,
		logger:   log,
	}
}

// Template downloads the CloudFormation template
// @Summary Download CloudFormation template
// @Tags Setup
// @Produce application/x-yaml
// @Success 200 {string} string "Template YAML"
// @Router /setup/template [get]
func (h *SetupHandler) Template(w http.ResponseWriter, r *http.Request) {
	body, err := setup.RenderTemplate(h.opts)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to render template")
		utils.WriteError(w, errors.Internal("Failed to render template", err))
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", setup.TemplateFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Script returns the CloudShell script for the session's external id
// @Summary Get CloudShell script
// @Tags Setup
// @Produce json
// @Success 200 {object} dto.ScriptDTO
// @Router /setup/script [get]
func (h *SetupHandler) Script(w http.ResponseWriter, r *http.Request) {
	_, id := h.resolver.Resolve(w, r)

	script, err := setup.Script(h.opts, id.ExternalID)
	if err != nil {
		utils.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ScriptDTO{
		ExternalID: id.ExternalID,
		StackName:  h.opts.StackName,
		Script:     script,
	})
}

// Instructions returns the wizard copy for a provisioning method
// @Summary Get setup instructions
// @Description Defaults to the method selected in the session's view state
// @Tags Setup
// @Produce json
// @Param method query string false "cloudformation or cli"
// @Success 200 {object} setup.Instructions
// @Failure 400 {object} utils.ErrorResponse "Unknown method"
// @Router /setup/instructions [get]
func (h *SetupHandler) Instructions(w http.ResponseWriter, r *http.Request) {
	_, id := h.resolver.Resolve(w, r)

	method := view.Method(r.URL.Query().Get("method"))
	if method == "" {
		method = h.views.State(id).Method
	}

	in, err := setup.BuildInstructions(h.opts, method, id.ExternalID)
	if err != nil {
		utils.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, in)
}
