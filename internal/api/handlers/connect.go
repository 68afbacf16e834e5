package handlers

import (
	"net/http"

	"github.com/pandey-solutions/saves/internal/api/dto"
	"github.com/pandey-solutions/saves/internal/domain/connection"
	"github.com/pandey-solutions/saves/internal/pkg/logger"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
	"github.com/pandey-solutions/saves/internal/pkg/validator"
	"github.com/pandey-solutions/saves/internal/services"
)

// ConnectHandler runs the role verification flow
type ConnectHandler struct {
	resolver    *SessionResolver
	views       *services.ViewService
	connections connection.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewConnectHandler creates a new connect handler
func NewConnectHandler(resolver *SessionResolver, views *services.ViewService, connections connection.Service, log *logger.Logger, val *validator.Validator) *ConnectHandler {
	return &ConnectHandler{
		resolver:    resolver,
		views:       views,
		connections: connections,
		logger:      log,
		validator:   val,
	}
}

// Connect validates the ARN, simulates verification and persists it
// @Summary Connect AWS account
// @Description Blocks for the verification latency. Failures carry {type,title,message} in error.details.
// @Tags Connect
// @Accept json
// @Produce json
// @Param request body dto.RoleArnRequest true "Role ARN"
// @Success 200 {object} dto.ConnectResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid ARN"
// @Failure 409 {object} utils.ErrorResponse "Connection already in progress"
// @Failure 504 {object} utils.ErrorResponse "Verification timed out"
// @Router /connect [post]
func (h *ConnectHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleArnRequest
	if appErr := decodeJSON(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	store, id := h.resolver.Resolve(w, r)
	st, result, err := h.views.Connect(r.Context(), store, id, req.RoleArn)
	if err != nil {
		utils.WriteErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ConnectResponse{
		Status:      result.Status,
		RoleArn:     result.RoleArn,
		AccountID:   result.AccountID,
		PersistedTo: result.PersistedTo,
		View:        dto.ToViewStateDTO(st),
	})
}

// Validate checks an ARN without connecting
// @Summary Validate role ARN
// @Tags Connect
// @Accept json
// @Produce json
// @Param request body dto.RoleArnRequest true "Role ARN"
// @Success 200 {object} dto.ValidateResponse
// @Router /validate [post]
func (h *ConnectHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.RoleArnRequest
	if appErr := decodeJSON(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	failure := h.connections.Validate(req.RoleArn)
	utils.WriteSuccess(w, http.StatusOK, dto.ToValidateResponse(req.RoleArn, failure))
}
