package handlers

import (
	"net/http"

	"github.com/pandey-solutions/saves/internal/api/dto"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/utils"
)

// SessionHandler exposes session bootstrap
type SessionHandler struct {
	resolver *SessionResolver
	sessions session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(resolver *SessionResolver, sessions session.Service) *SessionHandler {
	return &SessionHandler{
		resolver: resolver,
		sessions: sessions,
	}
}

// Acquire resolves or creates the caller's session
// @Summary Acquire session
// @Description Returns the (externalId, sessionId) pair, creating it on first visit. Never fails.
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionDTO
// @Router /session [post]
func (h *SessionHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	_, id := h.resolver.Resolve(w, r)
	utils.WriteSuccess(w, http.StatusOK, dto.ToSessionDTO(id, ""))
}

// Get returns the caller's session with its persisted role ARN
// @Summary Get session
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionDTO
// @Router /session [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, id := h.resolver.Resolve(w, r)
	roleArn := h.sessions.RoleArn(r.Context(), store, id.SessionID)
	utils.WriteSuccess(w, http.StatusOK, dto.ToSessionDTO(id, roleArn))
}
