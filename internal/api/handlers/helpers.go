package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/pandey-solutions/saves/internal/api/middleware"
	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
	"github.com/pandey-solutions/saves/internal/pkg/validator"
	"github.com/pandey-solutions/saves/internal/repository/local"
)

const maxBodyBytes = 1 << 16

// SessionResolver binds a request to its session. The request's cookies and
// session headers act as the client's local storage.
type SessionResolver struct {
	sessions session.Service
	cookies  local.CookieOptions
}

// NewSessionResolver creates a resolver over the session service
func NewSessionResolver(sessions session.Service, cookies local.CookieOptions) *SessionResolver {
	return &SessionResolver{
		sessions: sessions,
		cookies:  cookies,
	}
}

// Resolve acquires the identity for the request. It never fails.
func (s *SessionResolver) Resolve(w http.ResponseWriter, r *http.Request) (session.LocalStore, session.Identity) {
	store := local.NewRequestStore(w, r, s.cookies)
	id := s.sessions.Acquire(r.Context(), store)

	middleware.AddLogField(w, "session_id", id.SessionID)
	middleware.AddLogField(w, "session_source", id.Source)

	return store, id
}

// decodeJSON decodes and validates the request body into v. An empty body
// decodes to the zero value and is then validated.
func decodeJSON(r *http.Request, val *validator.Validator, v interface{}) *errors.AppError {
	if r.Body != nil {
		err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
		if err != nil && !stderrors.Is(err, io.EOF) {
			return errors.BadRequest("Invalid request body")
		}
	}
	return val.Check(v)
}
