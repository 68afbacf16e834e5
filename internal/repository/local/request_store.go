// Package local adapts per-client storage to session.LocalStore. Over HTTP
// the browser's persistent storage is modelled by cookies, with request
// headers taking precedence for non-browser clients.
package local

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pandey-solutions/saves/internal/domain/session"
	"github.com/pandey-solutions/saves/internal/pkg/errors"
)

// Header names mirrored onto storage keys
const (
	HeaderSessionID  = "X-Session-ID"
	HeaderExternalID = "X-External-ID"
	HeaderRoleArn    = "X-Role-ARN"
)

const cookieMaxAge = 365 * 24 * time.Hour

var headerForKey = map[string]string{
	session.KeySessionID:  HeaderSessionID,
	session.KeyExternalID: HeaderExternalID,
	session.KeyRoleArn:    HeaderRoleArn,
}

// CookieOptions control the cookies written by RequestStore
type CookieOptions struct {
	Secure bool
}

// RequestStore is a session.LocalStore scoped to one HTTP exchange
type RequestStore struct {
	mu      sync.Mutex
	r       *http.Request
	w       http.ResponseWriter
	opts    CookieOptions
	written map[string]string
}

// NewRequestStore creates a store reading from r and writing to w
func NewRequestStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *RequestStore {
	return &RequestStore{
		r:       r,
		w:       w,
		opts:    opts,
		written: make(map[string]string),
	}
}

// Get returns the value for key, preferring values written during this
// request, then request headers, then cookies.
func (s *RequestStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.written[key]; ok {
		return v, nil
	}
	if h, ok := headerForKey[key]; ok {
		if v := strings.TrimSpace(s.r.Header.Get(h)); v != "" {
			return v, nil
		}
	}
	if c, err := s.r.Cookie(key); err == nil {
		return c.Value, nil
	}
	return "", nil
}

// Set stores value under key as a cookie and mirrors it in a response header
func (s *RequestStore) Set(key, value string) error {
	if !validCookieValue(value) {
		return errors.PersistenceUnavailable(fmt.Errorf("value for %s cannot be stored in a cookie", key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	if h, ok := headerForKey[key]; ok {
		s.w.Header().Set(h, value)
	}
	s.written[key] = value
	return nil
}

// validCookieValue follows the cookie-octet grammar of RFC 6265
func validCookieValue(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b < 0x21 || b > 0x7e || b == '"' || b == ',' || b == ';' || b == '\\' {
			return false
		}
	}
	return true
}

var _ session.LocalStore = (*RequestStore)(nil)
