package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"spendwise/internal/core"
)

// Context key type to avoid collisions.
type contextKey string

const (
	userContextKey    contextKey = "user"
	requestIDKey      contextKey = "request_id"
	SessionCookieName            = "session"
)

func withUser(r *http.Request, u core.User) context.Context {
	return context.WithValue(r.Context(), userContextKey, u)
}

// userFrom retrieves the authenticated user from the request context.
func userFrom(r *http.Request) (core.User, bool) {
	u, ok := r.Context().Value(userContextKey).(core.User)
	return u, ok
}

// sessionUser resolves the session cookie without touching the response.
// Used where we only need to know whether someone is logged in.
func (s *Server) sessionUser(r *http.Request) (core.User, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return core.User{}, false
	}
	u, _, err := s.users.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return core.User{}, false
	}
	return u, true
}

// requireUser wraps page handlers that need a logged-in user. Requests
// without a valid session redirect to the login page. Sessions are rolling:
// validation renews them past the halfway point, and the cookie lifetime
// follows the session's.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		u, sess, err := s.users.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
		next(w, r.WithContext(withUser(r, u)))
	}
}

// requireUserJSON is requireUser for JSON endpoints: missing or invalid
// sessions get a 401 body instead of a redirect.
func (s *Server) requireUserJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		u, sess, err := s.users.ValidateSession(r.Context(), cookie.Value)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
		next(w, r.WithContext(withUser(r, u)))
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.users.EndSession(r.Context(), cookie.Value); err != nil {
			slog.ErrorContext(r.Context(), "Failed to delete session", "error", err)
		}
	}
	s.clearSessionCookie(w)
}
