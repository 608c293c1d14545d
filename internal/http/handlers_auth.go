package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"spendwise/internal/core"
	"spendwise/internal/services"
	"spendwise/internal/storage"
)

// AuthViewModel holds data for the login and register pages.
type AuthViewModel struct {
	Error    string
	Username string
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessionUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, r, "register.html", AuthViewModel{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "register.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := sanitizeInput(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := s.users.Register(r.Context(), username, password)
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.Is(err, core.ErrEmptyUsername), errors.Is(err, core.ErrEmptyPassword):
		s.render(w, r, "register.html", AuthViewModel{
			Error:    "Username and password are required",
			Username: username,
		})
	case errors.Is(err, storage.ErrDuplicateUsername):
		s.render(w, r, "register.html", AuthViewModel{
			Error:    "Username already taken",
			Username: username,
		})
	default:
		slog.ErrorContext(r.Context(), "Registration failed", "error", err, "username", username)
		s.render(w, r, "register.html", AuthViewModel{
			Error:    "An error occurred. Please try again.",
			Username: username,
		})
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessionUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, r, "login.html", AuthViewModel{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "login.html", AuthViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := s.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			s.render(w, r, "login.html", AuthViewModel{
				Error:    "Invalid username or password",
				Username: username,
			})
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err, "username", username)
		s.render(w, r, "login.html", AuthViewModel{Error: "An error occurred. Please try again."})
		return
	}

	sess, err := s.users.StartSession(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to start session", "error", err, "user_id", user.ID)
		s.render(w, r, "login.html", AuthViewModel{Error: "An error occurred. Please try again."})
		return
	}

	s.setSessionCookie(w, sess.Token, sess.ExpiresAt)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}
