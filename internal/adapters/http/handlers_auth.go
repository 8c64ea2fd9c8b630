package web

import (
	"errors"
	"log/slog"
	"net/http"

	"preorder/internal/adapters/http/middleware"
	"preorder/internal/application/orchestrators"
)

type loginPage struct {
	basePage
	FormEmail string
	Error     string
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		s.render(w, http.StatusOK, "login.html", loginPage{basePage: newBasePage(r, "Sign in")})

	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := orchestrators.LoginInput{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			AccountStore: s.stores.AccountStore,
			Now:          s.opts.Now,
		})
		if err != nil {
			msg := "Invalid email or password."
			if errors.Is(err, orchestrators.ErrAccountLocked) {
				msg = "Too many failed attempts. Try again in 15 minutes."
			}
			s.render(w, http.StatusUnauthorized, "login.html", loginPage{
				basePage:  newBasePage(r, "Sign in"),
				FormEmail: input.Email,
				Error:     msg,
			})
			return
		}

		token, err := s.sessions.Create(result.AccountID, result.Email)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token, s.opts.Secure)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// handleLogout handles POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "email", sess.Email)
	}
	middleware.ClearSessionCookie(w, s.opts.Secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
