package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"net/url"

	"zynetra/backend/auth"
	"zynetra/backend/middleware"
	"zynetra/backend/session"
)

// Handlers is the HTTP glue over the auth flow. Page markup itself is
// served by the static frontend; these routes only carry the flow's
// redirects, JSON and session guards.
type Handlers struct {
	auth     *auth.Service
	sessions *session.Manager
	policy   *auth.Policy
}

func New(authSvc *auth.Service, sessions *session.Manager, policy *auth.Policy) *Handlers {
	return &Handlers{auth: authSvc, sessions: sessions, policy: policy}
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Register handles POST /register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	profile := auth.Profile{
		Name:    r.FormValue("name"),
		Email:   auth.NormalizeEmail(r.FormValue("email")),
		Phone:   r.FormValue("phone"),
		Company: r.FormValue("company"),
		Role:    r.FormValue("role"),
	}
	password := r.FormValue("password")

	if !validEmail(profile.Email) || len(password) < 6 {
		slog.Warn("registration rejected: invalid input", "source", "http",
			"request_id", middleware.RequestIDFrom(r.Context()))
		http.Redirect(w, r, "/login?error=validation_error", http.StatusSeeOther)
		return
	}

	pending, err := h.auth.Register(profile, password)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		http.Redirect(w, r, "/login?error=email_exists", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Redirect(w, r, "/login?error=server_error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/verify-otp?email="+url.QueryEscape(pending), http.StatusSeeOther)
}

// VerifyCode handles POST /verify-code. Every failure mode leads back to
// the verify step with the same generic indication.
func (h *Handlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	email := auth.NormalizeEmail(r.FormValue("email"))
	code := r.FormValue("otp")

	user, err := h.auth.Verify(email, code)
	if err != nil {
		http.Redirect(w, r, "/verify-otp?email="+url.QueryEscape(email)+"&error=invalid_code", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Establish(w, r, user, false); err != nil {
		slog.Error("session save failed", "source", "http", "error", err.Error(),
			"request_id", middleware.RequestIDFrom(r.Context()))
		http.Redirect(w, r, "/login?error=server_error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/loading", http.StatusSeeOther)
}

// Login handles POST /login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	remember := r.FormValue("remember") == "on"

	user, err := h.auth.Login(email, password)
	if errors.Is(err, auth.ErrNotVerified) {
		http.Redirect(w, r, "/login?error=not_verified", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Redirect(w, r, "/login?error=invalid_credentials", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Establish(w, r, user, remember); err != nil {
		slog.Error("session save failed", "source", "http", "error", err.Error(),
			"request_id", middleware.RequestIDFrom(r.Context()))
		http.Redirect(w, r, "/login?error=server_error", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/loading", http.StatusSeeOther)
}

// Logout handles GET /logout; destroying the session never fails from the
// caller's point of view.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.sessions.Current(r); ok {
		slog.Info("user logged out", "source", "auth", "user_id", id.UserID)
	}
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage handles GET /login: an authenticated browser is bounced to the
// dashboard, everyone else gets the entry point (markup is the frontend's).
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// VerifyPage handles GET /verify-otp.
func (h *Handlers) VerifyPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ProtectedPage backs the session-guarded views (/dashboard, /loading).
func (h *Handlers) ProtectedPage(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
