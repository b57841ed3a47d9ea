package middleware

import (
	"net/http"

	"zynetra/backend/session"
)

// RequireAuth guards a view behind an active session; unauthenticated
// requests are redirected to the login entry point.
func RequireAuth(sessions *session.Manager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if _, ok := sessions.Current(r); !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
