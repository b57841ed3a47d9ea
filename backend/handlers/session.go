package handlers

import (
	"encoding/json"
	"net/http"

	"zynetra/backend/auth"
)

type sessionStatus struct {
	LoggedIn bool   `json:"loggedIn"`
	Name     string `json:"name,omitempty"`
	IsOwner  *bool  `json:"isOwner,omitempty"`
}

// SessionStatus handles GET /api/session-status. The frontend polls it to
// toggle the nav and the owner badge.
func (h *Handlers) SessionStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := h.sessions.Current(r)
	if !ok {
		json.NewEncoder(w).Encode(sessionStatus{LoggedIn: false})
		return
	}

	isOwner := h.policy.RoleFor(id.Email) == auth.RoleOwner
	json.NewEncoder(w).Encode(sessionStatus{
		LoggedIn: true,
		Name:     id.Name,
		IsOwner:  &isOwner,
	})
}
