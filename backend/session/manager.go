package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"zynetra/backend/models"
)

const cookieName = "session"

// Identity is what a session remembers about the authenticated user.
type Identity struct {
	UserID uint
	Name   string
	Email  string
}

// Manager wraps a cookie store with the two configured lifetimes: the
// default one and the extended "remember me" one.
type Manager struct {
	store       *sessions.CookieStore
	defaultTTL  time.Duration
	rememberTTL time.Duration
}

// NewManager builds the cookie store. The secret must come from config and
// be at least 32 bytes; there is no fallback default.
func NewManager(secret string, defaultTTL, rememberTTL time.Duration, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required (set SESSION_SECRET)")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters, got %d", len(secret))
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(defaultTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, defaultTTL: defaultTTL, rememberTTL: rememberTTL}, nil
}

// Establish creates the session for user. With remember the cookie lives
// for the extended lifetime, otherwise the default one.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, user *models.User, remember bool) error {
	sess, _ := m.store.Get(r, cookieName)
	sess.Values["user_id"] = user.ID
	sess.Values["name"] = user.Name
	sess.Values["email"] = user.Email

	ttl := m.defaultTTL
	if remember {
		ttl = m.rememberTTL
	}
	sess.Options.MaxAge = int(ttl.Seconds())

	return sess.Save(r, w)
}

// Current returns the identity carried by the request's session, if any.
func (m *Manager) Current(r *http.Request) (*Identity, bool) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		return nil, false
	}
	userID, ok := sess.Values["user_id"].(uint)
	if !ok {
		return nil, false
	}
	name, _ := sess.Values["name"].(string)
	email, _ := sess.Values["email"].(string)
	return &Identity{UserID: userID, Name: name, Email: email}, true
}

// Destroy drops the session unconditionally.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) {
	sess, _ := m.store.Get(r, cookieName)
	sess.Values = make(map[interface{}]interface{})
	sess.Options.MaxAge = -1
	sess.Save(r, w)
}
