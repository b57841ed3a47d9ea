package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zynetra/backend/models"
)

const testSecret = "test-secret-key-32-chars-long!!!"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, 24*time.Hour, 30*24*time.Hour, false)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func testUser() *models.User {
	return &models.User{ID: 7, Name: "Ada", Email: "a@x.com", Verified: true}
}

func establish(t *testing.T, m *Manager, remember bool) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/login", nil)
	if err := m.Establish(w, r, testUser(), remember); err != nil {
		t.Fatal(err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected exactly one session cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestNewManager_RejectsMissingOrWeakSecret(t *testing.T) {
	if _, err := NewManager("", time.Hour, time.Hour, false); err == nil {
		t.Error("empty secret should be rejected")
	}
	if _, err := NewManager("short", time.Hour, time.Hour, false); err == nil {
		t.Error("short secret should be rejected")
	}
}

func TestEstablish_DefaultLifetime(t *testing.T) {
	m := newTestManager(t)

	cookie := establish(t, m, false)

	if cookie.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("Expected Max-Age of 24h, got %d", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestEstablish_RememberLifetime(t *testing.T) {
	m := newTestManager(t)

	cookie := establish(t, m, true)

	if cookie.MaxAge != int((30 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected Max-Age of 30 days, got %d", cookie.MaxAge)
	}
}

func TestCurrent_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	cookie := establish(t, m, false)

	r := httptest.NewRequest("GET", "/api/session-status", nil)
	r.AddCookie(cookie)

	id, ok := m.Current(r)
	if !ok {
		t.Fatal("Expected an identity from the established session")
	}
	if id.UserID != 7 || id.Name != "Ada" || id.Email != "a@x.com" {
		t.Errorf("Unexpected identity: %+v", id)
	}
}

func TestCurrent_NoSession(t *testing.T) {
	m := newTestManager(t)

	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := m.Current(r); ok {
		t.Error("Expected no identity without a cookie")
	}
}

func TestDestroy_ExpiresCookie(t *testing.T) {
	m := newTestManager(t)

	cookie := establish(t, m, false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/logout", nil)
	r.AddCookie(cookie)
	m.Destroy(w, r)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected a replacement cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("Expected Max-Age -1 on destroy, got %d", cookies[0].MaxAge)
	}
}
