package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskhub/taskhub-go/internal/crypto"
)

func sessionRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return r
}

func runSessionAuth(t *testing.T, secret string, r *http.Request) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()

	var gotID string
	var called bool
	h := SessionAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, called = UserIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w, gotID, called
}

func TestSessionAuthNoCookie(t *testing.T) {
	w, _, called := runSessionAuth(t, "test-secret", sessionRequest(""))

	if called {
		t.Error("handler was called without a session cookie")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSessionAuthGarbageToken(t *testing.T) {
	w, _, called := runSessionAuth(t, "test-secret", sessionRequest("garbage"))

	if called {
		t.Error("handler was called with a garbage token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSessionAuthSameBodyForAllFailures(t *testing.T) {
	expired, err := crypto.GenerateToken("user-1", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	forged, err := crypto.GenerateToken("user-1", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	missing, _, _ := runSessionAuth(t, "test-secret", sessionRequest(""))
	expiredResp, _, _ := runSessionAuth(t, "test-secret", sessionRequest(expired))
	forgedResp, _, _ := runSessionAuth(t, "test-secret", sessionRequest(forged))

	if expiredResp.Body.String() != missing.Body.String() ||
		forgedResp.Body.String() != missing.Body.String() {
		t.Error("authentication failure responses differ between failure modes")
	}
}

func TestSessionAuthValidToken(t *testing.T) {
	token, err := crypto.GenerateToken("user-7", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	w, gotID, called := runSessionAuth(t, "test-secret", sessionRequest(token))

	if !called {
		t.Fatal("handler was not called for a valid token")
	}
	if gotID != "user-7" {
		t.Errorf("context user ID = %q, want %q", gotID, "user-7")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestUserIDFromContextMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := UserIDFromContext(r.Context()); ok {
		t.Error("UserIDFromContext() reported an ID on an empty context")
	}
}
