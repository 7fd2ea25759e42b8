package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nwfpay/internal/domain/auth"
)

const testSecret = "test-secret"

func bearerRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthAttachesUser(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Email: "a@b.c", Role: "admin"}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var user UserContext
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok = GetUser(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), bearerRequest(t, token))

	if !ok {
		t.Fatal("expected user in context")
	}
	if user.Email != "a@b.c" || user.Role != "admin" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthIgnoresInvalidToken(t *testing.T) {
	var ok bool
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetUser(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), bearerRequest(t, "garbage"))
	if ok {
		t.Fatal("expected no user for invalid token")
	}
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, ""))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1"}, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	called := false
	handler := Auth(testSecret)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))
	handler.ServeHTTP(httptest.NewRecorder(), bearerRequest(t, token))
	if !called {
		t.Fatal("expected handler to run for authenticated request")
	}
}
