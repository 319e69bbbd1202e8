package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paysched/internal/domain/auth"
)

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Email: "ops@acme.test", Role: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != "u1" || user.Role != "admin" {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}

func TestRequireRole(t *testing.T) {
	secret := "test-secret"
	protected := Auth(secret)(RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	anonRec := httptest.NewRecorder()
	protected.ServeHTTP(anonRec, anon)
	if anonRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %d", anonRec.Code)
	}

	userToken, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Role: "user"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	asUser := httptest.NewRequest(http.MethodGet, "/", nil)
	asUser.Header.Set("Authorization", "Bearer "+userToken)
	userRec := httptest.NewRecorder()
	protected.ServeHTTP(userRec, asUser)
	if userRec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", userRec.Code)
	}

	adminToken, err := auth.GenerateToken(secret, auth.Claims{UserID: "u2", Role: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	asAdmin := httptest.NewRequest(http.MethodGet, "/", nil)
	asAdmin.Header.Set("Authorization", "Bearer "+adminToken)
	adminRec := httptest.NewRecorder()
	protected.ServeHTTP(adminRec, asAdmin)
	if adminRec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", adminRec.Code)
	}
}
