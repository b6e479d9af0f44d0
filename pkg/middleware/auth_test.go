package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"docportal/pkg/auth"
	"docportal/pkg/logger"
)

type mockRoleResolver struct {
	roles map[string]string
}

func (m *mockRoleResolver) RoleByEmail(_ context.Context, email string) (string, error) {
	return m.roles[email], nil
}

func newTestGuard(roles map[string]string) (*Guard, *auth.TokenManager) {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewGuard(tokens, &mockRoleResolver{roles: roles}, log), tokens
}

func okHandle(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	guard, _ := newTestGuard(nil)

	called := false
	handle := guard.RequireAuth(okHandle(&called))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler should not run without a credential")
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	guard, _ := newTestGuard(nil)

	called := false
	handle := guard.RequireAuth(okHandle(&called))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if called {
		t.Error("next handler should not run with an invalid credential")
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	guard, tokens := newTestGuard(nil)

	token, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	var gotEmail string
	handle := guard.RequireAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotEmail = VerifiedEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotEmail != "a@x.com" {
		t.Errorf("VerifiedEmail = %q, want %q", gotEmail, "a@x.com")
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	guard, tokens := newTestGuard(map[string]string{"a@x.com": ""})

	token, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	called := false
	handle := guard.RequireAdmin(okHandle(&called))

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if called {
		t.Error("next handler should not run for a non-admin")
	}
}

func TestRequireAdmin_Admin(t *testing.T) {
	guard, tokens := newTestGuard(map[string]string{"admin@x.com": "Admin"})

	token, err := tokens.Issue("admin@x.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	called := false
	handle := guard.RequireAdmin(okHandle(&called))

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handle(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("next handler should run for an admin")
	}
}
