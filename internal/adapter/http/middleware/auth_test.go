package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/infrastructure/auth"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	token, err := manager.Generate(&domain.User{ID: "staff-1", Email: "b@school.example", Role: domain.RoleBursar})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	mw := AuthMiddleware(manager)

	var called bool
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUserFromContext(r.Context())
		if !ok || user.ID != "staff-1" || user.Role != domain.RoleBursar {
			t.Fatalf("expected user in context, got %+v ok=%v", user, ok)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called with valid token")
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"bad token":      "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			mw(okHandler(new(bool))).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireBilling(t *testing.T) {
	tests := []struct {
		role     domain.Role
		expected int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleBursar, http.StatusOK},
		{domain.RoleViewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodPost, "/payments", nil)
			ctx := context.WithValue(req.Context(), UserContextKey, &domain.User{ID: "u", Role: tt.role})
			rec := httptest.NewRecorder()

			RequireBilling(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d for role %s, got %d", tt.expected, tt.role, rec.Code)
			}
		})
	}

	// No user in context
	rec := httptest.NewRecorder()
	RequireBilling(okHandler(new(bool))).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", rec.Code)
	}
}

func TestRequireScheduleAdmin(t *testing.T) {
	tests := []struct {
		role     domain.Role
		expected int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleBursar, http.StatusForbidden},
		{domain.RoleViewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodPost, "/fees", nil)
			ctx := context.WithValue(req.Context(), UserContextKey, &domain.User{ID: "u", Role: tt.role})
			rec := httptest.NewRecorder()

			RequireScheduleAdmin(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d for role %s, got %d", tt.expected, tt.role, rec.Code)
			}
		})
	}
}
