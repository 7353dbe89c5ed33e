package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-appointment-api/internal/authctx"

	"github.com/google/uuid"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	ctx := authctx.WithIdentity(req.Context(), uuid.New(), "staff@example.com", role, uuid.NewString())
	return req.WithContext(ctx)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("AdminAllowed", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()

		RequireAdmin(okHandler(&called)).ServeHTTP(rec, requestWithRole("admin"))

		if !called {
			t.Fatal("handler should have been called")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("StaffForbidden", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()

		RequireAdmin(okHandler(&called)).ServeHTTP(rec, requestWithRole("staff"))

		if called {
			t.Fatal("handler should not have been called")
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("NoRoleUnauthorized", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)

		RequireAdmin(okHandler(&called)).ServeHTTP(rec, req)

		if called {
			t.Fatal("handler should not have been called")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestRequireStaff(t *testing.T) {
	cases := []struct {
		role       string
		wantStatus int
	}{
		{"admin", http.StatusOK},
		{"staff", http.StatusOK},
		{"viewer", http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.role, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()

			RequireStaff(okHandler(&called)).ServeHTTP(rec, requestWithRole(c.role))

			if rec.Code != c.wantStatus {
				t.Errorf("role %s: status = %d, want %d", c.role, rec.Code, c.wantStatus)
			}
			if (c.wantStatus == http.StatusOK) != called {
				t.Errorf("role %s: handler called = %v", c.role, called)
			}
		})
	}
}
