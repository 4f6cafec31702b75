package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/pkg/config"
)

const routerTestSecret = "router-test-secret"

func signToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": "tester",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(routerTestSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// One router instance for all route-gate subtests: the prometheus middleware
// registers its collectors in the default registry on construction.
func TestRouter_RouteGates(t *testing.T) {
	cfg := &config.Config{JWTSecret: routerTestSecret, TokenTTL: time.Hour}
	e := NewRouter(nil, nil, cfg, zerolog.Nop())

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("edit without token is unauthorized", func(t *testing.T) {
		rec := do(http.MethodPut, "/v1/reimbursements", "", `{}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	// The gate admits employees: a malformed body reaches the handler and
	// fails binding, instead of being rejected 403 at the middleware.
	t.Run("edit gate admits employees", func(t *testing.T) {
		token := signToken(t, 7, domain.RoleEmployee)
		rec := do(http.MethodPut, "/v1/reimbursements", token, "not-json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 from the handler, got %d", rec.Code)
		}
	})

	t.Run("edit gate admits finance", func(t *testing.T) {
		token := signToken(t, 12, domain.RoleFinance)
		rec := do(http.MethodPut, "/v1/reimbursements", token, "not-json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 from the handler, got %d", rec.Code)
		}
	})

	t.Run("delete stays admin only", func(t *testing.T) {
		token := signToken(t, 7, domain.RoleEmployee)
		rec := do(http.MethodDelete, "/v1/reimbursements/5", token, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("resolution stays finance only", func(t *testing.T) {
		token := signToken(t, 7, domain.RoleEmployee)
		rec := do(http.MethodPut, "/v1/reimbursements/5/status", token, `{"reimb_status":"approved"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("submission gate rejects finance", func(t *testing.T) {
		token := signToken(t, 12, domain.RoleFinance)
		rec := do(http.MethodPost, "/v1/reimbursements", token, `{}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("user management stays admin only", func(t *testing.T) {
		token := signToken(t, 12, domain.RoleFinance)
		rec := do(http.MethodGet, "/v1/users", token, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
