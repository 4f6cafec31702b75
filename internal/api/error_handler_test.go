package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrBadRequest, http.StatusBadRequest},
		{domain.ErrNotPending, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrReimbNotFound, http.StatusNotFound},
		{domain.ErrUsernameTaken, http.StatusConflict},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrDuplicateUser, http.StatusConflict},
		{domain.ErrDuplicateSubmission, http.StatusConflict},
	}

	for _, tc := range cases {
		rec, body := render(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}
		if body["error"] == "" {
			t.Errorf("%v: missing error message", tc.err)
		}
	}
}

// Wrapped domain errors still map through errors.Is.
func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)

	rec, body := render(t, wrapped)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["error"] != wrapped.Error() {
		t.Errorf("message = %q, want %q", body["error"], wrapped.Error())
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, _ := render(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// Unknown errors become an opaque 500; the cause never reaches the client.
func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, body := render(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Errorf("message = %q, want generic internal server error", body["error"])
	}
}

func TestErrorHandler_InternalServerSentinel(t *testing.T) {
	rec, body := render(t, domain.ErrInternalServer)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Errorf("message = %q, want generic internal server error", body["error"])
	}
}
