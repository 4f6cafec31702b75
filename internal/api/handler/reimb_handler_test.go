package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
)

// stubReimbService lets each test wire only the methods it exercises.
type stubReimbService struct {
	getAllFn      func(ctx context.Context) ([]domain.Reimbursement, error)
	getByIDFn     func(ctx context.Context, id int64) (*domain.Reimbursement, error)
	getByKeyFn    func(ctx context.Context, lookup ports.Lookup) (*domain.Reimbursement, error)
	getByAuthorFn func(ctx context.Context, authorID int64) ([]domain.Reimbursement, error)
	getByTypeFn   func(ctx context.Context, reimbType string) ([]domain.Reimbursement, error)
	getByStatusFn func(ctx context.Context, status string) ([]domain.Reimbursement, error)
	addFn         func(ctx context.Context, input ports.NewReimbInput) (*domain.Reimbursement, error)
	resolveFn     func(ctx context.Context, input ports.ResolveReimbInput) (bool, error)
	updateFn      func(ctx context.Context, input ports.UpdateReimbInput) (bool, error)
	deleteFn      func(ctx context.Context, lookup ports.Lookup) (bool, error)
}

func (s *stubReimbService) GetAllReimb(ctx context.Context) ([]domain.Reimbursement, error) {
	return s.getAllFn(ctx)
}

func (s *stubReimbService) GetReimbByID(ctx context.Context, id int64) (*domain.Reimbursement, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubReimbService) GetReimbByUniqueKey(ctx context.Context, lookup ports.Lookup) (*domain.Reimbursement, error) {
	return s.getByKeyFn(ctx, lookup)
}

func (s *stubReimbService) GetAllReimbByAuthor(ctx context.Context, authorID int64) ([]domain.Reimbursement, error) {
	return s.getByAuthorFn(ctx, authorID)
}

func (s *stubReimbService) GetAllReimbByType(ctx context.Context, reimbType string) ([]domain.Reimbursement, error) {
	return s.getByTypeFn(ctx, reimbType)
}

func (s *stubReimbService) GetAllReimbByStatus(ctx context.Context, status string) ([]domain.Reimbursement, error) {
	return s.getByStatusFn(ctx, status)
}

func (s *stubReimbService) AddNewReimb(ctx context.Context, input ports.NewReimbInput) (*domain.Reimbursement, error) {
	return s.addFn(ctx, input)
}

func (s *stubReimbService) ResolveReimb(ctx context.Context, input ports.ResolveReimbInput) (bool, error) {
	return s.resolveFn(ctx, input)
}

func (s *stubReimbService) UpdateReimb(ctx context.Context, input ports.UpdateReimbInput) (bool, error) {
	return s.updateFn(ctx, input)
}

func (s *stubReimbService) DeleteReimbByID(ctx context.Context, lookup ports.Lookup) (bool, error) {
	return s.deleteFn(ctx, lookup)
}

// reimbContext builds an echo context carrying the claims the Auth
// middleware would have injected.
func reimbContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID int64, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c
}

func TestReimbHandler_Create_AuthorFromToken(t *testing.T) {
	e := newTestEcho()
	var got ports.NewReimbInput
	stub := &stubReimbService{
		addFn: func(_ context.Context, input ports.NewReimbInput) (*domain.Reimbursement, error) {
			got = input
			return &domain.Reimbursement{ID: 1, AuthorID: input.AuthorID, Status: domain.StatusPending, Type: domain.ReimbType(input.Type)}, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := strings.NewReader(`{"amount":55.20,"description":"team lunch","reimb_type":"food","author_id":999}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/reimbursements", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "req-42")
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 7, domain.RoleEmployee)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.AuthorID != 7 {
		t.Errorf("author id = %d, want the token's user id 7", got.AuthorID)
	}
	if got.IdempotencyKey != "req-42" {
		t.Errorf("idempotency key = %q, want req-42", got.IdempotencyKey)
	}
}

func TestReimbHandler_Create_InvalidType(t *testing.T) {
	e := newTestEcho()
	stub := &stubReimbService{
		addFn: func(context.Context, ports.NewReimbInput) (*domain.Reimbursement, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := strings.NewReader(`{"amount":55.20,"description":"x","reimb_type":"misc"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/reimbursements", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 7, domain.RoleEmployee)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestReimbHandler_Create_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewReimbHandler(&stubReimbService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/reimbursements", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims set

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestReimbHandler_Resolve_ResolverFromToken(t *testing.T) {
	e := newTestEcho()
	var got ports.ResolveReimbInput
	stub := &stubReimbService{
		resolveFn: func(_ context.Context, input ports.ResolveReimbInput) (bool, error) {
			got = input
			return true, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := strings.NewReader(`{"reimb_status":"approved"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/reimbursements/3/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 12, domain.RoleFinance)
	c.SetPath("/v1/reimbursements/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Resolve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.ID != 3 || got.ResolverID != 12 || got.Status != "approved" {
		t.Errorf("unexpected resolve input: %+v", got)
	}
}

func TestReimbHandler_Resolve_RejectsPendingTarget(t *testing.T) {
	e := newTestEcho()
	stub := &stubReimbService{
		resolveFn: func(context.Context, ports.ResolveReimbInput) (bool, error) {
			t.Fatal("service must not be called")
			return false, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := strings.NewReader(`{"reimb_status":"pending"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/reimbursements/3/status", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 12, domain.RoleFinance)
	c.SetPath("/v1/reimbursements/:id/status")
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := handler.Resolve(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-terminal status, got %v", err)
	}
}

func TestReimbHandler_GetByAuthor_EmployeeOwnOnly(t *testing.T) {
	e := newTestEcho()
	stub := &stubReimbService{
		getByAuthorFn: func(_ context.Context, authorID int64) ([]domain.Reimbursement, error) {
			return []domain.Reimbursement{{ID: 1, AuthorID: authorID}}, nil
		},
	}
	handler := NewReimbHandler(stub)

	// Employee 7 reading their own submissions: allowed.
	req := httptest.NewRequest(http.MethodGet, "/v1/reimbursements/author/7", nil)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 7, domain.RoleEmployee)
	c.SetPath("/v1/reimbursements/author/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.GetByAuthor(c); err != nil {
		t.Fatalf("own submissions: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Employee 7 reading someone else's: forbidden.
	req = httptest.NewRequest(http.MethodGet, "/v1/reimbursements/author/8", nil)
	rec = httptest.NewRecorder()
	c = reimbContext(e, req, rec, 7, domain.RoleEmployee)
	c.SetPath("/v1/reimbursements/author/:id")
	c.SetParamNames("id")
	c.SetParamValues("8")

	if err := handler.GetByAuthor(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Finance reading anyone's: allowed.
	req = httptest.NewRequest(http.MethodGet, "/v1/reimbursements/author/8", nil)
	rec = httptest.NewRecorder()
	c = reimbContext(e, req, rec, 12, domain.RoleFinance)
	c.SetPath("/v1/reimbursements/author/:id")
	c.SetParamNames("id")
	c.SetParamValues("8")

	if err := handler.GetByAuthor(c); err != nil {
		t.Fatalf("finance read: %v", err)
	}
}

func TestReimbHandler_GetAll_QueryBecomesLookup(t *testing.T) {
	e := newTestEcho()
	var got ports.Lookup
	stub := &stubReimbService{
		getByKeyFn: func(_ context.Context, lookup ports.Lookup) (*domain.Reimbursement, error) {
			got = lookup
			return &domain.Reimbursement{ID: 5}, nil
		},
	}
	handler := NewReimbHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/reimbursements?description=taxi", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Field != "description" || got.Value != "taxi" {
		t.Errorf("lookup = %+v, want description=taxi", got)
	}
}

func TestReimbHandler_GetAll_RejectsMultipleQueryPairs(t *testing.T) {
	e := newTestEcho()
	handler := NewReimbHandler(&stubReimbService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reimbursements?description=taxi&amount=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetAll(c); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for multiple pairs, got %v", err)
	}
}

func TestReimbHandler_Update_EmployeeOwnOnly(t *testing.T) {
	e := newTestEcho()
	stub := &stubReimbService{
		getByIDFn: func(_ context.Context, id int64) (*domain.Reimbursement, error) {
			return &domain.Reimbursement{ID: id, AuthorID: 7, Status: domain.StatusPending}, nil
		},
		updateFn: func(_ context.Context, input ports.UpdateReimbInput) (bool, error) {
			return true, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := `{"reimb_id":3,"amount":42.00,"description":"taxi","reimb_type":"travel"}`

	// Employee 7 editing their own pending submission: allowed.
	req := httptest.NewRequest(http.MethodPut, "/v1/reimbursements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 7, domain.RoleEmployee)

	if err := handler.Update(c); err != nil {
		t.Fatalf("own edit: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Employee 8 editing someone else's: forbidden.
	req = httptest.NewRequest(http.MethodPut, "/v1/reimbursements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = reimbContext(e, req, rec, 8, domain.RoleEmployee)

	if err := handler.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// Finance and admin skip the ownership fetch entirely.
func TestReimbHandler_Update_FinanceEditsAnyones(t *testing.T) {
	e := newTestEcho()
	stub := &stubReimbService{
		getByIDFn: func(context.Context, int64) (*domain.Reimbursement, error) {
			t.Fatal("ownership fetch must not run for finance")
			return nil, nil
		},
		updateFn: func(_ context.Context, input ports.UpdateReimbInput) (bool, error) {
			if input.ID != 3 {
				t.Fatalf("id = %d, want 3", input.ID)
			}
			return true, nil
		},
	}
	handler := NewReimbHandler(stub)

	body := `{"reimb_id":3,"amount":42.00,"description":"taxi","reimb_type":"travel"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/reimbursements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 12, domain.RoleFinance)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReimbHandler_Delete_PassesIDLookup(t *testing.T) {
	e := newTestEcho()
	var got ports.Lookup
	stub := &stubReimbService{
		deleteFn: func(_ context.Context, lookup ports.Lookup) (bool, error) {
			got = lookup
			return true, nil
		},
	}
	handler := NewReimbHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/reimbursements/9", nil)
	rec := httptest.NewRecorder()
	c := reimbContext(e, req, rec, 1, domain.RoleAdmin)
	c.SetPath("/v1/reimbursements/:id")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Field != domain.ReimbIDField || got.Value != "9" {
		t.Errorf("lookup = %+v, want reimb_id=9", got)
	}
}
