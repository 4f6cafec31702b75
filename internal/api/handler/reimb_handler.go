package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/corpfin/reimbursement-system/internal/api/metrics"
	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
)

// ReimbHandler handles HTTP requests for reimbursement operations.
type ReimbHandler struct {
	service ports.ReimbService
}

func NewReimbHandler(service ports.ReimbService) *ReimbHandler {
	return &ReimbHandler{service: service}
}

// GetAll handles GET /v1/reimbursements. A query string turns the request
// into a unique-key fetch, mirroring the user listing.
//
// @Summary      List all reimbursements, or fetch one by an arbitrary field
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   reimbResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reimbursements [get]
func (h *ReimbHandler) GetAll(c echo.Context) error {
	params := c.QueryParams()
	if len(params) > 0 {
		lookup, err := singleLookup(params)
		if err != nil {
			return err
		}
		reimb, err := h.service.GetReimbByUniqueKey(c.Request().Context(), lookup)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toReimbResponse(reimb))
	}

	reimbs, err := h.service.GetAllReimb(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbListResponse(reimbs))
}

// GetByID handles GET /v1/reimbursements/:id.
//
// @Summary      Get a reimbursement by id
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Reimbursement id"
// @Success      200  {object}  reimbResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reimbursements/{id} [get]
func (h *ReimbHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}

	reimb, err := h.service.GetReimbByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbResponse(reimb))
}

// GetByAuthor handles GET /v1/reimbursements/author/:id. Employees may only
// list their own submissions; finance and admin may list anyone's.
//
// @Summary      List all reimbursements submitted by a user
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Author user id"
// @Success      200  {array}   reimbResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reimbursements/author/{id} [get]
func (h *ReimbHandler) GetByAuthor(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid author id", domain.ErrBadRequest)
	}
	if role == domain.RoleEmployee && authorID != userID {
		return domain.ErrForbidden
	}

	reimbs, err := h.service.GetAllReimbByAuthor(c.Request().Context(), authorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbListResponse(reimbs))
}

// GetByStatus handles GET /v1/reimbursements/status/:status.
//
// @Summary      List all reimbursements in a status
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "Status (pending, approved, denied)"
// @Success      200     {array}   reimbResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /v1/reimbursements/status/{status} [get]
func (h *ReimbHandler) GetByStatus(c echo.Context) error {
	reimbs, err := h.service.GetAllReimbByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbListResponse(reimbs))
}

// GetByType handles GET /v1/reimbursements/type/:type.
//
// @Summary      List all reimbursements of a category
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Category (lodging, travel, food, other)"
// @Success      200   {array}   reimbResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reimbursements/type/{type} [get]
func (h *ReimbHandler) GetByType(c echo.Context) error {
	reimbs, err := h.service.GetAllReimbByType(c.Request().Context(), c.Param("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReimbListResponse(reimbs))
}

// Create handles POST /v1/reimbursements. The author is taken from the
// token, never from the body, and an optional Idempotency-Key header guards
// against double submission.
//
// @Summary      Submit a reimbursement
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Key to prevent duplicate submissions"
// @Param        body             body      newReimbRequest  true   "Reimbursement details"
// @Success      201              {object}  reimbResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/reimbursements [post]
func (h *ReimbHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req newReimbRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reimb, err := h.service.AddNewReimb(c.Request().Context(), ports.NewReimbInput{
		Amount:         req.Amount,
		Description:    req.Description,
		Type:           req.Type,
		AuthorID:       userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	metrics.ReimbSubmittedTotal.WithLabelValues(string(reimb.Type)).Inc()
	return c.JSON(http.StatusCreated, toReimbResponse(reimb))
}

// Resolve handles PUT /v1/reimbursements/:id/status — the single allowed
// transition out of pending. The resolver is taken from the token.
//
// @Summary      Approve or deny a pending reimbursement
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Reimbursement id"
// @Param        body  body      resolveReimbRequest  true  "Terminal status"
// @Success      200   {object}  updatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reimbursements/{id}/status [put]
func (h *ReimbHandler) Resolve(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid reimbursement id", domain.ErrBadRequest)
	}

	var req resolveReimbRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.service.ResolveReimb(c.Request().Context(), ports.ResolveReimbInput{
		ID:         id,
		Status:     req.Status,
		ResolverID: userID,
	})
	if err != nil {
		return err
	}

	metrics.ReimbResolvedTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, updatedResponse{Updated: ok})
}

// Update handles PUT /v1/reimbursements — an author editing a pending
// submission. Employees may only edit their own reimbursements; finance and
// admin may edit anyone's.
//
// @Summary      Edit a pending reimbursement
// @Tags         reimbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateReimbRequest  true  "Editable fields"
// @Success      200   {object}  updatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reimbursements [put]
func (h *ReimbHandler) Update(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateReimbRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if role == domain.RoleEmployee {
		current, err := h.service.GetReimbByID(c.Request().Context(), req.ID)
		if err != nil {
			return err
		}
		if current.AuthorID != userID {
			return domain.ErrForbidden
		}
	}

	ok, err := h.service.UpdateReimb(c.Request().Context(), ports.UpdateReimbInput{
		ID:          req.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updatedResponse{Updated: ok})
}

// Delete handles DELETE /v1/reimbursements/:id. Deletion is unconditional
// regardless of status.
//
// @Summary      Delete a reimbursement by id
// @Tags         reimbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Reimbursement id"
// @Success      200  {object}  deletedResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/reimbursements/{id} [delete]
func (h *ReimbHandler) Delete(c echo.Context) error {
	ok, err := h.service.DeleteReimbByID(c.Request().Context(), ports.Lookup{
		Field: domain.ReimbIDField,
		Value: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: ok})
}
