package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll handles GET /v1/users. With a query string present, the single
// field=value pair is resolved into a typed lookup and the request becomes a
// unique-key fetch; otherwise the full listing is returned.
//
// @Summary      List all users, or fetch one by an arbitrary field
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "Any recognized user field as key"
// @Success      200       {array}   userResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) GetAll(c echo.Context) error {
	params := c.QueryParams()
	if len(params) > 0 {
		lookup, err := singleLookup(params)
		if err != nil {
			return err
		}
		user, err := h.service.GetUserByUniqueKey(c.Request().Context(), lookup)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}

	users, err := h.service.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// GetByID handles GET /v1/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", domain.ErrBadRequest)
	}

	user, err := h.service.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByRole handles GET /v1/users/role/:role.
//
// @Summary      List all users holding a role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "Role name (admin, finance, employee)"
// @Success      200   {array}   userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/role/{role} [get]
func (h *UserHandler) GetByRole(c echo.Context) error {
	users, err := h.service.GetAllUsersByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// Create handles POST /v1/users — admin user creation with an explicit role.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req newUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AddNewUser(c.Request().Context(), ports.NewUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /v1/users.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Full user replacement"
// @Success      200   {object}  updatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.service.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		ID:        req.ID,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updatedResponse{Updated: ok})
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  deletedResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	ok, err := h.service.DeleteUserByID(c.Request().Context(), ports.Lookup{
		Field: domain.UserIDField,
		Value: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: ok})
}
