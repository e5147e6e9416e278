package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nimbusworks/user-directory/internal/api/metrics"
	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// UserHandler handles HTTP requests for the users resource.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List users with filters, pagination and sorting
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username    query     string  false  "Case-insensitive substring filter"
// @Param        age         query     int     false  "Exact age filter"
// @Param        min_age     query     int     false  "Inclusive lower age bound"
// @Param        max_age     query     int     false  "Inclusive upper age bound"
// @Param        skip        query     int     false  "Records to skip"        default(0)
// @Param        limit       query     int     false  "Page size (max 100)"    default(10)
// @Param        sort_by     query     string  false  "username or age"        default(username)
// @Param        sort_order  query     string  false  "asc or desc"            default(asc)
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	params := ports.ListUsersParams{
		Username:  c.QueryParam("username"),
		Age:       c.QueryParam("age"),
		MinAge:    c.QueryParam("min_age"),
		MaxAge:    c.QueryParam("max_age"),
		Skip:      c.QueryParam("skip"),
		Limit:     c.QueryParam("limit"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}

	result, err := h.service.List(c.Request().Context(), callerIdentity(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okWithTotal("Users fetched successfully", toUserResponses(result.Users), result.Total))
}

// Get handles GET /users/:id.
//
// @Summary      Get a single user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), callerIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User fetched successfully", toUserResponse(user)))
}

// Create handles POST /users/create.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createUserRequest  true  "New user"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      409  {object}  envelope
// @Router       /users/create [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), callerIdentity(c), toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, ok("User successfully created", toUserResponse(user)))
}

// Update handles PUT /users/:id (self or admin).
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateUserRequest  true  "Fields to update"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), callerIdentity(c), c.Param("id"), toUpdateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrNoFieldsToUpdate) {
			return c.JSON(http.StatusOK, envelope{Message: "No fields to update"})
		}
		return err
	}
	return c.JSON(http.StatusOK, ok("User updated successfully", toUserResponse(user)))
}

// UpdateMe handles PUT /users/me.
//
// @Summary      Update the caller's own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  updateUserRequest  true  "Fields to update (role is ignored)"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateSelf(c.Request().Context(), callerIdentity(c), toUpdateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrNoFieldsToUpdate) {
			return c.JSON(http.StatusOK, envelope{Message: "No fields to update"})
		}
		return err
	}
	return c.JSON(http.StatusOK, ok("Your profile updated successfully", toUserResponse(user)))
}

// Delete handles DELETE /users/:id (admin only).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), callerIdentity(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User successfully deleted", nil))
}
