package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// UserHandler serves the staff directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every staff member.
//
//	GET /api/users -> [user]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// UpdateRole changes a user's role. :id is the user's platform id.
//
//	POST /api/users/:id/role {role} -> user
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(*user))
}
