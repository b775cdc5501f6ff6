package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

// Profile handles GET /api/users/me.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.service.Profile(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PATCH /api/users/me. Keys left out are unchanged;
// null clears the attribute.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.ProfilePatch  true  "Attributes to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var patch domain.ProfilePatch
	if err := bindPatch(c, &patch); err != nil {
		return err
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), identity.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /api/users/me/password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.ChangePassword(c.Request().Context(), identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
