package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"venicelocal/internal/service"
)

// ProfileHandler handles the signed-in user's profile.
type ProfileHandler struct {
	authService service.AuthService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(authService service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// UpdateAvatarRequest carries the new profile photo: a URL or an inline
// data URL produced by the client.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

// Me godoc
// @Summary Get the signed-in user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(*user))
}

// UpdateAvatar godoc
// @Summary Update the signed-in user's profile photo
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateAvatarRequest true "New avatar"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/avatar [put]
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	var req UpdateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.UpdateAvatar(c.Request().Context(), userID, req.Avatar)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(*user))
}
