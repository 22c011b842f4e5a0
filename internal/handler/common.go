package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"venicelocal/internal/auth"
	"venicelocal/internal/avatar"
	"venicelocal/internal/errors"
	"venicelocal/internal/model"
)

// UserResponse is the public view of a user. The password hash never
// leaves the service.
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

func newUserResponse(u model.User) UserResponse {
	a := u.Avatar
	if a == "" {
		a = avatar.Placeholder(u.Name)
	}
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
		Avatar: a,
	}
}

// respondError maps a domain error onto the standard JSON error body.
func respondError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// identity extracts the authenticated user id and role from the JWT
// middleware context.
func identity(c echo.Context) (userID string, role model.Role, err error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims.UserID, claims.Role, nil
}
