package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"venicelocal/internal/service"
)

// FavoriteHandler handles per-user favorite sets.
type FavoriteHandler struct {
	catalogService service.CatalogService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(catalogService service.CatalogService) *FavoriteHandler {
	return &FavoriteHandler{catalogService: catalogService}
}

// ToggleFavoriteResponse reports whether the business was added to the
// favorite set.
type ToggleFavoriteResponse struct {
	Added bool `json:"added"`
}

// Toggle godoc
// @Summary Toggle a business in the signed-in user's favorites
// @Tags favorites
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} ToggleFavoriteResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /businesses/{id}/favorite [post]
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}

	added, err := h.catalogService.ToggleFavorite(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ToggleFavoriteResponse{Added: added})
}

// List godoc
// @Summary List the signed-in user's favorite businesses
// @Tags favorites
// @Produce json
// @Success 200 {array} model.Business
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, _, err := identity(c)
	if err != nil {
		return err
	}

	favorites, err := h.catalogService.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, favorites)
}
