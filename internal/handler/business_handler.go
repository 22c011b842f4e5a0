package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"venicelocal/internal/catalog"
	"venicelocal/internal/service"
)

// BusinessHandler handles catalog browsing and listing management.
type BusinessHandler struct {
	catalogService service.CatalogService
}

// NewBusinessHandler creates a new business handler.
func NewBusinessHandler(catalogService service.CatalogService) *BusinessHandler {
	return &BusinessHandler{catalogService: catalogService}
}

// BusinessRequest carries the descriptive fields of a listing.
type BusinessRequest struct {
	Name             string `json:"name" validate:"required"`
	Category         string `json:"category" validate:"required"`
	Address          string `json:"address" validate:"required"`
	ShortDescription string `json:"shortDescription" validate:"required"`
	Hours            string `json:"hours" validate:"required"`
	SpecialDeals     string `json:"specialDeals"`
}

func (r BusinessRequest) toInput() catalog.BusinessInput {
	return catalog.BusinessInput{
		Name:             r.Name,
		Category:         r.Category,
		Address:          r.Address,
		ShortDescription: r.ShortDescription,
		Hours:            r.Hours,
		SpecialDeals:     r.SpecialDeals,
	}
}

// ReviewRequest carries a review submission. Verify is the typed
// confirmation word.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
	Verify  string `json:"verify" validate:"required"`
}

// List godoc
// @Summary List businesses with optional filter and sort
// @Tags businesses
// @Produce json
// @Param search query string false "Search term matched against name or description"
// @Param category query string false "Category, or 'all'"
// @Param sort query string false "Sort key" Enums(none, rating, reviews, alpha)
// @Success 200 {array} model.Business
// @Router /businesses [get]
func (h *BusinessHandler) List(c echo.Context) error {
	q := catalog.Query{
		SearchTerm: c.QueryParam("search"),
		Category:   c.QueryParam("category"),
		SortBy:     catalog.ParseSortKey(c.QueryParam("sort")),
	}
	return c.JSON(http.StatusOK, h.catalogService.ListBusinesses(c.Request().Context(), q))
}

// Get godoc
// @Summary Get one business with its reviews
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} model.Business
// @Failure 404 {object} errors.ErrorResponse
// @Router /businesses/{id} [get]
func (h *BusinessHandler) Get(c echo.Context) error {
	business, err := h.catalogService.GetBusiness(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, business)
}

// Create godoc
// @Summary Add a new listing owned by the signed-in user
// @Tags businesses
// @Accept json
// @Produce json
// @Param request body BusinessRequest true "Listing fields"
// @Success 201 {object} model.Business
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /businesses [post]
func (h *BusinessHandler) Create(c echo.Context) error {
	var req BusinessRequest
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

	business, err := h.catalogService.AddBusiness(c.Request().Context(), req.toInput(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, business)
}

// Update godoc
// @Summary Edit a listing's descriptive fields (owner only)
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body BusinessRequest true "Listing fields"
// @Success 200 {object} model.Business
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /businesses/{id} [put]
func (h *BusinessHandler) Update(c echo.Context) error {
	var req BusinessRequest
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

	business, err := h.catalogService.EditBusiness(c.Request().Context(), c.Param("id"), req.toInput(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, business)
}

// AddReview godoc
// @Summary Leave a review on a business
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body ReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /businesses/{id}/reviews [post]
func (h *BusinessHandler) AddReview(c echo.Context) error {
	var req ReviewRequest
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

	review, err := h.catalogService.AddReview(c.Request().Context(), c.Param("id"), userID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		Verify:  req.Verify,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, review)
}
