package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sermon-archive-search-api/internal/repository"
	"github.com/sermon-archive-search-api/internal/services"
)

// BrowseHandler handles browse-by-dimension endpoints
type BrowseHandler struct {
	repo repository.DocumentRepository
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(repo repository.DocumentRepository) *BrowseHandler {
	return &BrowseHandler{repo: repo}
}

// Dimensions handles GET /browse/dimensions - enumerate the registry
func (h *BrowseHandler) Dimensions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"dimensions": services.Dimensions(),
	})
}

// DimensionValues handles GET /browse/:dimension - distinct values of one dimension
func (h *BrowseHandler) DimensionValues(c echo.Context) error {
	dim, ok := services.LookupDimension(c.Param("dimension"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown browse dimension")
	}

	values, err := h.repo.ListDimensionValues(c.Request().Context(), dim.Attribute, dim.Scalar)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"dimension": dim,
		"values":    values,
	})
}

// RegisterRoutes registers browse routes
func (h *BrowseHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/browse/dimensions", h.Dimensions)
	g.GET("/browse/:dimension", h.DimensionValues)
}
