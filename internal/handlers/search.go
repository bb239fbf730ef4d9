package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sermon-archive-search-api/internal/models"
	"github.com/sermon-archive-search-api/internal/repository"
	"github.com/sermon-archive-search-api/internal/services"
)

// SearchHandler handles search endpoints
type SearchHandler struct {
	relevance *services.RelevanceService
	snippets  *services.SnippetService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(relevance *services.RelevanceService, snippets *services.SnippetService) *SearchHandler {
	return &SearchHandler{
		relevance: relevance,
		snippets:  snippets,
	}
}

// Search handles POST /search - ranked sermon search
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	// Empty queries yield an empty result set, never an error; the service
	// also clamps out-of-range pagination.
	resp, err := h.relevance.Search(ctx, req)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchSeries handles POST /search/series - ranked series search
func (h *SearchHandler) SearchSeries(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	results, hasMore, err := h.relevance.SearchSeries(ctx, req)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":    req.Query,
		"results":  results,
		"has_more": hasMore,
	})
}

// Snippets handles POST /search/snippets - highlighted transcript excerpts
func (h *SearchHandler) Snippets(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SnippetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp, err := h.snippets.SermonSnippets(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
		}
		return storeError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// storeError maps store-unavailable failures to 503 so clients can tell
// "search could not run" from "search found nothing".
func storeError(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Document store unavailable")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Search failed: "+err.Error())
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.Search)
	g.POST("/search/series", h.SearchSeries)
	g.POST("/search/snippets", h.Snippets)
}
