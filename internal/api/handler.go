package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sortiment/internal/listing"
	"sortiment/internal/repository"
)

// Catalog is the read side the handlers serve. *listing.Service implements
// it.
type Catalog interface {
	ListItems(ctx context.Context, p repository.ListParams) (*listing.Page, error)
	Categories(ctx context.Context, identifier string) (map[int64]string, error)
	Columns() []listing.Column
}

type Handler struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewHandler(catalog Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, logger: logger.Named("api")}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.GetIndex)
	e.GET("/category/:identifier", h.GetCategory)
	e.GET("/items", h.GetItems)
}

type indexData struct {
	Columns []listing.Column
}

func (h *Handler) GetIndex(c echo.Context) error {
	return c.Render(http.StatusOK, indexTemplate, indexData{Columns: h.catalog.Columns()})
}

func (h *Handler) GetCategory(c echo.Context) error {
	labels, err := h.catalog.Categories(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, labels)
}

func (h *Handler) GetItems(c echo.Context) error {
	p := repository.ListParams{
		Offset:  parseInt(c.QueryParam("offset"), 0),
		Limit:   parseInt(c.QueryParam("limit"), -1),
		Sort:    c.QueryParam("sort"),
		Order:   c.QueryParam("order"),
		Filters: parseFilter(c.QueryParam("filter")),
		Search:  c.QueryParam("search"),
	}

	page, err := h.catalog.ListItems(c.Request().Context(), p)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) storeError(c echo.Context, err error) error {
	h.logger.Error("request failed",
		zap.String("path", c.Request().URL.Path),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "store unavailable"})
}

func parseInt(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// parseFilter decodes a JSON object. Anything else is no filter.
func parseFilter(s string) map[string]any {
	if s == "" {
		return nil
	}
	var filters map[string]any
	if err := json.Unmarshal([]byte(s), &filters); err != nil {
		return nil
	}
	return filters
}
