package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"hotspot/internal/dashboard"
	"hotspot/internal/export"
	"hotspot/internal/models"
	"hotspot/internal/render"
)

const (
	mimeXLSX          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

var errLoading = errors.New("dataset loading")

// Handler serves the dashboard API. It answers 503 until a Controller is set.
type Handler struct {
	ctrl atomic.Pointer[dashboard.Controller]
}

func NewHandler(ctrl *dashboard.Controller) *Handler {
	h := &Handler{}
	if ctrl != nil {
		h.ctrl.Store(ctrl)
	}
	return h
}

// SetController publishes a loaded dataset to the live API.
func (h *Handler) SetController(ctrl *dashboard.Controller) {
	h.ctrl.Store(ctrl)
}

// CheckReadiness reports an error until the dataset is loaded.
func (h *Handler) CheckReadiness() error {
	if h.ctrl.Load() == nil {
		return errLoading
	}
	return nil
}

// RegisterRoutes mounts the API under /api. Extra middleware runs before the
// dataset check.
func (h *Handler) RegisterRoutes(e *echo.Echo, m ...echo.MiddlewareFunc) {
	api := e.Group("/api", append(m, h.requireData)...)
	api.GET("/meta", h.GetMeta)
	api.GET("/years", h.GetYears)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/charts/:chart", h.GetChart)
	api.GET("/charts/:chart/png", h.GetChartPNG)
	api.GET("/export.xlsx", h.GetExport)
}

func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.ctrl.Load() == nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": errLoading.Error()})
		}
		return next(c)
	}
}

// --- HELPERS ---

// selectedYear reads ?year=, falling back to the dashboard's default year.
func selectedYear(c echo.Context, ctrl *dashboard.Controller) (int, error) {
	s := c.QueryParam("year")
	if s == "" {
		return ctrl.DefaultYear(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid year %q", s))
	}
	return year, nil
}

func (h *Handler) render(c echo.Context) (*models.Dashboard, error) {
	ctrl := h.ctrl.Load()
	year, err := selectedYear(c, ctrl)
	if err != nil {
		return nil, err
	}
	return ctrl.Render(year), nil
}

func (h *Handler) chart(c echo.Context) (any, error) {
	name := c.Param("chart")
	if !slices.Contains(dashboard.Charts, name) {
		return nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("%v: %q", dashboard.ErrUnknownChart, name))
	}
	d, err := h.render(c)
	if err != nil {
		return nil, err
	}
	chart, err := dashboard.Chart(d, name)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return chart, nil
}

// --- HANDLERS ---

func (h *Handler) GetMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ctrl.Load().Meta())
}

func (h *Handler) GetYears(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ctrl.Load().Dataset().Years())
}

// GetDashboard returns all five charts for a year, with an ETag over the body.
func (h *Handler) GetDashboard(c echo.Context) error {
	d, err := h.render(c)
	if err != nil {
		return err
	}

	// GeneratedAt changes every cycle; hash only the chart content.
	body, err := json.Marshal(struct {
		*models.Dashboard
		GeneratedAt any `json:"generated_at,omitempty"`
	}{Dashboard: d})
	if err != nil {
		return err
	}
	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set(headerETag, etag)
	if c.Request().Header.Get(headerIfNoneMatch) == etag {
		return c.NoContent(http.StatusNotModified)
	}

	return c.JSON(http.StatusOK, d)
}

func (h *Handler) GetChart(c echo.Context) error {
	chart, err := h.chart(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chart)
}

func (h *Handler) GetChartPNG(c echo.Context) error {
	chart, err := h.chart(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.Chart(&buf, chart); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) GetExport(c echo.Context) error {
	d, err := h.render(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, d); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="titik-api-%d.xlsx"`, d.Year))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
