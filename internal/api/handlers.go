package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"co2board/internal/engine"
	"co2board/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler serves dashboard queries against a loaded Store. The store is
// nil until the background load finishes; every data route answers 503
// in the meantime, so the API is live the moment the process starts.
type Handler struct {
	mu         sync.RWMutex
	store      *engine.Store
	topRegions int
}

func NewHandler(store *engine.Store, topRegions int) *Handler {
	return &Handler{store: store, topRegions: topRegions}
}

// SetStore publishes a freshly loaded dataset to the live API.
func (h *Handler) SetStore(s *engine.Store) {
	h.mu.Lock()
	h.store = s
	h.mu.Unlock()
}

func (h *Handler) getStore() *engine.Store {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/meta", h.GetMeta)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/regions/top", h.GetTopRegions)
	api.GET("/scenario", h.GetScenario)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	if h.getStore() == nil {
		return loading(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) GetMeta(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loading(c)
	}
	return c.JSON(http.StatusOK, store.Meta(h.topRegions))
}

// GetDashboard filters the dataset by the query selection and returns
// the full summary. Filtering and aggregation run from scratch on every
// call; the store itself is never touched.
func (h *Handler) GetDashboard(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loading(c)
	}
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}

	filtered := engine.ApplySelection(store.Records, sel)
	return c.JSON(http.StatusOK, engine.Summarize(filtered, h.topRegions))
}

func (h *Handler) GetTopRegions(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loading(c)
	}
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(c.QueryParam("n"))
	if err != nil || n <= 0 {
		n = h.topRegions
	}

	filtered := engine.ApplySelection(store.Records, sel)
	return c.JSON(http.StatusOK, engine.TopNByRegion(filtered, n))
}

// GetScenario runs the what-if efficiency projection over the filtered
// dataset. Defaults mirror the dashboard slider: Industry at 10%.
func (h *Handler) GetScenario(c echo.Context) error {
	store := h.getStore()
	if store == nil {
		return loading(c)
	}
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}

	sector := c.QueryParam("sector")
	if sector == "" {
		sector = "Industry"
	}

	gain := 10.0
	if raw := c.QueryParam("gain"); raw != "" {
		g, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid gain: "+raw)
		}
		gain = g
	}

	filtered := engine.ApplySelection(store.Records, sel)
	return c.JSON(http.StatusOK, engine.ScenarioSavings(filtered, sector, gain))
}

// --- HELPERS ---

// parseSelection builds a FilterSelection from query params. Each
// dimension accepts repeated params or comma-separated lists; an absent
// param leaves that dimension unrestricted.
func parseSelection(c echo.Context) (models.FilterSelection, error) {
	var sel models.FilterSelection
	for _, raw := range splitParams(c.QueryParams()["years"]) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return sel, echo.NewHTTPError(http.StatusBadRequest, "invalid year: "+raw)
		}
		sel.Years = append(sel.Years, year)
	}
	sel.Regions = splitParams(c.QueryParams()["regions"])
	sel.Sectors = splitParams(c.QueryParams()["sectors"])
	return sel, nil
}

func splitParams(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func loading(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{
		"status":  "loading",
		"message": "dataset is still loading",
	})
}
