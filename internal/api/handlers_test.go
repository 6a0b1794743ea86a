package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"co2board/internal/engine"
	"co2board/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *engine.Store {
	day := func(d string) time.Time {
		t, _ := time.Parse("2006-01-02", d)
		return t
	}
	rec := func(region, date, sector string, emissions float64) models.EmissionRecord {
		dt := day(date)
		return models.EmissionRecord{
			Region: region, Date: dt, Sector: sector, Emissions: emissions,
			Year: dt.Year(), MonthName: dt.Month().String(),
		}
	}
	return engine.NewStore([]models.EmissionRecord{
		rec("Shandong", "2023-01-01", "Power", 10.0),
		rec("Shandong", "2023-01-01", "Industry", 5.0),
		rec("Beijing", "2023-01-02", "Power", 2.0),
	})
}

func doGet(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesAnswer503BeforeLoad(t *testing.T) {
	h := NewHandler(nil, 5)

	for _, target := range []string{
		"/api/health", "/api/meta", "/api/dashboard", "/api/regions/top", "/api/scenario",
	} {
		rec := doGet(h, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}

	// Publishing the store flips the API to ready.
	h.SetStore(testStore())
	assert.Equal(t, http.StatusOK, doGet(h, "/api/health").Code)
}

func TestGetMeta(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/meta")
	require.Equal(t, http.StatusOK, rec.Code)

	var meta models.Meta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.NotEmpty(t, meta.DatasetID)
	assert.Equal(t, 3, meta.RecordCount)
	assert.Equal(t, []int{2023}, meta.Years)
	assert.Equal(t, []string{"Beijing", "Shandong"}, meta.Regions)
	assert.Equal(t, []string{"Industry", "Power"}, meta.Sectors)
	assert.Equal(t, []string{"Shandong", "Beijing"}, meta.DefaultRegions)
}

func TestGetDashboardUnfiltered(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 3, data.RecordCount)
	assert.Equal(t, 17.0, data.TotalEmissions)
	require.NotNil(t, data.MeanDailyEmissions)
	require.Len(t, data.TimeSeries, 2)
	assert.Equal(t, "2023-01-01", data.TimeSeries[0].Date)
}

func TestGetDashboardFiltered(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/dashboard?years=2023&sectors=Power")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 2, data.RecordCount)
	assert.Equal(t, 12.0, data.TotalEmissions)
	require.Len(t, data.BySector, 1)
	assert.Equal(t, "Power", data.BySector[0].Sector)
}

func TestGetDashboardCommaSeparatedParams(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/dashboard?regions=Shandong,Beijing&sectors=Power")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 2, data.RecordCount)
}

func TestGetDashboardNoMatch(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/dashboard?regions=Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 0, data.RecordCount)
	assert.Nil(t, data.MeanDailyEmissions)
}

func TestGetDashboardBadYear(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/dashboard?years=twenty23")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTopRegions(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/regions/top?n=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var top []models.RegionTotal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 1)
	assert.Equal(t, models.RegionTotal{Region: "Shandong", Emissions: 15.0}, top[0])
}

func TestGetScenario(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/scenario?sector=Industry&gain=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var res models.ScenarioResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 5.0, res.SectorTotal)
	assert.Equal(t, 0.5, res.Savings)
}

func TestGetScenarioBadGain(t *testing.T) {
	h := NewHandler(testStore(), 5)
	rec := doGet(h, "/api/scenario?gain=lots")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
