package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

func at(day, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func createTestAnalytics() *services.Analytics {
	orders := []models.Order{
		{OrderID: "o1", CustomerID: "c1", PurchasedAt: at("2017-01-01", "10:00:00"), Price: decimal.NewFromInt(50)},
		{OrderID: "o1", CustomerID: "c1", PurchasedAt: at("2017-01-01", "10:00:00"), Price: decimal.NewFromInt(30)},
		{OrderID: "o2", CustomerID: "c2", PurchasedAt: at("2017-01-03", "18:20:00"), Price: decimal.RequireFromString("19.90")},
		{OrderID: "o3", CustomerID: "c3", PurchasedAt: at("2017-01-05", "23:59:59"), Price: decimal.NewFromInt(200)},
	}
	customers := []models.Customer{
		{CustomerID: "c1", CustomerUniqueID: "u1", City: "sao paulo", State: "SP"},
		{CustomerID: "c2", CustomerUniqueID: "u2", City: "sao paulo", State: "SP"},
		{CustomerID: "c3", CustomerUniqueID: "u3", City: "curitiba", State: "PR"},
	}
	rfm := []models.RFM{
		{CustomerUniqueID: "u1", Recency: 12, Frequency: 1, Monetary: decimal.NewFromInt(80)},
		{CustomerUniqueID: "u2", Recency: 3, Frequency: 2, Monetary: decimal.RequireFromString("619.90")},
		{CustomerUniqueID: "u3", Recency: 40, Frequency: 1, Monetary: decimal.NewFromInt(2000)},
	}

	data := dataset.New(
		orders,
		customers,
		rfm,
		[]models.TopProduct{{Category: "papelaria", ReviewCount: 58}, {Category: "bebes", ReviewCount: 40}},
		[]models.TopRegion{{City: "rio de janeiro", TotalSales: decimal.NewFromInt(13440)}},
		"<p>map</p>",
	)
	return services.NewAnalytics(data, testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func TestNewAPIHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	handlers := NewAPIHandlers(analytics, testLogger())

	require.NotNil(t, handlers)
	assert.Same(t, analytics, handlers.analytics)
}

func TestAPIHandlers_HandleDailyOrders(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/daily-orders?start=2017-01-01&end=2017-01-03", nil)
	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var resp struct {
		Totals struct {
			TotalOrders  int    `json:"total_orders"`
			TotalRevenue string `json:"total_revenue"`
		} `json:"totals"`
		Daily []struct {
			Date       time.Time `json:"date"`
			OrderCount int       `json:"order_count"`
			Revenue    string    `json:"revenue"`
		} `json:"daily_orders"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))

	assert.Equal(t, 2, resp.Totals.TotalOrders)
	assert.Equal(t, "99.9", resp.Totals.TotalRevenue)

	require.Len(t, resp.Daily, 3)
	assert.Equal(t, 1, resp.Daily[0].OrderCount)
	assert.Equal(t, "80", resp.Daily[0].Revenue)
	assert.Equal(t, 0, resp.Daily[1].OrderCount)
	assert.Equal(t, time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC), resp.Daily[2].Date)
}

func TestAPIHandlers_HandleDailyOrdersDefaultsToBounds(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/daily-orders", nil)
	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Totals models.Totals         `json:"totals"`
		Daily  []models.DailyOrders `json:"daily_orders"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resp))
	assert.Equal(t, 3, resp.Totals.Orders)
	assert.Len(t, resp.Daily, 5)
}

func TestAPIHandlers_HandleDailyOrdersInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"end before start", "?start=2017-01-05&end=2017-01-01", "INVALID_DATE_RANGE"},
		{"bad start", "?start=01/05/2017", "VALIDATION_ERROR"},
		{"bad end", "?end=2017-13-01", "VALIDATION_ERROR"},
	}

	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/daily-orders"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleDailyOrders(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAPIHandlers_HandleDailyOrdersEmptyRange(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/daily-orders?start=2017-01-02&end=2017-01-02", nil)
	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Totals models.Totals         `json:"totals"`
		Daily  []models.DailyOrders `json:"daily_orders"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resp))
	assert.Equal(t, 0, resp.Totals.Orders)
	assert.Empty(t, resp.Daily)
}

func TestAPIHandlers_Demographics(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	t.Run("by state", func(t *testing.T) {
		w := httptest.NewRecorder()
		handlers.HandleByState(w, httptest.NewRequest(http.MethodGet, "/api/customers/by-state", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cacheMaxAge, w.Header().Get("Cache-Control"))

		var states []models.StateCount
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &states))
		assert.Equal(t, []models.StateCount{{State: "SP", CustomerCount: 2}, {State: "PR", CustomerCount: 1}}, states)
	})

	t.Run("by city with limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		handlers.HandleByCity(w, httptest.NewRequest(http.MethodGet, "/api/customers/by-city?limit=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var cities []models.CityCount
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &cities))
		assert.Equal(t, []models.CityCount{{City: "sao paulo", CustomerCount: 2}}, cities)
	})
}

func TestAPIHandlers_InvalidLimit(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	for _, limit := range []string{"abc", "-1", "1.5"} {
		t.Run(limit, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.HandleTopProducts(w, httptest.NewRequest(http.MethodGet, "/api/top-products?limit="+limit, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		})
	}
}

func TestAPIHandlers_Rankings(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleTopProducts(w, httptest.NewRequest(http.MethodGet, "/api/top-products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.TopProduct
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &products))
	assert.Len(t, products, 2)
	assert.Equal(t, "papelaria", products[0].Category)

	w = httptest.NewRecorder()
	handlers.HandleTopRegions(w, httptest.NewRequest(http.MethodGet, "/api/top-regions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var regions []models.TopRegion
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &regions))
	require.Len(t, regions, 1)
	assert.True(t, regions[0].TotalSales.Equal(decimal.NewFromInt(13440)))
}

func TestAPIHandlers_SpendingGroups(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleSpendingGroups(w, httptest.NewRequest(http.MethodGet, "/api/spending-groups", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var counts []models.SpendingGroupCount
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &counts))
	assert.Equal(t, []models.SpendingGroupCount{
		{Group: models.LowSpender, Count: 1},
		{Group: models.MediumSpender, Count: 0},
		{Group: models.HighSpender, Count: 1},
		{Group: models.VeryHighSpender, Count: 1},
	}, counts)
}

func TestAPIHandlers_BestCustomers(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleBestCustomers(w, httptest.NewRequest(http.MethodGet, "/api/rfm/best", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var best models.BestCustomers
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &best))
	assert.Equal(t, "u2", best.ByRecency[0].CustomerUniqueID)
	assert.Equal(t, "u2", best.ByFrequency[0].CustomerUniqueID)
	assert.Equal(t, "u3", best.ByMonetary[0].CustomerUniqueID)
	assert.Equal(t, models.VeryHighSpender, best.ByMonetary[0].SpendingGroup)
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &health))
	assert.Equal(t, "healthy", health["status"])
	assert.NotEmpty(t, health["timestamp"])
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleStats(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &stats))
	assert.EqualValues(t, 4, stats["order_rows"])
	assert.Equal(t, true, stats["has_map"])
}
