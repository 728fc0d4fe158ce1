package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseRequest(signals string) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/sse/daily-orders?datastar="+url.QueryEscape(signals), nil)
}

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewSSEHandlers(analytics, logger)

	require.NotNil(t, handlers)
	assert.Same(t, analytics, handlers.analytics)
	assert.Same(t, logger, handlers.logger)
}

func TestSSEHandlers_HandleDailyOrders(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{"startDate":"2017-01-01","endDate":"2017-01-03"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: datastar-patch-elements"), body)
	assert.Contains(t, body, `id="range-error"`)
	assert.Contains(t, body, `id="metrics"`)
	assert.Contains(t, body, `id="daily-chart"`)
	assert.Contains(t, body, "$99.90")

	assert.Contains(t, body, "event: datastar-patch-signals")
	assert.Contains(t, body, `{"startDate":"2017-01-01","endDate":"2017-01-03"}`)

	metrics := strings.Index(body, `id="metrics"`)
	chart := strings.Index(body, `id="daily-chart"`)
	signals := strings.Index(body, "datastar-patch-signals")
	assert.Less(t, metrics, chart)
	assert.Less(t, chart, signals)
}

func TestSSEHandlers_HandleDailyOrdersEmptyRange(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{"startDate":"2017-01-02","endDate":"2017-01-02"}`))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No orders in the selected range.")
	assert.Contains(t, body, "$0.00")
}

func TestSSEHandlers_HandleDailyOrdersEchoesDefaults(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{"startDate":"","endDate":"2017-01-03"}`))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `{"startDate":"2017-01-01","endDate":"2017-01-03"}`,
		"a cleared start picker is reset to the first day of data")
	assert.NotContains(t, body, "totalOrders")
	assert.NotContains(t, body, "dailyOrders")
}

func TestSSEHandlers_HandleDailyOrdersInvertedRange(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{"startDate":"2017-01-05","endDate":"2017-01-01"}`))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="range-error"`)
	assert.Contains(t, body, "End date must not be before start date")
	assert.NotContains(t, body, `id="metrics"`, "an invalid range leaves the view untouched")
	assert.NotContains(t, body, "datastar-patch-signals")
}

func TestSSEHandlers_HandleDailyOrdersMalformedDate(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{"startDate":"yesterday","endDate":"2017-01-01"}`))

	body := w.Body.String()
	assert.Contains(t, body, "Dates must use the YYYY-MM-DD format")
	assert.NotContains(t, body, `id="daily-chart"`)
}

func TestSSEHandlers_HandleDailyOrdersBadSignals(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDailyOrders(w, sseRequest(`{not json`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
