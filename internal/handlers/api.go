package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
)

const cacheMaxAge = "public, max-age=300"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

type dailyOrdersResponse struct {
	Range  models.DateRange     `json:"range"`
	Totals models.Totals        `json:"totals"`
	Daily  []models.DailyOrders `json:"daily_orders"`
}

// HandleDailyOrders serves the filtered daily series. Missing bounds
// default to the dataset bounds.
func (h *APIHandlers) HandleDailyOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := models.ParseDateRange(q.Get("start"), q.Get("end"), h.analytics.Bounds())
	if err != nil {
		h.writeError(w, r, errors.DateRange(err))
		return
	}

	daily := h.analytics.DailyOrders(r.Context(), rng)

	errors.WriteSuccess(w, dailyOrdersResponse{
		Range:  rng,
		Totals: services.ComputeTotals(daily),
		Daily:  daily,
	})
}

func (h *APIHandlers) HandleByState(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.ByState(limit), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleByCity(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.ByCity(limit), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleSpendingGroups(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.SpendingGroupCounts(), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleBestCustomers(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.analytics.BestCustomers(), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.TopProducts(limit), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleTopRegions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, h.analytics.TopRegions(limit), map[string]string{"Cache-Control": cacheMaxAge})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

// parseLimit reads the optional limit query parameter. No limit is -1.
func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return -1, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Validation("limit must be a non-negative integer")
	}
	return n, nil
}
