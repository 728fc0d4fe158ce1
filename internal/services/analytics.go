package services

import (
	"context"
	"log/slog"
	"time"

	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
)

const (
	TopLocations      = 10
	BestCustomerCount = 5
)

// fullViews are derived once from the unfiltered tables. The date filter
// never applies to them.
type fullViews struct {
	byState        []models.StateCount
	byCity         []models.CityCount
	rfm            []models.RFM
	spendingCounts []models.SpendingGroupCount
	bestCustomers  models.BestCustomers
}

// Analytics answers dashboard queries over one immutable Dataset. It
// holds no mutable state, so concurrent requests need no locking.
type Analytics struct {
	data   *dataset.Dataset
	views  fullViews
	logger *slog.Logger
}

func NewAnalytics(data *dataset.Dataset, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}

	rfm := SpendingGroups(data.RFM())

	return &Analytics{
		data: data,
		views: fullViews{
			byState:        ByState(data.Customers()),
			byCity:         ByCity(data.Customers()),
			rfm:            rfm,
			spendingCounts: SpendingGroupCounts(rfm),
			bestCustomers:  BestCustomers(rfm, BestCustomerCount),
		},
		logger: logger,
	}
}

// Bounds is the default date range: first to last purchase day.
func (a *Analytics) Bounds() models.DateRange {
	return a.data.Bounds()
}

// DailyOrders filters the joined orders to r and aggregates them per day.
func (a *Analytics) DailyOrders(ctx context.Context, r models.DateRange) []models.DailyOrders {
	_, span := observability.StartSpan(ctx, "analytics.daily_orders")
	defer span.Finish()

	start := time.Now()
	filtered := FilterOrders(a.data.Orders(), r)
	daily := DailyOrders(filtered)

	span.SetTag("range", r.String())
	a.logger.Debug("daily orders computed",
		"range", r.String(),
		"rows", len(filtered),
		"days", len(daily),
		"duration", time.Since(start),
		"request_id", observability.GetRequestID(ctx),
	)

	return daily
}

// Dashboard assembles every section of the page for one render pass.
func (a *Analytics) Dashboard(ctx context.Context, r models.DateRange) models.Dashboard {
	daily := a.DailyOrders(ctx, r)

	return models.Dashboard{
		Range:          r,
		Bounds:         a.Bounds(),
		Daily:          daily,
		Totals:         ComputeTotals(daily),
		TopCities:      Limit(a.views.byCity, TopLocations),
		TopStates:      Limit(a.views.byState, TopLocations),
		TopProducts:    a.data.TopProducts(),
		TopRegions:     a.data.TopRegions(),
		BestCustomers:  a.views.bestCustomers,
		SpendingGroups: a.views.spendingCounts,
		MapHTML:        a.data.MapHTML(),
	}
}

func (a *Analytics) ByState(limit int) []models.StateCount {
	return Limit(a.views.byState, limit)
}

func (a *Analytics) ByCity(limit int) []models.CityCount {
	return Limit(a.views.byCity, limit)
}

// RFM returns the RFM rows with their spending group.
func (a *Analytics) RFM() []models.RFM {
	return a.views.rfm
}

func (a *Analytics) SpendingGroupCounts() []models.SpendingGroupCount {
	return a.views.spendingCounts
}

func (a *Analytics) BestCustomers() models.BestCustomers {
	return a.views.bestCustomers
}

func (a *Analytics) TopProducts(limit int) []models.TopProduct {
	return Limit(a.data.TopProducts(), limit)
}

func (a *Analytics) TopRegions(limit int) []models.TopRegion {
	return Limit(a.data.TopRegions(), limit)
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	stats := a.data.Stats()
	stats["states"] = len(a.views.byState)
	stats["cities"] = len(a.views.byCity)
	return stats
}
