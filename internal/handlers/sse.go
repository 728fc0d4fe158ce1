package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
	"ecommerce-dashboard/internal/ui/templates"
)

// rangeSignals are the date picker signals sent by the page.
type rangeSignals struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func renderComponent(ctx context.Context, c templ.Component) (string, error) {
	var buf strings.Builder
	err := c.Render(ctx, &buf)
	return buf.String(), err
}

// HandleDailyOrders re-runs the filter and daily aggregation for the
// selected range and patches the metrics and chart. The effective range
// is sent back as signals so a cleared picker shows the default it fell
// back to. An invalid range is reported inline and leaves the current
// view untouched.
func (h *SSEHandlers) HandleDailyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.RequestLogger(ctx, h.logger)

	var signals rangeSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, h.logger, errors.ValidationWrap(err, "Invalid signals"), observability.GetRequestID(ctx))
		return
	}

	sse := datastar.NewSSE(w, r)

	rng, err := models.ParseDateRange(signals.StartDate, signals.EndDate, h.analytics.Bounds())
	if err != nil {
		appErr := errors.DateRange(err)
		logger.Warn("rejected date range", "start", signals.StartDate, "end", signals.EndDate, "error", err)
		h.patch(ctx, sse, templates.RangeError(appErr.Message))
		return
	}

	daily := h.analytics.DailyOrders(ctx, rng)
	totals := services.ComputeTotals(daily)

	h.patch(ctx, sse, templates.RangeError(""))
	h.patch(ctx, sse, templates.Metrics(totals))
	h.patch(ctx, sse, templates.DailyChart(daily))

	jsonData, err := json.Marshal(rangeSignals{
		StartDate: rng.Start.Format(models.DateLayout),
		EndDate:   rng.End.Format(models.DateLayout),
	})
	if err != nil {
		logger.Error("marshal range signals", "error", err)
		return
	}
	if err := sse.PatchSignals(jsonData); err != nil {
		logger.Error("patch signals", "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, c templ.Component) {
	html, err := renderComponent(ctx, c)
	if err != nil {
		observability.RequestLogger(ctx, h.logger).Error("render component", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		observability.RequestLogger(ctx, h.logger).Error("patch elements", "error", err)
	}
}
