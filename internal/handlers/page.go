package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ecommerce-dashboard/internal/errors"
	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/services"
	"ecommerce-dashboard/internal/ui/templates"
)

type PageHandlers struct {
	analytics     *services.Analytics
	logger        *slog.Logger
	renderTimeout time.Duration
}

func NewPageHandlers(analytics *services.Analytics, logger *slog.Logger, renderTimeout time.Duration) *PageHandlers {
	return &PageHandlers{
		analytics:     analytics,
		logger:        logger,
		renderTimeout: renderTimeout,
	}
}

// HandleDashboard renders the full page. The start and end query
// parameters preselect a range when scripts are disabled.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		errors.WriteError(w, h.logger, errors.NotFound("Page not found"), observability.GetRequestID(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.renderTimeout)
	defer cancel()

	q := r.URL.Query()
	rng, err := models.ParseDateRange(q.Get("start"), q.Get("end"), h.analytics.Bounds())
	if err != nil {
		errors.WriteError(w, h.logger, errors.DateRange(err), observability.GetRequestID(ctx))
		return
	}

	dashboard := h.analytics.Dashboard(ctx, rng)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(dashboard).Render(ctx, w); err != nil {
		observability.RequestLogger(ctx, h.logger).Error("render dashboard", "error", err)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
