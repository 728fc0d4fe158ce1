package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"ecommerce-dashboard/internal/config"
	"ecommerce-dashboard/internal/dataset"
	"ecommerce-dashboard/internal/middleware"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/server"
	"ecommerce-dashboard/internal/services"
)

func dataPaths(cfg config.DataConfig) dataset.Paths {
	return dataset.Paths{
		Orders:      cfg.Path(cfg.OrdersFile),
		OrderItems:  cfg.Path(cfg.OrderItemsFile),
		Customers:   cfg.Path(cfg.CustomersFile),
		RFM:         cfg.Path(cfg.RFMFile),
		TopProducts: cfg.Path(cfg.TopProductsFile),
		TopRegions:  cfg.Path(cfg.TopRegionsFile),
		MapFile:     cfg.Path(cfg.MapFile),
	}
}

// newHandler wraps the routes in the middleware chain.
func newHandler(cfg *config.Config, analytics *services.Analytics, logger *slog.Logger) http.Handler {
	srv := server.NewServer(analytics, logger, cfg.Server.RenderTimeout)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"data_dir", cfg.Data.Dir,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	defer cancel()

	start := time.Now()
	data, err := dataset.Load(ctx, dataPaths(cfg.Data), logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset ready",
		"duration", time.Since(start),
		"first_day", data.Bounds().Start.Format("2006-01-02"),
		"last_day", data.Bounds().End.Format("2006-01-02"),
	)

	analytics := services.NewAnalytics(data, logger)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook("analytics", func(ctx context.Context) error {
		logger.Info("shutting down analytics service", "stats", analytics.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
