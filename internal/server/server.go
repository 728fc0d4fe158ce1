package server

import (
	"log/slog"
	"net/http"
	"time"

	"ecommerce-dashboard/internal/handlers"
	"ecommerce-dashboard/internal/services"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
}

func NewServer(analytics *services.Analytics, logger *slog.Logger, renderTimeout time.Duration) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(analytics, logger),
		sseHandlers:  handlers.NewSSEHandlers(analytics, logger),
		pageHandlers: handlers.NewPageHandlers(analytics, logger, renderTimeout),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard routes
	s.mux.HandleFunc("GET /", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/daily-orders", s.apiHandlers.HandleDailyOrders)
	s.mux.HandleFunc("GET /api/customers/by-state", s.apiHandlers.HandleByState)
	s.mux.HandleFunc("GET /api/customers/by-city", s.apiHandlers.HandleByCity)
	s.mux.HandleFunc("GET /api/spending-groups", s.apiHandlers.HandleSpendingGroups)
	s.mux.HandleFunc("GET /api/rfm/best", s.apiHandlers.HandleBestCustomers)
	s.mux.HandleFunc("GET /api/top-products", s.apiHandlers.HandleTopProducts)
	s.mux.HandleFunc("GET /api/top-regions", s.apiHandlers.HandleTopRegions)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/daily-orders", s.sseHandlers.HandleDailyOrders)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
