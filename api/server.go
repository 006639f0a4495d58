/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client IP behind proxies
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. zap logger: Structured request logging
  5. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/inventory/*   Item catalog and stock levels
  /api/clients/*     Client registry
  /api/vendors/*     Vendor registry
  /api/sales/*       Sale recording and history
  /api/supply/*      Supply order recording and history
  /api/reports/*     Aggregated summaries
  /api/export/*      XLSX snapshot download
  /api/health        Liveness probe

ROUTE ORDERING:
  Literal subpaths (/low-stock, /details) are registered before /{id}
  so chi matches them first.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Inventory routes
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Post("/", h.CreateItem)
			r.Get("/low-stock", h.ListLowStock)
			r.Get("/{id}", h.GetItem)
			r.Put("/{id}", h.UpdateItem)
			r.Delete("/{id}", h.DeleteItem)
		})

		// Client routes
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.CreateClient)
			r.Get("/{id}", h.GetClient)
			r.Put("/{id}", h.UpdateClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		// Vendor routes
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", h.ListVendors)
			r.Post("/", h.CreateVendor)
			r.Get("/{id}", h.GetVendor)
			r.Put("/{id}", h.UpdateVendor)
			r.Delete("/{id}", h.DeleteVendor)
		})

		// Sale routes
		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Post("/", h.CreateSale)
			r.Get("/details", h.ListSaleDetails)
			r.Get("/{id}", h.GetSale)
			r.Delete("/{id}", h.DeleteSale)
		})

		// Supply order routes
		r.Route("/supply", func(r chi.Router) {
			r.Get("/", h.ListSupplyOrders)
			r.Post("/", h.CreateSupplyOrder)
			r.Get("/details", h.ListSupplyDetails)
			r.Get("/{id}", h.GetSupplyOrder)
			r.Delete("/{id}", h.DeleteSupplyOrder)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/inventory", h.InventoryReport)
			r.Get("/transactions", h.TransactionReport)
			r.Get("/dashboard", h.Dashboard)
		})

		// Export routes
		r.Route("/export", func(r chi.Router) {
			r.Get("/xlsx", h.ExportXLSX)
		})

		r.Get("/health", h.Health)
	})

	return r
}

// requestLogger logs each request with method, path, status and latency.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
