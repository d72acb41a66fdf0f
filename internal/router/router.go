package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/catalog"
	"github.com/success-meals/api/internal/config"
	"github.com/success-meals/api/internal/handler"
	mw "github.com/success-meals/api/internal/middleware"
	"github.com/success-meals/api/internal/service"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/wa"
	"github.com/success-meals/api/internal/ws"
)

// New creates a Chi router with all application routes wired up: the
// public storefront surface, and the JWT-protected admin console under
// /admin.
func New(cfg *config.Config, queries *store.Queries, carts *cart.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",               // Vite dev server
			"https://successsignaturemeals.com",   // Production storefront
			"https://www.successsignaturemeals.com",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	menu := catalog.Default()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Public storefront routes
	menuHandler := handler.NewMenuHandler(queries, menu)
	r.Route("/menu", menuHandler.RegisterPublicRoutes)

	cartHandler := handler.NewCartHandler(carts, queries, menu)
	r.Route("/cart", cartHandler.RegisterRoutes)

	checkoutService := service.NewCheckoutService(queries, wa.ValidatePhone)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, carts, hub, cfg.WhatsAppNumber)
	checkoutHandler.RegisterRoutes(r)

	orderHandler := handler.NewOrderHandler(queries, hub)
	r.Route("/orders", orderHandler.RegisterPublicRoutes)

	infoHandler := handler.NewInfoHandler(cfg.WhatsAppNumber, cfg.OpeningHour, cfg.ClosingHour)
	infoHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Admin console: login is public, everything else requires a token.
	r.Route("/admin", func(r chi.Router) {
		authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.AdminPassword, cfg.AdminPasswordHash)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))

			r.Route("/menu", menuHandler.RegisterAdminRoutes)
			r.Route("/orders", orderHandler.RegisterAdminRoutes)

			statsHandler := handler.NewStatsHandler(queries)
			r.Get("/stats", statsHandler.Stats)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
