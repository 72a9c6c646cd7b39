package router

import (
	"net/http"

	"coupon-manager/internal/handler"
	"coupon-manager/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	couponHandler *handler.CouponHandler,
	authHandler *handler.AuthHandler,
	tokens middleware.TokenParser,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Order: RequestID -> Recovery -> Logging -> CORS -> JWTAuth
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.JWTAuth(tokens, logger))

	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", couponHandler.List)
			r.Post("/", couponHandler.Create)
			r.Get("/search", couponHandler.Search)
			r.Get("/{id}", couponHandler.GetByID)
			r.Put("/{id}", couponHandler.Update)
			r.Delete("/{id}", couponHandler.Delete)
			r.Post("/{id}/redeem", couponHandler.Redeem)
		})
	})

	return r
}
