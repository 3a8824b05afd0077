package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/desistore/storefront/internal/service"
	"github.com/desistore/storefront/pkg/health"
	"github.com/desistore/storefront/pkg/middleware"
)

// Services bundles the service dependencies of the router.
type Services struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Admin    *service.AdminService
	Users    *service.UserService
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)
	adminHandler := NewAdminHandler(svcs.Admin, logger)
	userHandler := NewUserHandler(svcs.Users, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Browse and search are open to guests.
		r.Group(func(r chi.Router) {
			r.Use(OptionalUserID)

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{productId}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/me/role", userHandler.GetRole)
		})

		// Everything else needs an authenticated caller.
		r.Group(func(r chi.Router) {
			r.Use(UserIDFromHeader)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)

			r.Post("/checkout", checkoutHandler.StartCheckout)
			r.Get("/checkout", checkoutHandler.GetSession)
			r.Put("/checkout/address", checkoutHandler.SetAddress)
			r.Get("/checkout/payment-options", checkoutHandler.PaymentOptions)
			r.Put("/checkout/payment", checkoutHandler.SelectPayment)
			r.Post("/checkout/place-order", checkoutHandler.PlaceOrder)

			r.Get("/orders", orderHandler.ListOrders)
			r.Get("/orders/{orderId}", orderHandler.GetOrder)

			r.Get("/me/profile", userHandler.GetProfile)
			r.Put("/me/profile", userHandler.SaveProfile)

			r.Post("/admin/products", adminHandler.AddProduct)
			r.Post("/admin/products/validate", adminHandler.ValidateProduct)
			r.Put("/admin/products/{productId}", adminHandler.UpdateProduct)
			r.Put("/admin/products/{productId}/stock", adminHandler.UpdateStock)
		})
	})

	return r
}
