// Package storefront предоставляет маршруты для приложения витрины.
package storefront

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/video-storefront/internal/config"
	"github.com/magabrotheeeer/video-storefront/internal/files"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/cart/cartadd"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/cart/cartremove"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/cart/cartview"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/catalog/categories"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/catalog/list"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/catalog/read"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/catalog/seller"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/checkout/checkoutcreate"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/checkout/checkoutsuccess"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/download/fetch"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/download/tokenissue"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/health"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/video-storefront/internal/http/handlers/product/upload"
	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/video-storefront/internal/services/auth"
	cartservice "github.com/magabrotheeeer/video-storefront/internal/services/cart"
	catalogservice "github.com/magabrotheeeer/video-storefront/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/video-storefront/internal/services/checkout"
	entitlementservice "github.com/magabrotheeeer/video-storefront/internal/services/entitlement"
	paymentservice "github.com/magabrotheeeer/video-storefront/internal/services/payment"
	"github.com/magabrotheeeer/video-storefront/internal/storage/repository"
)

// Services собирает зависимости маршрутов в одну структуру.
type Services struct {
	Auth        *authservice.AuthService
	Catalog     *catalogservice.CatalogService
	Cart        *cartservice.CartService
	Checkout    *checkoutservice.CheckoutService
	Entitlement *entitlementservice.EntitlementService
	Payment     *paymentservice.PaymentService
	Storage     *repository.Storage
	Files       *files.Store
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth, cfg.TokenTTL).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)

		r.Get("/products", list.New(logger, s.Catalog).ServeHTTP)
		r.Get("/products/{id}", read.New(logger, s.Catalog).ServeHTTP)
		r.Get("/categories", categories.New(logger, s.Catalog).ServeHTTP)
		r.Get("/sellers/{username}/products", seller.New(logger, s.Catalog).ServeHTTP)

		// Скачивание авторизуется самим токеном, а не сессией
		r.Get("/downloads/{id}", fetch.New(logger, s.Entitlement, s.Catalog, s.Files).ServeHTTP)

		// Группа с аутентификацией по сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/cart", cartview.New(logger, s.Cart).ServeHTTP)
			r.Post("/cart/items/{id}", cartadd.New(logger, s.Cart).ServeHTTP)
			r.Delete("/cart/items/{id}", cartremove.New(logger, s.Cart).ServeHTTP)
			r.Post("/checkout", checkoutcreate.New(logger, s.Cart, s.Checkout).ServeHTTP)
			r.Post("/products/{id}/download-token", tokenissue.New(logger, s.Entitlement).ServeHTTP)

			// Группа продавца
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.SellerOnlyMiddleware(logger))
				r.Post("/seller/products", upload.New(logger, s.Storage, s.Files, cfg.MaxUploadSize).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации, проверяется подписью)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment,
			cfg.WebhookSecret, cfg.AllowUnverifiedWebhooks).ServeHTTP)
	})

	// Возврат с платёжной страницы: провайдер редиректит браузер на
	// PublicBaseURL + "/checkout-success", поэтому маршрут живёт в корне
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(s.Auth, logger))
		r.Get("/checkout-success", checkoutsuccess.New(logger, s.Cart).ServeHTTP)
	})

	// Прямая раздача медиафайлов, минуя токены скачивания
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))

	r.Get("/health", health.New(logger, s.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
