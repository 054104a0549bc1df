// Package storefrontrelay предоставляет маршруты для основного приложения.
package storefrontrelay

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	contactcreate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/create"
	contactlist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/list"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/paymentlink"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/paymentredirect"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/paymentsetup"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/paymentupdateurl"
	contactread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/read"
	contactremove "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/remove"
	contactupdate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/contact/update"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/health"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/jwtsign"
	ordercreate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/order/create"
	orderlist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/order/list"
	orderread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/order/read"
	orderremove "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/order/remove"
	orderupdate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/order/update"
	productcreate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/list"
	productpaginated "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/paginated"
	productread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/remove"
	productupdate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/product/update"
	sellingplancreate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/sellingplan/create"
	sellingplanlist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/sellingplan/list"
	sellingplanpaginated "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/sellingplan/paginated"
	sellingplanread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/sellingplan/read"
	sellingplanremove "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/sellingplan/remove"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/shippingzone/calculaterate"
	shippingzonelist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/shippingzone/list"
	shippingzoneread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/shippingzone/read"
	themeconfigread "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/themeconfig/config"
	themeconfiglist "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/themeconfig/configs"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/themeconfig/themebyid"
	"github.com/magabrotheeeer/storefront-relay/internal/http/handlers/themeconfig/themes"
	usersubscriptioncreate "github.com/magabrotheeeer/storefront-relay/internal/http/handlers/usersubscription/create"
	"github.com/magabrotheeeer/storefront-relay/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, app *App) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, app.cfg.RateLimit.RPS, app.cfg.RateLimit.Burst))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productlist.New(logger, app.rest).ServeHTTP)
			r.Get("/paginated/all", productpaginated.New(logger, app.rest).ServeHTTP)
			r.Get("/{id}", productread.New(logger, app.rest).ServeHTTP)
			r.Post("/", productcreate.New(logger, app.rest).ServeHTTP)
			r.Put("/{id}", productupdate.New(logger, app.rest).ServeHTTP)
			r.Delete("/{id}", productremove.New(logger, app.rest).ServeHTTP)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderlist.New(logger, app.rest).ServeHTTP)
			r.Get("/{id}", orderread.New(logger, app.rest).ServeHTTP)
			r.Post("/", ordercreate.New(logger, app.rest).ServeHTTP)
			r.Put("/{id}", orderupdate.New(logger, app.rest).ServeHTTP)
			r.Delete("/{id}", orderremove.New(logger, app.rest).ServeHTTP)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", contactlist.New(logger, app.rest).ServeHTTP)
			r.Get("/payment-methods/{paymentMethodId}/update-url", paymentupdateurl.New(logger, app.contactService).ServeHTTP)
			r.Get("/payment-methods/{paymentMethodId}/update-url/redirect", paymentredirect.New(logger, app.contactService).ServeHTTP)
			r.Get("/{id}", contactread.New(logger, app.rest).ServeHTTP)
			r.Post("/", contactcreate.New(logger, app.rest).ServeHTTP)
			r.Put("/{id}", contactupdate.New(logger, app.rest).ServeHTTP)
			r.Delete("/{id}", contactremove.New(logger, app.rest).ServeHTTP)
			r.Post("/{id}/payment-methods", paymentsetup.New(logger, app.contactService).ServeHTTP)
			r.Post("/{id}/payment-methods/link", paymentlink.New(logger, app.contactService).ServeHTTP)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", sellingplanlist.New(logger, app.sellingPlanService).ServeHTTP)
			r.Get("/paginated", sellingplanpaginated.New(logger, app.sellingPlanService).ServeHTTP)
			r.Get("/{id}", sellingplanread.New(logger, app.sellingPlanService).ServeHTTP)
			r.Post("/", sellingplancreate.New(logger, app.sellingPlanService).ServeHTTP)
			r.Delete("/{id}", sellingplanremove.New(logger, app.sellingPlanService).ServeHTTP)
		})

		r.Post("/user-subscriptions", usersubscriptioncreate.New(logger, app.contractService).ServeHTTP)

		r.Route("/shipping-zones", func(r chi.Router) {
			r.Get("/", shippingzonelist.New(logger, app.shippingService).ServeHTTP)
			r.Post("/calculate-rate", calculaterate.New(logger, app.shippingService).ServeHTTP)
			r.Get("/{id}", shippingzoneread.New(logger, app.shippingService).ServeHTTP)
		})

		r.Route("/theme-config", func(r chi.Router) {
			r.Get("/", themeconfiglist.New(logger, app.themeService).ServeHTTP)
			r.Get("/themes", themes.New(logger, app.themeService).ServeHTTP)
			r.Get("/themes/{id}", themebyid.New(logger, app.themeService).ServeHTTP)
			r.Get("/{id}", themeconfigread.New(logger, app.themeService).ServeHTTP)
		})

		r.Post("/jwt/sign", jwtsign.New(logger).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
