package storefrontrelay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/storefront-relay/internal/config"
	contactservice "github.com/magabrotheeeer/storefront-relay/internal/services/contact"
	contractservice "github.com/magabrotheeeer/storefront-relay/internal/services/contract"
	sellingplanservice "github.com/magabrotheeeer/storefront-relay/internal/services/sellingplan"
	shippingservice "github.com/magabrotheeeer/storefront-relay/internal/services/shipping"
	themeservice "github.com/magabrotheeeer/storefront-relay/internal/services/theme"
	"github.com/magabrotheeeer/storefront-relay/internal/shopify"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.Config

	rest *shopify.RestClient
	gql  *shopify.GraphQLClient

	contractService    *contractservice.Service
	sellingPlanService *sellingplanservice.Service
	shippingService    *shippingservice.Service
	themeService       *themeservice.Service
	contactService     *contactservice.Service
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.Shopify.StoreDomain == "" {
		return nil, errors.New("shopify store domain is not configured")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, errors.New("shopify access token is not configured")
	}

	rest := shopify.NewRestClient(cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken,
		cfg.Shopify.APIVersion, cfg.Shopify.ClientTimeout)
	gql := shopify.NewGraphQLClient(cfg.Shopify.StoreDomain, cfg.Shopify.AccessToken,
		cfg.Shopify.APIVersion, cfg.Shopify.ClientTimeout)

	app := &App{
		logger: logger,
		cfg:    cfg,
		rest:   rest,
		gql:    gql,

		contractService:    contractservice.New(gql, logger),
		sellingPlanService: sellingplanservice.New(gql, logger),
		shippingService:    shippingservice.New(rest, logger),
		themeService:       themeservice.New(rest, gql, logger),
		contactService:     contactservice.New(gql, logger),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, app)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
