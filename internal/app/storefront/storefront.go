// Package storefront собирает HTTP-приложение витрины: хранилище, кэш,
// сервисы и маршруты.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/video-storefront/internal/cache"
	"github.com/magabrotheeeer/video-storefront/internal/config"
	"github.com/magabrotheeeer/video-storefront/internal/files"
	"github.com/magabrotheeeer/video-storefront/internal/lib/dltoken"
	"github.com/magabrotheeeer/video-storefront/internal/lib/jwt"
	rabbitpub "github.com/magabrotheeeer/video-storefront/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/video-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/video-storefront/internal/migrations"
	"github.com/magabrotheeeer/video-storefront/internal/paymentprovider"
	"github.com/magabrotheeeer/video-storefront/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/video-storefront/internal/services/auth"
	cartservice "github.com/magabrotheeeer/video-storefront/internal/services/cart"
	catalogservice "github.com/magabrotheeeer/video-storefront/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/video-storefront/internal/services/checkout"
	entitlementservice "github.com/magabrotheeeer/video-storefront/internal/services/entitlement"
	paymentservice "github.com/magabrotheeeer/video-storefront/internal/services/payment"
	"github.com/magabrotheeeer/video-storefront/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер витрины и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
}

// New собирает приложение: подключает базу, применяет миграции,
// поднимает Redis и файловое хранилище, связывает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	fileStore, err := files.NewStore(cfg.MediaDir)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	downloadMaker := dltoken.NewMaker(cfg.DownloadSecretKey, cfg.DownloadTTL)
	providerClient := paymentprovider.NewClient(cfg.ProviderAPIURL, cfg.ProviderSecretKey)

	// Публикация квитанций опциональна: без брокера витрина продолжает работать.
	var conn *amqp.Connection
	var publisher paymentservice.EventPublisher
	if cfg.RabbitConnection != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitConnection, cfg.ConnectRetries, cfg.ConnectDelay)
		if err != nil {
			logger.Error("rabbitmq is unavailable, receipts are disabled", sl.Err(err))
		} else {
			ch, chErr := rabbitmq.SetupChannel(conn)
			if chErr != nil {
				logger.Error("rabbitmq channel setup failed, receipts are disabled", sl.Err(chErr))
			} else {
				publisher = rabbitpub.NewPublisher(ch)
			}
		}
	}

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, logger)
	cartService := cartservice.NewCartService(cacheRedis, db, logger)
	checkoutService := checkoutservice.NewCheckoutService(db, providerClient, cfg.PublicBaseURL, logger)
	entitlementService := entitlementservice.NewEntitlementService(downloadMaker, db, logger)
	paymentService := paymentservice.New(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:        authService,
		Catalog:     catalogService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Entitlement: entitlementService,
		Payment:     paymentService,
		Storage:     db,
		Files:       fileStore,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.conn != nil {
			if closeErr := a.conn.Close(); closeErr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
