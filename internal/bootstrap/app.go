// Package bootstrap wires configuration into connections, repositories,
// usecases and the HTTP server.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	handlers "github.com/v5hhrxpsqg-tech/Scribeer/internal/adapter/handler/http"
	notify "github.com/v5hhrxpsqg-tech/Scribeer/internal/adapter/messaging"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/config"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/infrastructure/database"
	httpServer "github.com/v5hhrxpsqg-tech/Scribeer/internal/infrastructure/http"
	stripeProvider "github.com/v5hhrxpsqg-tech/Scribeer/internal/infrastructure/provider/stripe"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/usecase"
	"github.com/v5hhrxpsqg-tech/Scribeer/pkg/messaging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns every long-lived resource of the service
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  *redis.Client
	server *httpServer.Server
}

// Option overrides a connection, mainly for tests
type Option func(*App)

// WithDB uses an existing database instead of dialing config.Database
func WithDB(db *gorm.DB) Option {
	return func(a *App) { a.db = db }
}

// WithRedis uses an existing Redis client instead of dialing config.Redis
func WithRedis(client *redis.Client) Option {
	return func(a *App) { a.redis = client }
}

// New connects only the backends cfg selects and assembles the server.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	app := &App{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(app)
	}

	if err := app.connect(ctx); err != nil {
		app.Close()
		return nil, err
	}

	server, err := app.buildServer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.server = server

	return app, nil
}

func (a *App) connect(ctx context.Context) error {
	if database.NeedsDB(a.config) && a.db == nil {
		db, err := database.NewConnection(ctx, &a.config.Database, a.logger)
		if err != nil {
			return err
		}
		a.db = db
	}

	if a.db != nil && a.config.Store.AutoMigrate {
		withAccounts := a.config.Store.Driver == config.StoreDriverPostgres
		if err := database.Migrate(a.db, a.logger, withAccounts); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if a.config.Redis.Addr != "" && a.redis == nil {
		client, err := messaging.Connect(ctx, a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB)
		if err != nil {
			return err
		}
		a.redis = client
		a.logger.Info("Redis connection established", zap.String("addr", a.config.Redis.Addr))
	}

	return nil
}

func (a *App) buildServer() (*httpServer.Server, error) {
	cfg := a.config

	repos, err := database.NewRepositories(cfg, database.Backends{DB: a.db, Redis: a.redis}, a.logger)
	if err != nil {
		return nil, err
	}

	catalog, err := config.LoadCatalog(cfg.Credits.CatalogFile)
	if err != nil {
		return nil, err
	}
	table, err := usecase.NewCreditTable(catalog.Prices, catalog.Amounts)
	if err != nil {
		return nil, err
	}

	var opts []usecase.WebhookOption
	if repos.EventLedger != nil {
		opts = append(opts, usecase.WithEventLedger(repos.EventLedger))
	}
	if repos.Transactor != nil {
		opts = append(opts, usecase.WithTransactor(repos.Transactor))
	}
	if a.redis != nil && cfg.Redis.PublishChannel != "" {
		notifier := notify.NewCreditNotifier(messaging.NewRedisClient(a.redis), cfg.Redis.PublishChannel)
		opts = append(opts, usecase.WithCreditNotifier(notifier))
	}
	if cfg.Stripe.ResolveLineItems {
		if cfg.Stripe.SecretKey == "" {
			a.logger.Warn("stripe.resolve_line_items is set but no Stripe secret key is configured; line items will not be resolved")
		} else {
			opts = append(opts, usecase.WithLineItemResolver(stripeProvider.NewLineItemResolver(cfg.Stripe.SecretKey, nil, a.logger)))
		}
	}
	if cfg.Stripe.WebhookSecret == "" {
		a.logger.Warn("Stripe webhook secret not configured; every delivery will be rejected")
	}

	webhookService := usecase.NewWebhookService(
		usecase.NewCreditMapper(table),
		usecase.NewBalanceUpdater(repos.Account, a.logger, cfg.Credits.SignupBonus, cfg.Store.MaxAttempts),
		a.logger,
		opts...,
	)

	a.logger.Info("Credit service configured",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("deduplicate", repos.EventLedger != nil),
		zap.Bool("transactional_claim", repos.Transactor != nil),
		zap.Int("catalog_prices", len(catalog.Prices)),
		zap.Int("catalog_amounts", len(catalog.Amounts)))

	return httpServer.NewServer(cfg, a.logger, httpServer.Handlers{
		Health:  handlers.NewHealthHandler(cfg.Service.Name),
		Webhook: handlers.NewWebhookHandler(stripeProvider.NewStripeProvider(cfg.Stripe.SignatureTolerance, a.logger), webhookService, cfg.Stripe.WebhookSecret, cfg.Webhook.MaxBodyBytes, a.logger),
		Credit:  handlers.NewCreditHandler(usecase.NewCreditQueryService(repos.Account), a.logger),
	}), nil
}

// Server returns the HTTP server
func (a *App) Server() *httpServer.Server {
	return a.server
}

// Run blocks serving HTTP until Shutdown is called
func (a *App) Run() error {
	if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server and releases connections
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.server != nil {
		err = a.server.Shutdown(ctx)
	}
	a.Close()
	return err
}

// Close releases connections without touching the server
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := database.Close(a.db, a.logger); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
		a.db = nil
	}
}
