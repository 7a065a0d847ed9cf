// @title                       Account API
// @version                     1.0
// @description                 Admin and customer accounts with revocable bearer tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/account-api/internal/api"
	"github.com/storefront/account-api/internal/api/handler"
	"github.com/storefront/account-api/internal/core/domain"
	"github.com/storefront/account-api/internal/core/service"
	mongostore "github.com/storefront/account-api/internal/infrastructure/db/mongo"
	redisstore "github.com/storefront/account-api/internal/infrastructure/db/redis"
	"github.com/storefront/account-api/internal/infrastructure/queue"
	"github.com/storefront/account-api/internal/pkg/config"
	"github.com/storefront/account-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "account-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongo indexes")
	}

	redisClient, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	// --- Repositories ---
	admins := mongostore.NewAccountRepository(db, mongostore.CollectionAdmins)
	customers := mongostore.NewAccountRepository(db, mongostore.CollectionCustomers)
	tokens := mongostore.NewTokenRepository(db)

	// --- Token usage tracking ---
	usageCtx, stopUsage := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(
		cfg.Usage.Workers,
		tokens,
		redisstore.NewUsageThrottle(redisClient, cfg.Usage.Throttle),
		log.With().Str("component", "usage").Logger(),
	)
	dispatcher.Start(usageCtx)

	// --- Services ---
	adminAuth := service.NewAuthService(domain.KindAdmin, admins, tokens, dispatcher, service.AuthConfig{
		TokenName: "auth_token",
		Abilities: []string{domain.AbilityAdmin},
		TokenTTL:  cfg.Auth.TokenTTL,
	}, log)
	customerAuth := service.NewAuthService(domain.KindCustomer, customers, tokens, dispatcher, service.AuthConfig{
		TokenName: "api_token",
		Abilities: []string{domain.AbilityAll},
		TokenTTL:  cfg.Auth.TokenTTL,
	}, log)

	e := api.NewRouter(api.Dependencies{
		AdminAuth:    adminAuth,
		CustomerAuth: customerAuth,
		Customers:    service.NewCustomerService(customers, tokens, log),
		Health: map[string]handler.Pinger{
			"mongodb": mongostore.NewPinger(db),
			"redis":   redisstore.NewPinger(redisClient),
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(ctx, log, cfg.ShutdownTimeout, e, stopUsage, redisClient, mongoClient)
}

func waitForShutdown(
	ctx context.Context,
	log zerolog.Logger,
	timeout time.Duration,
	e *echo.Echo,
	stopUsage context.CancelFunc,
	redisClient *redis.Client,
	mongoClient *mongo.Client,
) {
	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if err := e.Close(); err != nil {
			log.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	stopUsage()

	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect error")
	}

	log.Info().Msg("server exited cleanly")
}
