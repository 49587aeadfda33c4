// @title           Shop API
// @version         1.0
// @description     E-commerce backend with users, products and orders behind a role and ownership gate.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/echoprometheus"

	"github.com/storefront/shop-api/internal/api"
	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/core/service"
	mongostore "github.com/storefront/shop-api/internal/infrastructure/db/mongo"
	redisstore "github.com/storefront/shop-api/internal/infrastructure/db/redis"
	"github.com/storefront/shop-api/internal/infrastructure/queue"
	"github.com/storefront/shop-api/internal/infrastructure/token"
	"github.com/storefront/shop-api/internal/pkg/config"
	"github.com/storefront/shop-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "shop-api"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "shop-api",
	})

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "shop-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Audit pipeline ---
	auditRepo := mongostore.NewAuditRepository(db)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component(log, "audit"))
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Use cases ---
	users := mongostore.NewUserRepository(db)
	products := mongostore.NewProductRepository(db)
	orders := mongostore.NewOrderRepository(db)
	jwt := token.NewJWT(cfg.JWTSecret, cfg.JWTTTL)
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Lockout)

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(users, jwt, limiter, logger.Component(log, "auth")),
		Users:    service.NewUserService(users, logger.Component(log, "users")),
		Orders:   service.NewOrderService(orders, products, auditRepo, dispatcher, logger.Component(log, "orders")),
		Products: service.NewProductService(products, logger.Component(log, "products")),
		Tokens:   jwt,
		Health: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Log: logger.Component(log, "http"),
	})
	e.Use(echoprometheus.NewMiddleware("shop"))
	e.GET("/metrics", echoprometheus.NewHandler())

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	dispatcher.Close()
	log.Info().Msg("shutdown complete")
}
