// @title           User Directory API
// @version         1.0
// @description     CRUD service for user accounts with JWT authentication, role-based access control and filtered listing.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nimbusworks/user-directory/internal/api"
	"github.com/nimbusworks/user-directory/internal/core/service"
	"github.com/nimbusworks/user-directory/internal/infrastructure/config"
	mongodb "github.com/nimbusworks/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/nimbusworks/user-directory/internal/infrastructure/db/redis"
	"github.com/nimbusworks/user-directory/internal/infrastructure/queue"
	"github.com/nimbusworks/user-directory/internal/infrastructure/storage/jsonfile"
	"github.com/nimbusworks/user-directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Core services ---
	hasher := service.NewPasswordHasher(0)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	policy := service.Policy{
		PublicRead: cfg.Policy.PublicRead,
		OpenCreate: cfg.Policy.OpenCreate,
	}

	auditSvc := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditSvc, log)
	dispatcher.Start(ctx)

	throttle := redisdb.NewLoginThrottle(rdb)
	userSvc := service.NewUserService(userRepo, hasher, policy, dispatcher, log)
	authSvc := service.NewAuthService(userRepo, hasher, tokens, throttle, dispatcher, log)
	itemSvc := service.NewItemService(jsonfile.NewItemRepository(cfg.Items.StorePath), log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Users:      userSvc,
		Auth:       authSvc,
		Items:      itemSvc,
		Tokens:     tokens,
		Mongo:      db,
		Redis:      rdb,
		PublicRead: cfg.Policy.PublicRead,
		OpenCreate: cfg.Policy.OpenCreate,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
