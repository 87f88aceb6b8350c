package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hestia-rentals/hestia/internal/app"
	"github.com/hestia-rentals/hestia/internal/auth"
	"github.com/hestia-rentals/hestia/internal/messages"
	"github.com/hestia-rentals/hestia/internal/platform/cache"
	"github.com/hestia-rentals/hestia/internal/platform/db"
	"github.com/hestia-rentals/hestia/internal/rentals"
	"github.com/hestia-rentals/hestia/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	signingKey, err := cfg.SigningKey()
	if err != nil {
		logger.Error("decode signing key", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The rentals cache degrades to the store, so a missing Redis is not fatal.
		logger.Warn("redis unavailable, rentals cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	codec, err := auth.NewTokenCodec(signingKey)
	if err != nil {
		logger.Error("token codec", slog.Any("error", err))
		os.Exit(1)
	}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, auth.NewHasher(), codec, cfg.TokenTTL)
	authGate := auth.NewMiddleware(logger, authService)
	authHandler := auth.NewHandler(logger, authService)

	usersRepo := users.NewRepository(dbpool)
	usersHandler := users.NewHandler(logger, users.NewService(usersRepo), authGate)

	pictures, err := rentals.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir", slog.Any("error", err))
		os.Exit(1)
	}
	rentalsRepo := rentals.NewRepository(dbpool)
	rentalsCache := rentals.NewListCache(redisClient, cfg.RentalsCacheTTL, logger)
	rentalsService := rentals.NewService(rentalsRepo, rentalsCache, pictures, cfg.PublicBaseURL)
	rentalsHandler := rentals.NewHandler(logger, rentalsService, authGate)

	messagesRepo := messages.NewRepository(dbpool)
	messagesService := messages.NewService(messagesRepo, usersRepo, rentalsRepo)
	messagesHandler := messages.NewHandler(logger, messagesService, authGate)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		AuthGate:        authGate,
		UsersHandler:    usersHandler,
		RentalsHandler:  rentalsHandler,
		MessagesHandler: messagesHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
