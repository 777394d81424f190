package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rental-admin/internal/app"
	"rental-admin/internal/config"
	apihttp "rental-admin/internal/http"
	"rental-admin/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage open", zap.Error(err), zap.String("driver", cfg.StorageDriver))
	}
	defer a.Close()

	if err := a.Auth.Start(ctx); err != nil {
		if errors.Is(err, service.ErrNoAuthData) {
			logger.Info("no stored session")
		} else {
			logger.Warn("stored session discarded", zap.Error(err))
		}
	}

	authHandler := apihttp.NewAuthHandler(logger, a.Auth, a.Monitor)
	adminHandler := apihttp.NewAdminHandler(logger, a.Rooms, a.Locations, a.Users, a.Bookings, a.Profiles)
	router := apihttp.NewRouter(logger, a.Hub, a.Monitor, authHandler, adminHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("storage", cfg.StorageDriver),
		zap.Duration("session_timeout", cfg.SessionTimeout()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
