package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/taskhub/taskhub-go/internal/config"
	"github.com/taskhub/taskhub-go/internal/handler"
	"github.com/taskhub/taskhub-go/internal/repository"
	"github.com/taskhub/taskhub-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// The datastore gates startup: no listener runs until a connection is
	// resolved, and failing both the durable and ephemeral paths is fatal.
	store, err := repository.Open(context.Background(), cfg.DatabaseDSN, cfg.EphemeralDB, cfg.ConnectTimeout)
	if err != nil {
		slog.Error("could not connect to any datastore", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	userRepo := repository.NewUserRepository(store)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService, cfg.JWTExpiry, cfg.Env != "development")

	taskRepo := repository.NewTaskRepository(store)
	taskService := service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(taskService)

	r := handler.NewRouter(authHandler, taskHandler, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
