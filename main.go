package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jalvarezmx/auth-api-be/internal/api"
	"github.com/jalvarezmx/auth-api-be/internal/auth"
	"github.com/jalvarezmx/auth-api-be/internal/config"
	"github.com/jalvarezmx/auth-api-be/internal/database"
	"github.com/jalvarezmx/auth-api-be/internal/logger"
	"github.com/jalvarezmx/auth-api-be/internal/services"
	"github.com/jalvarezmx/auth-api-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration. JWT_SECRET has no default: a missing secret stops
	// the process here instead of running with a known key.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userStore := store.NewUserStore(db)
	tokenService := auth.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authService := services.NewAuthService(userStore, tokenService)

	// Set up router
	router := api.NewRouter(authService, tokenService, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
