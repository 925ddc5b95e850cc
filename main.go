package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/gamescape/gamescape-be/internal/api"
	"github.com/gamescape/gamescape-be/internal/auth"
	"github.com/gamescape/gamescape-be/internal/config"
	"github.com/gamescape/gamescape-be/internal/database"
	"github.com/gamescape/gamescape-be/internal/games"
	"github.com/gamescape/gamescape-be/internal/logger"
	"github.com/gamescape/gamescape-be/internal/metrics"
	"github.com/gamescape/gamescape-be/internal/monitoring"
	"github.com/gamescape/gamescape-be/internal/services"
	"github.com/gamescape/gamescape-be/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Production)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up stores and services
	userStore := store.NewSQLiteUserStore(db)
	collectionStore := store.NewSQLiteCollectionStore(db)
	sessionStore := store.NewSQLiteSessionStore(db)

	userService := services.NewUserService(userStore)
	collectionService := services.NewCollectionService(collectionStore)
	catalog := games.NewClient(cfg.RawgBaseURL, cfg.RawgAPIKey)

	// Pick the credential verifier for this deployment. Session mode
	// additionally runs the background reaper for expired sessions.
	var verifier auth.CredentialVerifier
	var reaper *monitoring.SessionReaper
	switch cfg.AuthMode {
	case config.AuthModeToken:
		verifier = auth.NewTokenVerifier(cfg.JWTSecret, cfg.TokenTTL)
	default:
		verifier = auth.NewSessionVerifier(sessionStore, cfg.SessionTTL, cfg.Production)
		reaper, err = monitoring.NewSessionReaper(sessionStore, cfg.SessionReapCron)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up session reaper")
		}
		go reaper.Run()
	}

	m := metrics.New(prometheus.NewRegistry())

	// 10 credential attempts per minute per IP, small burst.
	loginLimiter := api.NewRateLimiter(rate.Limit(10.0/60.0), 5)

	// Set up router
	router := api.NewRouter(verifier, userService, collectionService, catalog, m, loginLimiter, cfg.AllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("auth_mode", cfg.AuthMode).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if reaper != nil {
		reaper.Stop()
	}
	loginLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
