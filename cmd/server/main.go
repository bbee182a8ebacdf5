// Package main starts the Holocron catalog API: it reads configuration,
// sets up logging, connects to PostgreSQL and applies migrations, wires
// repositories, services and handlers, and serves HTTP(S) until signalled.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/holocron/internal/config"
	"github.com/atinyakov/holocron/internal/db"
	"github.com/atinyakov/holocron/internal/logger"
	"github.com/atinyakov/holocron/internal/repository"
	"github.com/atinyakov/holocron/internal/server/handler/http"
	"github.com/atinyakov/holocron/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse .env, command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	planetRepo := repository.NewPostgresPlanetRepository(postgresDB)
	characterRepo := repository.NewPostgresCharacterRepository(postgresDB)
	vehicleRepo := repository.NewPostgresVehicleRepository(postgresDB)
	favoriteRepo := repository.NewPostgresFavoriteRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	planetService := service.NewPlanetService(planetRepo)
	characterService := service.NewCharacterService(characterRepo)
	vehicleService := service.NewVehicleService(vehicleRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	// Build the router with middleware and routes.
	router := http.NewRouter(
		http.NewUserHandler(userService, zapLogger),
		http.NewPlanetHandler(planetService, zapLogger),
		http.NewCharacterHandler(characterService, zapLogger),
		http.NewVehicleHandler(vehicleService, zapLogger),
		&http.FavoriteHandler{FavoriteService: favoriteService, Logger: zapLogger},
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Address))
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
