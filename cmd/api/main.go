package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rhrony1513/CharityPulse-Backend/internal/adapter/repo"
	"github.com/rhrony1513/CharityPulse-Backend/internal/http/handlers"
	"github.com/rhrony1513/CharityPulse-Backend/internal/http/httpapi"
	"github.com/rhrony1513/CharityPulse-Backend/internal/infra"
	"github.com/rhrony1513/CharityPulse-Backend/internal/infra/geoip"
	"github.com/rhrony1513/CharityPulse-Backend/internal/middleware"
	"github.com/rhrony1513/CharityPulse-Backend/internal/migrations"
	"github.com/rhrony1513/CharityPulse-Backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	if err := migrations.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload store")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var countryByIP middleware.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		countryByIP = resolver.CountryCode
	}

	app := &handlers.App{
		Logger:     logger,
		Users:      repo.NewUserRepository(dbpool),
		Donations:  repo.NewDonationRepository(dbpool),
		Comments:   repo.NewCommentRepository(dbpool),
		Sessions:   repo.NewSessionRepository(dbpool),
		Files:      files,
		SessionTTL: cfg.SessionTTL,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:      logger,
		Config:      cfg,
		CountryByIP: countryByIP,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
