package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/brandforge/printshop/internal/catalog"
	"github.com/brandforge/printshop/internal/config"
	"github.com/brandforge/printshop/internal/db"
	"github.com/brandforge/printshop/internal/events"
	"github.com/brandforge/printshop/internal/order"
	"github.com/brandforge/printshop/internal/transport"
	"github.com/brandforge/printshop/internal/user"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "printshop").Logger()

	log.Info().Msg("Printshop service starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if err := db.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	postgres, err := db.NewPostgres(startupCtx, cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer postgres.Close()

	mongoDB, err := db.NewMongo(startupCtx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoDB.Close(ctx)
	}()

	var publisher order.EventPublisher = events.NewNop()
	if cfg.RabbitMQ.URL != "" {
		rmq, err := events.NewRabbitMQ(cfg.RabbitMQ)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		defer rmq.Close()
		publisher = rmq
	}

	catalogRepo := catalog.NewRepository(mongoDB.Database)
	if err := catalogRepo.EnsureSeeded(startupCtx, catalog.DefaultCatalog()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed product catalog")
	}
	catalogSvc := catalog.NewService(catalogRepo)

	userRepo := user.NewRepository(postgres.Pool)
	userSvc := user.NewService(userRepo)
	tokens := user.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	orderRepo := order.NewRepository(mongoDB.Database)
	orderSvc := order.NewService(orderRepo, publisher)
	drafts := order.NewDraftRegistry()

	router := transport.NewRouter(transport.Deps{
		UserService:    userSvc,
		Tokens:         tokens,
		CatalogService: catalogSvc,
		OrderService:   orderSvc,
		Drafts:         drafts,
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("Printshop service stopped gracefully")
}
