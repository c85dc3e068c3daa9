package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookhaven-api/internal/client"
	"bookhaven-api/internal/config"
	"bookhaven-api/internal/repository"
	"bookhaven-api/internal/seed"
	"bookhaven-api/internal/server"
	"bookhaven-api/internal/service"
	"bookhaven-api/internal/session"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	store, err := newStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("init storage")
	}

	ctx := context.Background()
	if cfg.Seed {
		if err := seed.Run(ctx, store); err != nil {
			log.Fatal().Err(err).Msg("seed data")
		}
	}

	sessions := session.NewManager()
	authService := service.NewAuthService(store)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store)
	checkoutService := service.NewCheckoutService(store)
	newsletterService := service.NewNewsletterService(store)

	srv := server.NewServer(
		cfg.Session,
		log.Logger,
		store,
		sessions,
		authService,
		catalogService,
		cartService,
		checkoutService,
		newsletterService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info().
		Str("addr", serverAddr).
		Str("storage", cfg.Storage.Driver).
		Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func setupLogger(cfg config.Log) {
	zerolog.TimeFieldFormat = time.RFC3339
	if level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

func newStore(cfg config.Storage) (repository.Store, error) {
	if cfg.Driver == "memory" {
		return repository.NewMemoryStore(), nil
	}
	db, err := client.InitDBClient(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}
