package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardfolio/internal/config"
	"cardfolio/internal/database"
	"cardfolio/internal/logger"
	"cardfolio/internal/pricing"
	"cardfolio/internal/services"
)

// pricefeed periodically refreshes market prices for every card in the
// database, independent of user traffic, so stats and reports stay close
// to current market values between interactive lookups.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Named("pricefeed")

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	providers := []pricing.Provider{
		pricing.NewPokemonTCGProvider(appConfig.PokemonTCGAPIKey),
		pricing.NewJustTCGProvider(appConfig.JustTCGAPIKey),
	}
	priceService := services.NewPriceService(dbManager.DB(), providers, appConfig.PriceCacheTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("starting price feed", "interval", appConfig.PricefeedInterval)

	refresh := func() {
		start := time.Now()
		updated, failed, err := priceService.RefreshAllPrices(ctx)
		if err != nil {
			log.Errorw("refresh aborted", "error", err, "updated", updated, "failed", failed)
			return
		}
		log.Infow("refresh complete", "updated", updated, "failed", failed, "took", time.Since(start))
	}

	// Run one refresh on startup rather than waiting a full interval.
	refresh()

	ticker := time.NewTicker(appConfig.PricefeedInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}
