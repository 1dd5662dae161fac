package main

import (
	"context"
	"log"

	"github.com/anonto42/fairnet/backend/internal/feed"
	"github.com/anonto42/fairnet/backend/internal/ipfs"
	"github.com/anonto42/fairnet/backend/internal/ledger"
	"github.com/anonto42/fairnet/backend/internal/router"
	"github.com/anonto42/fairnet/backend/pkg/config"
	"github.com/anonto42/fairnet/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to the ledger
	ctx := context.Background()
	ledgerClient, err := ledger.Dial(ctx, cfg.RPCURL, cfg.ContractAddress)
	if err != nil {
		log.Fatalf("Failed to connect to ledger: %v", err)
	}
	defer ledgerClient.Close()

	// Connect to the content store
	store := ipfs.NewShellClient(cfg.IPFSAPIURL, cfg.IPFSFetchTimeout)

	// Feed materialization service
	feedService := feed.NewService(ledgerClient, store, feed.Options{
		Workers:       cfg.ResolveWorkers,
		UnlockTimeout: cfg.UnlockTimeout,
		FetchTimeout:  cfg.IPFSFetchTimeout,
	})

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, feedService)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
