package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/walletgraph/walletgraph/internal/adapter"
	"github.com/walletgraph/walletgraph/internal/api/middleware"
	"github.com/walletgraph/walletgraph/internal/api/server"
	"github.com/walletgraph/walletgraph/internal/config"
	"github.com/walletgraph/walletgraph/internal/enrichment"
	"github.com/walletgraph/walletgraph/internal/logger"
	"github.com/walletgraph/walletgraph/internal/providers/chainindex"
	"github.com/walletgraph/walletgraph/internal/providers/marketplace"
	"github.com/walletgraph/walletgraph/internal/ratelimit"
	"github.com/walletgraph/walletgraph/internal/registry"
	"github.com/walletgraph/walletgraph/internal/session"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Wallet Graph API")

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(time.Duration(cfg.Providers.HTTPTimeout) * time.Second)

	// Initialize rate limit proxy shared by all provider clients
	rateLimitProxy, err := ratelimit.NewProxy(cfg.RateLimiter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limit proxy", zap.Error(err))
	}
	defer func() {
		if err := rateLimitProxy.Close(); err != nil {
			logger.Warn("Failed to close rate limit proxy", zap.Error(err))
		}
	}()

	// Initialize provider clients
	marketplaceClient := marketplace.NewClient(
		httpClient,
		rateLimitProxy,
		cfg.Providers.MarketplaceURL,
		cfg.Providers.MarketplaceAPIKey,
		jsonAdapter,
	)
	chainIndexClient := chainindex.NewClient(
		httpClient,
		rateLimitProxy,
		cfg.Providers.ChainIndexURL,
		cfg.Providers.ChainIndexAPIKey,
		jsonAdapter,
	)
	logger.InfoCtx(ctx, "Initialized provider clients",
		zap.String("marketplace_url", cfg.Providers.MarketplaceURL),
		zap.String("chainindex_url", cfg.Providers.ChainIndexURL),
	)

	// Initialize profile enrichment resolver
	enricher := enrichment.NewResolver(marketplaceClient, cfg.Enrichment.PoolSize)
	defer enricher.Close()

	// Load contract blocklist
	var blocklist registry.Blocklist
	if cfg.BlocklistPath != "" {
		blocklistLoader := registry.NewBlocklistLoader(adapter.NewFileSystem(), jsonAdapter)
		blocklist, err = blocklistLoader.Load(cfg.BlocklistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load contract blocklist",
				zap.Error(err),
				zap.String("path", cfg.BlocklistPath))
		}
		logger.InfoCtx(ctx, "Loaded contract blocklist", zap.String("path", cfg.BlocklistPath))
	} else {
		logger.WarnCtx(ctx, "Contract blocklist path not configured, all contracts will be allowed")
	}

	// Initialize session service
	sessionService := session.NewService(marketplaceClient, chainIndexClient, enricher, blocklist, cfg.Fetch)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, sessionService)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
