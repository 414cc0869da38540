package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btcwallet/internal/adapters/cache"
	"btcwallet/internal/adapters/httpclient"
	"btcwallet/internal/adapters/postgres"
	"btcwallet/internal/api"
	"btcwallet/internal/audit"
	"btcwallet/internal/config"
	"btcwallet/internal/ledger"
	ledgerhandler "btcwallet/internal/ledger/handler"
	"btcwallet/internal/platform/db"
	httpserver "btcwallet/internal/platform/http"
	"btcwallet/internal/rate"
	ratehandler "btcwallet/internal/rate/handler"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts the rate poller, the staleness monitor and HTTP server
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	clock := clockwork.NewRealClock()

	// Ledger
	walletCache, err := cache.NewWalletCache(time.Duration(appCfg.Cache.WalletTTLSec) * time.Second)
	if err != nil {
		return fmt.Errorf("failed to create wallet cache: %w", err)
	}
	defer walletCache.Close()
	ledgerService := ledger.NewService(postgres.NewLedgerStore(pool), walletCache, clock)
	if _, err = ledgerService.Wallet(startupCtx); err != nil {
		logrus.WithError(err).Error("Failed to load wallet")
		return err
	}
	logrus.Info("✅ Wallet loaded")

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}
	rateClient := httpclient.NewCoindeskClient(baseHTTPClient, appCfg.RateAPI.URL, appCfg.RateAPI.Timeout(), clock)

	// Rate poller feeding the audit log and the wallet's cached rate
	sink := audit.NewMemorySink(clock)
	poller := rate.NewPoller(rateClient, sink, ledgerService,
		rate.WithClock(clock),
		rate.WithRatePrecision(appCfg.Poller.RatePrecision),
	)
	// Ensure the poller stops before DB pool closes
	defer poller.Stop()
	if appCfg.Poller.Autostart {
		if startErr := poller.Start(ctx, appCfg.Poller.Interval()); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start rate poller")
			return startErr
		}
		logrus.Info("✅ Rate poller activation successful")
	}

	maxAge := time.Duration(appCfg.Monitor.MaxAgeSec) * time.Second
	monitor := rate.NewStalenessMonitor(poller, time.Duration(appCfg.Monitor.IntervalSec)*time.Second, maxAge, clock)
	defer func() {
		if shutDownErr := monitor.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Staleness monitor shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := monitor.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start staleness monitor")
		return startErr
	}
	logrus.Info("✅ Staleness monitor activation successful")

	// Handlers and router
	rateHandler := ratehandler.NewRateHandler(ctx, poller, sink, maxAge, clock)
	ledgerHandler := ledgerhandler.NewLedgerHandler(ledgerService)
	router := api.NewRouter(rateHandler, ledgerHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
