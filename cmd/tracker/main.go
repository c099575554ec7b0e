package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btc-tracker-go/internal/binance"
	"btc-tracker-go/internal/config"
	"btc-tracker-go/internal/database"
	"btc-tracker-go/internal/logger"
	"btc-tracker-go/internal/notify"
	"btc-tracker-go/internal/pricefeed"
	"btc-tracker-go/internal/scheduler"
	"btc-tracker-go/internal/storage"
	"btc-tracker-go/internal/tracker"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")
	repo := storage.NewRepository(db)

	// Initialize the price feed client
	feed := pricefeed.NewClient(&cfg.PriceFeed, log)

	// Initialize the Binance venue client. Without credentials the engine
	// runs in DB-only bookkeeping mode.
	venue := binance.NewRestClient(&cfg.Binance, log)
	if venue.IsConfigured() {
		if _, err := venue.GetServerTime(); err != nil {
			log.Fatal("Failed to connect to Binance API", zap.Error(err))
		}
		log.Info("Successfully connected to Binance API.")
	} else {
		log.Warn("Binance credentials not configured. Orders will be recorded in the database only.")
	}

	// Assemble notifiers
	var notifiers notify.Multi
	if cfg.Telegram.Enabled {
		tg, err := notify.NewTelegram(&cfg.Telegram, log)
		if err != nil {
			log.Error("Telegram notifier unavailable, continuing without it", zap.Error(err))
		} else {
			notifiers = append(notifiers, tg)
		}
	}
	if cfg.Email.Enabled {
		notifiers = append(notifiers, notify.NewEmail(&cfg.Email))
	}
	var notifier notify.Notifier = notifiers
	if len(notifiers) == 0 {
		log.Warn("No notifiers configured, alerts will be dropped")
		notifier = notify.Nop{}
	}

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	// Initialize the engine, status server and scheduler
	engine := tracker.NewEngine(log, repo, feed, venue, notifier)

	apiServer := tracker.NewAPIServer(engine, cfg.Server.Port, log)
	apiServer.Start()

	sched, err := scheduler.New(&cfg.Scheduler, engine.RunCycle, log, ctx)
	if err != nil {
		log.Fatal("Failed to create scheduler", zap.Error(err))
	}
	sched.Start()

	<-ctx.Done()

	sched.Stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server", zap.Error(err))
	}

	log.Info("Bot has been shut down.")
}
