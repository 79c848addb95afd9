// Command server runs the market watchlist aggregation backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotewatch/quotewatch/internal/clients/newsapi"
	"github.com/quotewatch/quotewatch/internal/clients/yahoo"
	"github.com/quotewatch/quotewatch/internal/config"
	"github.com/quotewatch/quotewatch/internal/database"
	"github.com/quotewatch/quotewatch/internal/modules/alerts"
	alerthandlers "github.com/quotewatch/quotewatch/internal/modules/alerts/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/details"
	detailhandlers "github.com/quotewatch/quotewatch/internal/modules/details/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/directory"
	directoryhandlers "github.com/quotewatch/quotewatch/internal/modules/directory/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/news"
	newshandlers "github.com/quotewatch/quotewatch/internal/modules/news/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/quotes"
	"github.com/quotewatch/quotewatch/internal/modules/recommendations"
	recommendationhandlers "github.com/quotewatch/quotewatch/internal/modules/recommendations/handlers"
	"github.com/quotewatch/quotewatch/internal/modules/session"
	sessionhandlers "github.com/quotewatch/quotewatch/internal/modules/session/handlers"
	"github.com/quotewatch/quotewatch/internal/scheduler"
	"github.com/quotewatch/quotewatch/internal/server"
	"github.com/quotewatch/quotewatch/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Str("data_dir", cfg.DataDir).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting quotewatch server")

	// Snapshot database (last-good directory cache)
	snapshotDB, err := database.New(database.Config{
		Path: cfg.SnapshotDBPath(),
		Name: "directory",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot database")
	}
	defer snapshotDB.Close()

	snapshotRepo, err := directory.NewSnapshotRepository(snapshotDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot repository")
	}

	// Company directory. A failed load degrades to the snapshot or an
	// empty universe; the server starts either way.
	source := directory.NewCSVSource(cfg.CompanyFile)
	dir := directory.New(source, snapshotRepo, log)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	dir.Load(loadCtx)
	cancelLoad()

	// Provider clients
	quoteClient := yahoo.NewClient(cfg.QuoteMaxInFlight, cfg.ProviderTimeout, log)
	if cfg.NewsAPIKey == "" {
		log.Warn().Msg("NEWSAPI_KEY not set; news aggregation will return errors")
	}
	newsClient := newsapi.NewClient(cfg.NewsAPIKey, cfg.ProviderTimeout, log)

	// Module services
	sess := session.New(cfg.RecentSearchCap, log)
	enricher := quotes.NewEnricher(quoteClient, log)
	aggregator := news.NewAggregator(newsClient, cfg.NewsPerSymbolLimit, cfg.NewsResultLimit, log)
	summarizer := news.NewHeadlineSummarizer(newsClient, 3, log)
	evaluator := alerts.NewEvaluator(quoteClient, cfg.AlertChangeThreshold, log)
	engine := recommendations.NewEngine(dir, sess, cfg.RecommendationLimit, log)
	detailService := details.NewService(dir, quoteClient, summarizer, log)

	// Scheduler for periodic directory refresh
	sched, err := scheduler.New(log, dir, cfg.RefreshSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("Invalid refresh schedule")
	}
	sched.Start()

	// HTTP server
	srv := server.New(server.Config{
		Log:                    log,
		Config:                 cfg,
		Port:                   cfg.Port,
		DevMode:                cfg.DevMode,
		Directory:              dir,
		DirectoryHandlers:      directoryhandlers.NewHandler(dir, enricher, sess, cfg.SearchResultLimit, log),
		SessionHandlers:        sessionhandlers.NewHandler(sess, cfg.RecentSearchWindow, log),
		NewsHandlers:           newshandlers.NewHandler(aggregator, sess, log),
		AlertHandlers:          alerthandlers.NewHandler(evaluator, sess, log),
		RecommendationHandlers: recommendationhandlers.NewHandler(engine, cfg.DefaultCategory, log),
		DetailHandlers:         detailhandlers.NewHandler(detailService, log),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
