package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"serpscope/analyzer"
	"serpscope/api"
	"serpscope/config"
	"serpscope/crawler"
	"serpscope/search"
	"serpscope/serp"

	"go.uber.org/zap"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	tunables := cfg.Tunables

	// =========
	// Logging
	// =========
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	logger, err := loggerConfig.Build()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Profiling
	// =========
	if cfg.PprofPort != 0 {
		go func() {
			addr := ":" + strconv.Itoa(cfg.PprofPort)
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Warn("pprof server stopped", zap.String("addr", addr), zap.Error(err))
			}
		}()
	}

	// =========
	// Chromedp
	// =========
	browser := crawler.NewBrowser(&tunables.Render, logger.Named("browser"))

	// =========
	// Page fetcher
	// =========
	fetcher, err := crawler.NewFetcher(&tunables.Fetch, logger.Named("fetcher"))
	if err != nil {
		logger.Fatal("failed to create page fetcher", zap.Error(err))
	}

	// =========
	// Extraction & analysis
	// =========
	extractor, err := serp.NewExtractor(&tunables.Extract, logger.Named("serp"))
	if err != nil {
		logger.Fatal("failed to create extractor", zap.Error(err))
	}
	pageAnalyzer := analyzer.NewAnalyzer(&tunables.Analyze, logger.Named("analyzer"))

	// =========
	// Search Service
	// =========
	service := search.NewService(&tunables.Aggregate, browser, fetcher, extractor, pageAnalyzer, logger.Named("search"))

	// =========
	// HTTP
	// =========
	server := api.NewServer(service, cfg.AppPort, tunables.Server.RequestTimeout, logger.Named("api"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("API server failed", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), tunables.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
