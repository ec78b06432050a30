package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/infrastructure/cache"
	"github.com/pricelens/backend/internal/infrastructure/extract"
	"github.com/pricelens/backend/internal/infrastructure/fetcher"
	"github.com/pricelens/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.Server.Environment == "development"

	log.Printf("Starting PriceLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Infrastructure
	memoryCache := cache.NewMemoryCache(0)
	defer memoryCache.Close()
	log.Printf("Search cache TTL: %s", cfg.Cache.TTL)

	pageFetcher := fetcher.NewClient(fetcher.Options{
		UserAgent:         cfg.Scraper.UserAgent,
		AcceptLanguage:    cfg.Scraper.AcceptLanguage,
		Timeout:           cfg.Scraper.Timeout,
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
		Burst:             cfg.Scraper.Burst,
	})
	if debug {
		pageFetcher.SetDebug(true)
		log.Printf("Fetcher debug mode enabled")
	}
	log.Printf("Fetcher: timeout=%s, rate=%.1f/s, burst=%d",
		cfg.Scraper.Timeout, cfg.Scraper.RequestsPerSecond, cfg.Scraper.Burst)

	// Usecases
	flipkart := usecase.NewFlipkartSource(pageFetcher, usecase.FlipkartSourceConfig{
		BaseURL:       cfg.Sources.FlipkartBaseURL,
		Retry:         usecase.RetryPolicy{MaxAttempts: cfg.Sources.FlipkartMaxAttempts, Delay: cfg.Scraper.RetryDelay},
		DetailSchema:  extract.DefaultFlipkartDetailSchema(),
		ListingSchema: extract.DefaultListingSchema(),
	})
	amazon := usecase.NewAmazonSource(pageFetcher, usecase.AmazonSourceConfig{
		BaseURL: cfg.Sources.AmazonBaseURL,
		Retry:   usecase.RetryPolicy{MaxAttempts: cfg.Sources.AmazonMaxAttempts, Delay: cfg.Scraper.RetryDelay},
		Schema:  extract.DefaultAmazonSearchSchema(),
	})
	aggregator := usecase.NewAggregator(flipkart, amazon, usecase.NewQueryPreprocessor(debug), cfg.Sources.Parallel)

	harvester := usecase.NewReviewHarvester(pageFetcher, usecase.ReviewHarvesterConfig{
		BaseURL:     cfg.Sources.FlipkartBaseURL,
		TargetCount: cfg.Reviews.TargetCount,
		MaxPages:    cfg.Reviews.MaxPages,
		OnPageError: usecase.PageErrorPolicy(cfg.Reviews.OnPageError),
		Reconcile:   usecase.ReconcilePolicy(cfg.Reviews.Reconcile),
		Schema:      extract.DefaultReviewSchema(),
	})

	log.Printf("Sources: flipkart=%s (attempts=%d), amazon=%s (attempts=%d), parallel=%v",
		cfg.Sources.FlipkartBaseURL, cfg.Sources.FlipkartMaxAttempts,
		cfg.Sources.AmazonBaseURL, cfg.Sources.AmazonMaxAttempts,
		cfg.Sources.Parallel)
	log.Printf("Reviews: target=%d, max_pages=%d, on_page_error=%s, reconcile=%s",
		cfg.Reviews.TargetCount, cfg.Reviews.MaxPages, cfg.Reviews.OnPageError, cfg.Reviews.Reconcile)

	comparisonService := usecase.NewComparisonService(
		flipkart,
		aggregator,
		harvester,
		memoryCache,
		usecase.ComparisonServiceConfig{
			CacheTTL:        cfg.Cache.TTL,
			RequestDeadline: cfg.Server.RequestDeadline,
		},
	)

	// Delivery
	handler := httpDelivery.NewHandler(comparisonService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
