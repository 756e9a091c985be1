package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rfpmatch/backend/config"
	httpDelivery "github.com/rfpmatch/backend/internal/delivery/http"
	"github.com/rfpmatch/backend/internal/infrastructure/cache"
	"github.com/rfpmatch/backend/internal/infrastructure/catalogue"
	"github.com/rfpmatch/backend/internal/infrastructure/listing"
	"github.com/rfpmatch/backend/internal/infrastructure/notify"
	"github.com/rfpmatch/backend/internal/infrastructure/store"
	"github.com/rfpmatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting RFPMatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Listing: %s", cfg.Listing.BaseURL)
	log.Printf("Catalogue: %s", cfg.Catalogue.Path)

	// Initialize infrastructure dependencies
	listingClient := listing.NewClient(cfg.Listing.BaseURL, cfg.Listing.Timeout, cfg.Listing.RequestsPerMin)
	catalogueLoader := catalogue.NewCSVLoader(cfg.Catalogue.Path)
	listingCache := cache.NewMemoryCache()

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		listingClient.SetDebug(true)
		log.Printf("Listing client debug mode enabled")
	}

	recordStore, err := store.NewCSVStore(cfg.Store.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot store: %v", err)
	}

	notifier := notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.To)
	if notifier.Enabled() {
		log.Printf("Notifications: %s -> %v", cfg.SMTP.From, cfg.SMTP.To)
	} else {
		log.Printf("Notifications disabled (no SMTP host configured)")
	}

	// Initialize usecase layer
	matchService := usecase.NewMatchService(
		listingClient,
		catalogueLoader,
		listingCache,
		usecase.MatchServiceConfig{
			TopK:               cfg.Matching.TopK,
			IncludeClosed:      cfg.Matching.IncludeClosed,
			MaxRecords:         cfg.Matching.MaxRecords,
			MaxCatalogue:       cfg.Matching.MaxCatalogue,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: top_k=%d, include_closed=%v, debug=%v",
		cfg.Matching.TopK,
		cfg.Matching.IncludeClosed,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(matchService, recordStore, notifier)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
