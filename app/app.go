package app

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/app/controller"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/app/router"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/db"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/repository"
	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
)

// feed fetch deadlines: desktop vs constrained-network installs.
const (
	defaultFeedTimeout     = 30 * time.Second
	slowNetworkFeedTimeout = 60 * time.Second
)

// Initialize initializes the application
func Initialize() error {
	feedURL := os.Getenv("FEED_URL")
	if feedURL == "" {
		return fmt.Errorf("FEED_URL environment variable is not set")
	}
	portalURL := os.Getenv("PORTAL_API_URL")
	if portalURL == "" {
		return fmt.Errorf("PORTAL_API_URL environment variable is not set")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// The database is optional: without it the cache store runs
	// memory-only and vehicle lookups scan the snapshot.
	var cacheRepo *repository.CacheRepository
	var vehicleRepo repository.VehicleIndexInterface
	if db.InitOptional() {
		if err := db.Migrate(db.DB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		cacheRepo = repository.NewCacheRepository(db.DB)
		vehicleRepo = repository.NewVehicleRepository(db.DB)
	} else {
		cacheRepo = repository.NewCacheRepository(nil)
	}

	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	feedTimeout := defaultFeedTimeout
	if os.Getenv("SLOW_NETWORK") == "true" {
		feedTimeout = slowNetworkFeedTimeout
	}
	if raw := os.Getenv("FEED_TIMEOUT_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			feedTimeout = time.Duration(n) * time.Second
		}
	}

	feedService := service.NewFeedService(feedURL, feedTimeout, cacheRepo, vehicleRepo)
	portalService := service.NewPortalService(portalURL)
	quoteService := service.NewQuoteService(feedService, portalService)
	renderService := service.NewRenderService("templates")
	exportService := service.NewExportService(baseURL)
	printerService := service.NewPrinterService()
	optimizer := service.NewImageOptimizer()

	displaySettings, err := service.LoadDisplaySettings(os.Getenv("DISPLAY_CONFIG"))
	if err != nil {
		log.Printf("⚠️ Initialize: using default display settings: %v", err)
	}
	hub := service.NewDisplayHub()
	feedService.OnRefresh(hub.BroadcastInventoryUpdated)

	controllers := &router.Controllers{
		Inventory: controller.NewInventoryController(feedService, cacheRepo),
		Quote:     controller.NewQuoteController(quoteService, renderService, exportService, cacheRepo),
		Tag:       controller.NewTagController(quoteService, renderService, exportService),
		Display:   controller.NewDisplayController(feedService, quoteService, renderService, hub, displaySettings),
		Printer:   controller.NewPrinterController(printerService),
		Media:     controller.NewMediaController(optimizer),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
