package main

import (
	"fmt"
	"log"
	"os"

	"github.com/menuscraper/backend/config"
	httpDelivery "github.com/menuscraper/backend/internal/delivery/http"
	"github.com/menuscraper/backend/internal/infrastructure/storage"
	"github.com/menuscraper/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting menuscraper catalog service v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// The document is read on every request; a missing file is served as 503
	// until the collector has run.
	store := storage.NewJSONFileStore(cfg.Catalog.Path)
	if _, err := os.Stat(store.Path()); err != nil {
		log.Printf("WARNING: catalog document %s not readable yet: %v", store.Path(), err)
	} else {
		log.Printf("Catalog document: %s", store.Path())
	}

	catalogService := usecase.NewCatalogService(store)

	if cfg.RateLimit.PerIP > 0 {
		log.Printf("Rate limit: %d requests/minute per IP", cfg.RateLimit.PerIP)
	} else {
		log.Printf("Rate limit: disabled")
	}

	handler := httpDelivery.NewHandler(catalogService)
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
