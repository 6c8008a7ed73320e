package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"chartadvisor/adapters/api"
	"chartadvisor/adapters/localstore"
	"chartadvisor/adapters/postgres"
	"chartadvisor/internal/config"
	"chartadvisor/internal/profile"
	"chartadvisor/internal/recommend"
	"chartadvisor/ports"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	charts, err := buildChartStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize chart store: %v", err)
	}

	extractor := profile.NewExtractor(profile.Config{
		SampleSize:      cfg.Profiling.SampleSize,
		MaxSampleValues: cfg.Profiling.MaxSampleValues,
	})
	engine := recommend.NewEngine()

	server := api.NewServer(extractor, engine, charts)
	log.Printf("Starting chartadvisor API on :%s", cfg.Server.Port)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildChartStore prefers the PostgreSQL backend when configured and falls
// back to the local file-backed cache.
func buildChartStore(cfg *config.Config) (ports.ChartStore, error) {
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			return nil, err
		}
		log.Println("Chart store: PostgreSQL")
		return postgres.NewChartRepository(db), nil
	}

	log.Printf("Chart store: local files at %s", cfg.Store.Dir)
	return localstore.New(localstore.NewFileBlobStore(cfg.Store.Dir)), nil
}
