package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Michaellinaresxk/hitback-server/internal/api"
	"github.com/Michaellinaresxk/hitback-server/internal/catalog"
	"github.com/Michaellinaresxk/hitback-server/internal/config"
	database "github.com/Michaellinaresxk/hitback-server/internal/db"
	"github.com/Michaellinaresxk/hitback-server/internal/game"
	"github.com/Michaellinaresxk/hitback-server/internal/metadata"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting HitBack Game Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()
	if cfg.Game.SeedDemoTracks {
		database.SeedDemoTracks(db.DB)
	}

	// 3. Load the Track Catalog into memory
	cat, err := catalog.Load(db.DB)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	if cat.Size() == 0 {
		log.Println("⚠️ Catalog is empty: rounds cannot start until tracks are imported")
	}

	// 4. Session Store (audio lookups are best-effort and bounded)
	var resolve game.ResolverFunc
	if cfg.Game.AudioEnabled {
		resolve = func(ctx context.Context, title, artist string) (*game.AudioInfo, error) {
			p, err := metadata.ResolvePreview(ctx, title, artist)
			if err != nil {
				return nil, err
			}
			return &game.AudioInfo{
				PreviewURL:      p.PreviewURL,
				DurationSeconds: p.DurationSeconds,
				CoverArtURL:     p.CoverArtURL,
				SourceLink:      p.SourceLink,
			}, nil
		}
	}
	store := game.NewStore(cat, resolve, time.Duration(cfg.Game.AudioTimeoutSeconds)*time.Second)

	// 5. Background sweep of idle sessions
	store.StartCleanupLoop(
		context.Background(),
		time.Duration(cfg.Game.CleanupIntervalMinutes)*time.Minute,
		time.Duration(cfg.Game.SessionMaxAgeMinutes)*time.Minute,
	)

	// 6. Setup Metrics
	game.RegisterMetrics()
	go func() {
		http.Handle("/_metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/_metrics", cfg.Server.MetricsPort)
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Printf("⚠️ Metrics server error: %v", err)
		}
	}()

	// 7. Start Server
	srv := api.New(cfg, db, store, cat)

	log.Printf("🚀 Game server starting on %s", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
