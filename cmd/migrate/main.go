package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/config"
	"github.com/foodai/festival-guide/backend/internal/catalog"
	"github.com/foodai/festival-guide/backend/internal/database"
	"github.com/foodai/festival-guide/backend/internal/logger"
	"github.com/foodai/festival-guide/backend/internal/models"
)

func main() {
	seed := flag.Bool("seed", false, "Seed the catalog tables after migrating")
	from := flag.String("from", "", "YAML catalog to seed from (default: the embedded festival catalog)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	zlog.Info("catalog tables migrated", zap.String("driver", cfg.DBDriver))

	if !*seed {
		return
	}

	var (
		booths []models.Booth
		items  []models.MenuItem
	)
	if *from != "" {
		booths, items, err = catalog.ReadFile(*from)
	} else {
		booths, items, err = catalog.Embedded()
	}
	if err != nil {
		zlog.Fatal("failed to read catalog", zap.Error(err))
	}

	// validate and derive booth flags before writing
	cat := catalog.New(booths, items, zlog)
	if err := database.Seed(context.Background(), db, cat.Booths(), cat.Items()); err != nil {
		zlog.Fatal("seeding failed", zap.Error(err))
	}
	zlog.Info("catalog seeded", zap.Int("booths", cat.BoothCount()), zap.Int("menu_items", cat.ItemCount()))
}
