package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/database"
	"github.com/pageza/pantry-chef/backend/internal/logger"
	"github.com/pageza/pantry-chef/backend/internal/models"
)

func main() {
	drop := flag.Bool("drop", false, "Drop the usage tables instead of migrating them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.DatabaseEnabled() {
		log.Fatal("DB_HOST is not set, nothing to migrate")
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(lg)

	db, err := database.New(context.Background(), cfg, lg)
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if *drop {
		if err := db.Migrator().DropTable(&models.GenerationRecord{}); err != nil {
			lg.Fatal("failed to drop usage tables", zap.Error(err))
		}
		lg.Info("dropped usage tables")
		return
	}

	if err := database.RunMigrations(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	lg.Info("usage tables migrated")
}
