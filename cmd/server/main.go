package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/JustJay7/hukuk-okuyucu/internal/api"
	"github.com/JustJay7/hukuk-okuyucu/internal/cache"
	"github.com/JustJay7/hukuk-okuyucu/internal/config"
	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/internal/pdftext"
	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
	"github.com/JustJay7/hukuk-okuyucu/internal/server"
	"github.com/JustJay7/hukuk-okuyucu/internal/storage"
	"github.com/JustJay7/hukuk-okuyucu/internal/store"
	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

func main() {
	var migrate bool
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer database.Close(db)

	if migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}
		log.Info("Database migrations completed successfully")
		return
	}

	tables, err := rules.Load(cfg.RulesPath)
	if err != nil {
		log.Fatal("Failed to load rule tables", "path", cfg.RulesPath, "error", err)
	}

	analyzer, err := extract.New(tables, extract.Options{
		FocusWindow:  cfg.FocusWindow,
		AmountWindow: cfg.AmountWindow,
	})
	if err != nil {
		log.Fatal("Failed to compile rule tables", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recordStore, err := store.Open(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("Failed to open record store", "backend", cfg.StoreBackend, "error", err)
	}

	archive, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize upload archive", "backend", cfg.ArchiveBackend, "error", err)
	}

	srv := server.New(cfg, api.Deps{
		DB:       db,
		Cache:    cache.NewCache(cfg.CacheSize, cfg.CacheTTL),
		Analyzer: analyzer,
		PDF:      pdftext.NewExtractor(log, cfg.MaxUploadSize),
		Store:    recordStore,
		Archive:  archive,
		Logger:   log,
		Config:   cfg,
	})

	log.Info("Starting Hukuk Okuyucu",
		"host", cfg.Host,
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"archive", cfg.ArchiveBackend,
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start", "error", err)
	}
}
