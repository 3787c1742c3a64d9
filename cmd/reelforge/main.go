package main

import (
	"log"
	"os"
	"time"

	"reelforge/internal/api"
	"reelforge/internal/config"
	"reelforge/internal/generation"
	"reelforge/internal/provider"
	"reelforge/internal/store"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("reelforge: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"upload_dir", cfg.UploadDir,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	registry := provider.NewRegistry(cfg)

	records := generation.NewRecordStore()
	executor := generation.NewExecutor(records, registry, logger, generation.ExecutorConfig{
		WorkScale:   cfg.WorkScale,
		MaxWork:     time.Duration(cfg.MaxWorkSeconds) * time.Second,
		FailureRate: cfg.FailureRate,
	})
	orchestrator := generation.NewOrchestrator(records, registry, executor, logger)

	srv := api.NewServer(cfg, db, registry, orchestrator, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}

	// Let in-flight generations finish their final store writes.
	executor.Wait()
}
