// @title Linguist AI API
// @version 1.0
// @description Backend for the Linguist AI language learning app: lessons, progress tracking, generative exercises and the realtime voice lab.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"linguist_ai_backend/internal/app"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/pkg/configwatcher"
	"linguist_ai_backend/pkg/logger"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force migrations on startup (even in release mode)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if fresh, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(fresh)
		}
	})

	application.Run()
}
