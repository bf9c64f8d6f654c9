package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/database"
	"github.com/soldout/backend/internal/logger"
	"github.com/soldout/backend/internal/schema"
)

func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml and .env")
	seed := flag.Bool("seed", true, "create the configured super admin account")
	status := flag.Bool("status", false, "list applied migrations and exit")
	flag.Parse()

	loggerInstance, err := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync(loggerInstance)

	cfg, err := config.NewConfigService(loggerInstance).Load(*configPath)
	if err != nil {
		loggerInstance.LogFatal(err, "Failed to load configuration")
	}

	// an explicit run always migrates, even where auto-migration is off
	if os.Getenv("FORCE_MIGRATION") == "" {
		os.Setenv("FORCE_MIGRATION", "true")
	}

	dbService := database.NewDatabaseService(&cfg.Database, cfg.Environment, loggerInstance)
	db, err := dbService.Connect()
	if err != nil {
		loggerInstance.LogFatal(err, "Failed to connect to database")
	}
	defer dbService.Close()

	if *status {
		records, err := dbService.AppliedMigrations()
		if err != nil {
			loggerInstance.LogFatal(err, "Failed to read migration history")
		}
		for _, r := range records {
			loggerInstance.LogInfo("Applied migration", map[string]interface{}{
				"name":      r.Name,
				"batch":     r.BatchNo,
				"appliedAt": r.AppliedAt,
			})
		}
		return
	}

	if err := dbService.Migrate(schema.Models()...); err != nil {
		loggerInstance.LogFatal(err, "Migration failed")
	}

	if *seed {
		authConfig := auth.NewConfigFromAuthConfig(&cfg.Auth, &cfg.Video)
		service := auth.NewService(auth.NewUserRepository(db), auth.NewJWTService(authConfig), nil, authConfig, loggerInstance)
		if err := service.SeedSuperAdmin(context.Background(), cfg.Auth.SuperAdmin); err != nil {
			loggerInstance.LogFatal(err, "Failed to seed super admin")
		}
	}

	loggerInstance.LogInfo("Migrations completed", map[string]interface{}{"environment": cfg.Environment})
}
