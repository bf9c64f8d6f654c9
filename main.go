package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/soldout/backend/docs/api"
	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/logger"
)

// @title           Soldout API
// @version         1.0
// @description     Video catalogue, moderation and community API
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Initialize logger for bootstrapping
	bootLogger, err := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Load configuration
	configService := config.NewConfigService(bootLogger)
	cfg, err := configService.Load(".")
	if err != nil {
		bootLogger.LogFatal(err, "Failed to load configuration")
	}

	// Create a context that will be canceled on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		bootLogger.LogFatal(err, "Failed to initialize application")
	}

	if err := app.Run(ctx); err != nil {
		app.logger.LogError(err, "Application error")
	}

	if err := app.Shutdown(); err != nil {
		app.logger.LogError(err, "Error during shutdown")
		logger.Sync(app.logger)
		os.Exit(1)
	}
	logger.Sync(app.logger)
}
