package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soldout/backend/internal/admin"
	"github.com/soldout/backend/internal/auth"
	"github.com/soldout/backend/internal/cache"
	"github.com/soldout/backend/internal/comment"
	"github.com/soldout/backend/internal/config"
	"github.com/soldout/backend/internal/database"
	"github.com/soldout/backend/internal/detail"
	"github.com/soldout/backend/internal/events"
	"github.com/soldout/backend/internal/health"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/interaction"
	"github.com/soldout/backend/internal/logger"
	"github.com/soldout/backend/internal/moderation"
	"github.com/soldout/backend/internal/schema"
	"github.com/soldout/backend/internal/storage"
	"github.com/soldout/backend/internal/storage/ipfs"
	"github.com/soldout/backend/internal/storage/local"
	"github.com/soldout/backend/internal/storage/s3"
	"github.com/soldout/backend/internal/user"
	"github.com/soldout/backend/internal/video"
	"gorm.io/gorm"
)

// App holds all application dependencies
type App struct {
	config    *config.Config
	logger    logger.Logger
	database  *database.DatabaseService
	db        *gorm.DB
	redis     *cache.RedisService
	store     storage.FileStore
	publisher events.Publisher
	views     *cache.ViewBuffer
	viewsDone chan struct{}
	router    *gin.Engine
	server    *http.Server

	responses      apphttp.ResponseHandler
	middleware     *auth.Middleware
	authHandler    *auth.Handler
	videoHandler   *video.Handler
	commentHandler *comment.Handler
	likeHandler    *interaction.Handler
	detailHandler  *detail.Handler
	userHandler    *user.Handler
	modHandler     *moderation.Handler
	adminHandler   *admin.Handler
	healthHandler  *health.Handler
}

// NewApp creates a new application instance with all dependencies
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %v", err)
	}
	app := &App{config: cfg, logger: log}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initInfrastructure(ctx); err != nil {
		app.Shutdown()
		return nil, err
	}
	if err := app.initServices(ctx); err != nil {
		app.Shutdown()
		return nil, err
	}
	if err := app.setupRoutes(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

func (a *App) initDatabase() error {
	a.database = database.NewDatabaseService(&a.config.Database, a.config.Environment, a.logger)
	db, err := a.database.Connect()
	if err != nil {
		return fmt.Errorf("failed to setup database: %v", err)
	}
	a.db = db
	if err := a.database.Migrate(schema.Models()...); err != nil {
		a.database.Close()
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}

func (a *App) initInfrastructure(ctx context.Context) error {
	store, err := newFileStore(ctx, &a.config.Storage, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %v", a.config.Storage.Driver, err)
	}
	a.store = store

	if a.config.Redis.Enabled {
		redis, err := cache.NewRedisService(&a.config.Redis)
		if err != nil {
			return err
		}
		a.redis = redis
	}

	a.publisher = events.NoopPublisher{}
	if a.config.Events.Enabled {
		publisher, err := events.NewRabbitPublisher(&a.config.Events, a.logger)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %v", err)
		}
		a.publisher = publisher
	}
	return nil
}

// repositories groups the persistence ports the services are built on
type repositories struct {
	users        auth.UserRepository
	videos       video.Repository
	comments     comment.Repository
	interactions interaction.Repository
	audits       admin.AuditRepository
}

func gormRepositories(db *gorm.DB) repositories {
	return repositories{
		users:        auth.NewUserRepository(db),
		videos:       video.NewRepository(db),
		comments:     comment.NewRepository(db),
		interactions: interaction.NewRepository(db),
		audits:       admin.NewAuditRepository(db),
	}
}

func (a *App) initServices(ctx context.Context) error {
	return a.buildHandlers(ctx, gormRepositories(a.db))
}

func (a *App) buildHandlers(ctx context.Context, repos repositories) error {
	users, videos, comments, interactions := repos.users, repos.videos, repos.comments, repos.interactions

	var shared cache.Service
	if a.redis != nil {
		shared = a.redis
	}
	lists, err := cache.NewListCache(a.config.Video.ListCacheSize, shared, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create list cache: %v", err)
	}

	authConfig := auth.NewConfigFromAuthConfig(&a.config.Auth, &a.config.Video)
	authService := auth.NewService(users, auth.NewJWTService(authConfig), a.store, authConfig, a.logger)
	if err := authService.SeedSuperAdmin(ctx, a.config.Auth.SuperAdmin); err != nil {
		return fmt.Errorf("failed to seed super admin: %v", err)
	}

	videoService := video.NewService(videos, a.store, lists, a.publisher, video.NewConfigFromVideoConfig(&a.config.Video), a.logger)

	machine, err := moderation.NewStateMachine(a.config.Moderation.Transitions)
	if err != nil {
		return fmt.Errorf("invalid moderation transitions: %v", err)
	}
	moderator := moderation.NewService(videos, machine, videoService, a.publisher, a.logger)

	commentService := comment.NewService(comments, users, videos, a.logger)
	interactionService := interaction.NewService(interactions, videos, comments, users, a.logger)

	var views video.ViewCounter = video.NewDirectViewCounter(videos)
	if a.config.Views.Mode == "buffered" {
		a.views = cache.NewViewBuffer(a.redis.Client(), videos, a.config.Views.FlushInterval, a.logger)
		views = a.views
	}

	reader := detail.NewReader(videos, commentService, interactions, views, a.logger)
	profiles := user.NewService(users, videoService, interactions, a.store, authConfig.Picture, a.logger)
	adminService := admin.NewService(users, videoService, authService, repos.audits, a.publisher, a.logger)

	a.responses = apphttp.NewResponseHandler(a.logger)
	a.middleware = auth.NewMiddleware(authService, a.responses)
	a.authHandler = auth.NewHandler(authService, a.responses)
	a.videoHandler = video.NewHandler(videoService, a.responses)
	a.commentHandler = comment.NewHandler(commentService, a.responses)
	a.likeHandler = interaction.NewHandler(interactionService, a.responses)
	a.detailHandler = detail.NewHandler(reader, a.responses)
	a.userHandler = user.NewHandler(profiles, a.responses)
	a.modHandler = moderation.NewHandler(moderator, a.responses)
	a.adminHandler = admin.NewHandler(adminService, a.responses)

	checks := map[string]health.Pinger{}
	if a.database != nil {
		checks["database"] = a.database
	}
	if a.redis != nil {
		checks["cache"] = a.redis
	}
	a.healthHandler = health.NewHandler(checks, a.responses, a.logger)
	return nil
}

// newFileStore picks the asset backend named by cfg.Driver
func newFileStore(ctx context.Context, cfg *storage.Config, log logger.Logger) (storage.FileStore, error) {
	switch cfg.Driver {
	case "s3":
		return s3.NewService(ctx, &cfg.S3, log)
	case "ipfs":
		return ipfs.NewService(&cfg.IPFS, log), nil
	default:
		return local.NewService(cfg, log)
	}
}

// Run serves HTTP until ctx is cancelled or the listener fails
func (a *App) Run(ctx context.Context) error {
	if a.views != nil {
		a.viewsDone = make(chan struct{})
		go func() {
			defer close(a.viewsDone)
			a.views.Run(ctx)
		}()
	}

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.LogInfo("Starting server", map[string]interface{}{"port": a.config.Server.Port})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return a.logger.LogError(err, "server failed to start")
		}
		return nil
	case <-ctx.Done():
		a.logger.LogInfo("Received shutdown signal", nil)
		return nil
	}
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.logger.LogInfo("Initiating graceful shutdown", nil)

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.LogWarn("Error stopping HTTP server", map[string]interface{}{"error": err.Error()})
			shutdownErr = err
		}
	}

	// the flusher drains once more after its context ends
	if a.viewsDone != nil {
		select {
		case <-a.viewsDone:
		case <-ctx.Done():
			a.logger.LogWarn("Timed out waiting for view flush", nil)
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.LogWarn("Error closing event publisher", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.LogWarn("Error closing cache connections", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.LogWarn("Error closing storage", map[string]interface{}{"error": err.Error()})
		}
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.logger.LogWarn("Error closing database connections", map[string]interface{}{"error": err.Error()})
		}
	}

	a.logger.LogInfo("Application shutdown complete", nil)
	return shutdownErr
}
