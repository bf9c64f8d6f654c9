package main

import (
	"github.com/gin-gonic/gin"
	apphttp "github.com/soldout/backend/internal/http"
	"github.com/soldout/backend/internal/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// multipartOverhead leaves room for form fields around the uploaded files
const multipartOverhead = 1 << 20

// setupRoutes configures all the routes for our application
func (a *App) setupRoutes() error {
	if a.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLoggerMiddleware(a.logger),
		apphttp.RecoveryMiddleware(a.responses, a.logger),
		apphttp.CORSMiddleware(a.config.Server.CORSOrigin),
		apphttp.BodyLimitMiddleware(a.config.Video.MaxSize+a.config.Video.MaxThumbnailSize+multipartOverhead),
	)

	if a.config.Storage.Driver == "local" {
		static := []apphttp.StaticFileConfig{{
			URLPath:  a.config.Storage.PublicPath,
			FilePath: a.config.Storage.UploadDir,
		}}
		if err := apphttp.ServeStaticFiles(router, static); err != nil {
			return err
		}
	}

	router.GET("/health", a.healthHandler.HandleHealthCheck)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticate := a.middleware.Authenticate()
	optionalAuth := a.middleware.OptionalAuthenticate()

	api := router.Group("/api")
	a.authHandler.RegisterRoutes(api)
	a.videoHandler.RegisterRoutes(api, authenticate)
	a.detailHandler.RegisterRoutes(api, optionalAuth)
	a.commentHandler.RegisterRoutes(api, authenticate)
	a.likeHandler.RegisterRoutes(api, authenticate)
	a.userHandler.RegisterRoutes(api, authenticate, optionalAuth)

	adminGroup := api.Group("/admin", authenticate, a.middleware.RequireAdmin())
	a.modHandler.RegisterRoutes(adminGroup)
	a.adminHandler.RegisterRoutes(adminGroup, a.middleware.RequireSuperAdmin())

	a.router = router
	return nil
}
