package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/handler"
	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/repository"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	"github.com/bau-eg/university-portal/pkg/cache"
	"github.com/bau-eg/university-portal/pkg/config"
	"github.com/bau-eg/university-portal/pkg/database"
	"github.com/bau-eg/university-portal/pkg/logger"
	corsmiddleware "github.com/bau-eg/university-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/bau-eg/university-portal/pkg/middleware/requestid"
	"github.com/bau-eg/university-portal/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	docStore, err := storage.NewDocumentStore(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload dir", "error", err)
	}

	sessions := session.NewManager(session.NewRedisStore(redisClient), cfg.Session)

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	authSvc := service.NewAuthService(userRepo, activityRepo, sessions, nil, logr)
	dashboardSvc := service.NewDashboardService(userRepo, catalogRepo, activityRepo, logr)
	documentSvc := service.NewDocumentService(docStore, activityRepo, logr, cfg.Uploads.AllowedExtensions, cfg.Uploads.MaxFileSizeBytes)
	resultSvc := service.NewResultService(catalogRepo, nil, logr)
	exportSvc := service.NewExportService(catalogRepo, activityRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc, sessions, metricsSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, sessions, logr)
	documentHandler := handler.NewDocumentHandler(documentSvc, metricsSvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/login")
	})

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/download/:filename", documentHandler.Download)

	authed := r.Group("/", middleware.RequireSession(sessions))
	authed.GET("/dashboard", dashboardHandler.Show)
	authed.POST("/upload", documentHandler.Upload)
	authed.POST("/results", middleware.RequireRoles(models.RoleProfessor, models.RoleAdmin), resultHandler.Publish)
	if cfg.Exports.Enabled {
		authed.GET("/export/:file", middleware.RequireRoles(models.RoleAdmin), exportHandler.Download)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
