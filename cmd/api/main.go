package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kasunw/lottery-sales-api/api/swagger"
	"github.com/kasunw/lottery-sales-api/internal/handler"
	"github.com/kasunw/lottery-sales-api/internal/middleware"
	"github.com/kasunw/lottery-sales-api/internal/models"
	"github.com/kasunw/lottery-sales-api/internal/repository"
	"github.com/kasunw/lottery-sales-api/internal/service"
	"github.com/kasunw/lottery-sales-api/pkg/config"
	"github.com/kasunw/lottery-sales-api/pkg/database"
	"github.com/kasunw/lottery-sales-api/pkg/logger"
	corsmiddleware "github.com/kasunw/lottery-sales-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kasunw/lottery-sales-api/pkg/middleware/requestid"
)

// @title Lottery Sales API
// @version 1.0.0
// @description Weekly lottery ticket sales collection and reporting
// @BasePath /api
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, logr)
	reportSvc := service.NewReportService(submissionRepo, metricsSvc, logr, service.ReportServiceConfig{
		SummaryLimit: cfg.Reports.SummaryLimit,
		RecentLimit:  cfg.Reports.RecentLimit,
	})
	exportSvc := service.NewExportService(submissionRepo, nil, nil, metricsSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc, metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("", middleware.JWT(authSvc))
		{
			authed.GET("/auth/me", authHandler.Me)

			authed.GET("/submissions", submissionHandler.List)
			authed.POST("/submissions", submissionHandler.Save)
			authed.GET("/submissions/:id", submissionHandler.Get)
			authed.DELETE("/submissions/:id", submissionHandler.Delete)

			authed.GET("/reports/summary", reportHandler.Summary)
			authed.GET("/reports/dashboard", reportHandler.Dashboard)
			authed.GET("/reports/export", reportHandler.Export)

			authed.GET("/users", middleware.RequireRoles(models.RoleTerritoryManager), userHandler.List)
			authed.POST("/users", middleware.RequireRoles(models.RoleTerritoryManager), userHandler.Create)
			authed.DELETE("/users/:id", middleware.RequireRoles(models.RoleTerritoryManager), userHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
