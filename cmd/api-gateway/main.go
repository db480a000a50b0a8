package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/wayplan-api/api/swagger"
	"github.com/noah-isme/wayplan-api/internal/handler"
	"github.com/noah-isme/wayplan-api/internal/middleware"
	"github.com/noah-isme/wayplan-api/internal/repository"
	"github.com/noah-isme/wayplan-api/internal/service"
	"github.com/noah-isme/wayplan-api/pkg/cache"
	"github.com/noah-isme/wayplan-api/pkg/config"
	"github.com/noah-isme/wayplan-api/pkg/database"
	"github.com/noah-isme/wayplan-api/pkg/geo"
	"github.com/noah-isme/wayplan-api/pkg/jobs"
	"github.com/noah-isme/wayplan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/wayplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/wayplan-api/pkg/middleware/requestid"
	"github.com/noah-isme/wayplan-api/pkg/storage"
)

// @title Wayplan API
// @version 1.0.0
// @description Trip itinerary planning, scheduling and budget service
// @BasePath /api/v1
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
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	exportStore, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}

	validate := validator.New()

	tripRepo := repository.NewTripRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	var saveQueue *jobs.Queue
	metricsSvc := service.NewMetricsService(func() int {
		if saveQueue == nil {
			return 0
		}
		return saveQueue.Depth()
	})

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Trips.CacheTTL, logr, cfg.Trips.CacheEnabled)
	tripSvc := service.NewTripService(tripRepo, cacheSvc, validate, logr, cfg.Trips.CacheTTL, cfg.Trips.DefaultTravelers)
	itinerarySvc := service.NewItineraryService(tripRepo, cacheSvc, nil, metricsSvc, validate, logr, cfg.Trips.AutosaveDebounce, cfg.Trips.SaveRetries)

	saveQueue = jobs.NewQueue("itinerary-save", itinerarySvc.HandleSaveJob, jobs.QueueConfig{
		Workers:    cfg.Trips.SaveWorkers,
		MaxRetries: cfg.Trips.SaveRetries,
		Logger:     logr,
	})
	itinerarySvc.SetQueue(saveQueue)

	calc := geo.NewCalculator(logr)
	scheduleSvc := service.NewScheduleService(calc, logr, service.ScheduleConfig{
		DayStart:               cfg.Schedule.DayStart,
		BufferMinutes:          cfg.Schedule.BufferMinutes,
		DefaultDurationMinutes: cfg.Schedule.DefaultDuration,
		MinGapMinutes:          cfg.Schedule.MinGapMinutes,
		ClusterRadiusKm:        cfg.Schedule.ClusterRadiusKm,
	})
	budgetSvc := service.NewBudgetService(logr)
	calendarSvc := service.NewCalendarService(logr)
	signer := storage.NewSigner(cfg.Export.SignedURLSecret, cfg.Export.SignedURLTTL)
	exportSvc := service.NewExportService(budgetSvc, calendarSvc, exportStore, signer, logr)
	exportSvc.Sweep(cfg.Export.SignedURLTTL)

	tripHandler := handler.NewTripHandler(tripSvc, itinerarySvc)
	itineraryHandler := handler.NewItineraryHandler(itinerarySvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, itinerarySvc, cfg.Schedule.MinGapMinutes)
	budgetHandler := handler.NewBudgetHandler(budgetSvc, tripSvc, itinerarySvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, tripSvc, itinerarySvc)
	exportHandler := handler.NewExportHandler(exportSvc, tripSvc, itinerarySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The queue outlives the signal context so pending saves can drain
	// during shutdown.
	saveQueue.Start(context.Background())

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/status", metricsHandler.Snapshot)

		api.GET("/trips", tripHandler.List)
		api.POST("/trips", tripHandler.Create)
		api.GET("/trips/:id", tripHandler.Get)
		api.PATCH("/trips/:id", tripHandler.Update)
		api.DELETE("/trips/:id", tripHandler.Delete)

		api.GET("/trips/:id/days", itineraryHandler.Days)
		api.POST("/trips/:id/days", itineraryHandler.AddDay)
		api.DELETE("/trips/:id/days/:day", itineraryHandler.RemoveDay)
		api.POST("/trips/:id/items", itineraryHandler.AddItem)
		api.PATCH("/trips/:id/days/:day/items/:itemId", itineraryHandler.UpdateItem)
		api.DELETE("/trips/:id/days/:day/items/:itemId", itineraryHandler.DeleteItem)
		api.POST("/trips/:id/days/:day/items/:itemId/move", itineraryHandler.MoveItem)

		api.GET("/trips/:id/schedule/conflicts", scheduleHandler.Conflicts)
		api.POST("/trips/:id/schedule/optimize", scheduleHandler.Optimize)
		api.POST("/trips/:id/schedule/days/:day/auto", scheduleHandler.AutoSchedule)
		api.GET("/trips/:id/schedule/days/:day/state", scheduleHandler.DayState)
		api.GET("/trips/:id/schedule/days/:day/gaps", scheduleHandler.Gaps)
		api.GET("/trips/:id/schedule/days/:day/route", scheduleHandler.Route)

		api.GET("/trips/:id/budget", budgetHandler.Summary)
		api.GET("/trips/:id/budget/export", budgetHandler.Export)

		api.GET("/trips/:id/calendar", calendarHandler.Events)
		api.GET("/trips/:id/calendar.ics", calendarHandler.ICS)

		api.POST("/trips/:id/exports", exportHandler.Create)
		api.GET("/exports/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("server shutdown", "error", err)
	}

	// Push out any edits still sitting behind the debounce, let the
	// workers drain, then stop.
	itinerarySvc.Flush()
	drainDeadline := time.Now().Add(5 * time.Second)
	for saveQueue.Depth() > 0 && time.Now().Before(drainDeadline) {
		time.Sleep(50 * time.Millisecond)
	}
	saveQueue.Stop()
}
