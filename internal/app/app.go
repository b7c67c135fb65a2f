package app

import (
	"context"
	"edu_eval_backend/internal/config"
	"edu_eval_backend/internal/controller"
	"edu_eval_backend/internal/middleware"
	"edu_eval_backend/internal/repository"
	"edu_eval_backend/internal/service"
	"edu_eval_backend/internal/util"
	"edu_eval_backend/pkg/configwatcher"
	"edu_eval_backend/pkg/database"
	"edu_eval_backend/pkg/logger"
	"edu_eval_backend/pkg/monitoring"
	"edu_eval_backend/pkg/security"
	"edu_eval_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question  *repository.QuestionRepository
	response  *repository.ResponseRepository
	feedback  *repository.FeedbackRepository
	report    *repository.ReportRepository
	exportJob *repository.ExportJobRepository
}

type services struct {
	storage    *service.StorageService
	bucketer   *service.PeriodBucketer
	catalog    *service.CatalogService
	submission *service.SubmissionService
	analytics  *service.AnalyticsService
	report     *service.ReportService
	export     *service.ExportService
}

type controllers struct {
	submission *controller.SubmissionController
	catalog    *controller.CatalogController
	analytics  *controller.AnalyticsController
	report     *controller.ReportController
	export     *controller.ExportController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question:  repository.NewQuestionRepository(db),
		response:  repository.NewResponseRepository(db),
		feedback:  repository.NewFeedbackRepository(db),
		report:    repository.NewReportRepository(db),
		exportJob: repository.NewExportJobRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	bucketer, err := service.NewPeriodBucketer(cfg.Period)
	if err != nil {
		logger.Log.Fatal("Invalid period configuration", zap.Error(err))
	}
	s.bucketer = bucketer

	var guard service.SubmissionLocker
	if rdb != nil {
		guard = service.NewRedisSubmissionGuard(rdb, cfg.Submission.LockTTL())
	}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.catalog = service.NewCatalogService(repos.question, cfg.Catalog.OptionLookupConcurrency)
	s.submission = service.NewSubmissionService(repos.question, repos.response, guard)
	s.analytics = service.NewAnalyticsService(repos.feedback, repos.response, s.catalog, s.bucketer)
	s.report = service.NewReportService(repos.report)
	s.export = service.NewExportService(repos.exportJob, s.analytics, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		submission: controller.NewSubmissionController(s.submission),
		catalog:    controller.NewCatalogController(s.catalog),
		analytics:  controller.NewAnalyticsController(s.analytics),
		report:     controller.NewReportController(s.report),
		export:     controller.NewExportController(s.export),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode == gin.DebugMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app
	}

	// Without redis the service runs with the submission guard disabled.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, submission guard disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Fatal("Failed to register validators", zap.Error(err))
	}
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("evaluation-service", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		if err := app.services.bucketer.Update(newCfg.Period); err != nil {
			logger.Log.Error("Rejected period configuration", zap.Error(err))
		}
	})
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, a.ConfigDir, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let running exports record their result.
	a.services.export.Wait()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
