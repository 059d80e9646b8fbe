package app

import (
	"context"
	"edunity_backend/internal/config"
	"edunity_backend/internal/controller"
	"edunity_backend/internal/repository"
	"edunity_backend/internal/service"
	"edunity_backend/pkg/configwatcher"
	"edunity_backend/pkg/database"
	"edunity_backend/pkg/i18n"
	"edunity_backend/pkg/logger"
	"edunity_backend/pkg/monitoring"
	"edunity_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigFile      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	shutdownTracer  func(context.Context) error
	configCallbacks []func(*config.Config)

	// 中间件后台协程随 ctx 退出，Run 关闭前取消
	ctx  context.Context
	stop context.CancelFunc
}

type repositories struct {
	user     *repository.UserRepository
	catalog  *repository.CatalogRepository
	progress *repository.ProgressRepository
	order    *repository.OrderRepository
	note     *repository.NoteRepository
}

type services struct {
	storage *service.StorageService
	study   *service.StudyService
	note    *service.NoteService
}

type controllers struct {
	study  *controller.StudyController
	note   *controller.NoteController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		progress: repository.NewProgressRepository(db),
		order:    repository.NewOrderRepository(db),
		note:     repository.NewNoteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)

	// 目录快照按课程缓存；没有 Redis 时直接读库
	catalog := service.NewCachedCatalog(repos.catalog, rdb, cfg.Study.CatalogCacheTTL())
	s.study = service.NewStudyService(db, catalog, repos.catalog, repos.progress, repos.order, repos.user, s.storage)
	s.note = service.NewNoteService(repos.note, repos.catalog)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		study:  controller.NewStudyController(s.study),
		note:   controller.NewNoteController(s.note),
		health: controller.NewHealthController(db, rdb),
	}
}

// build 组装仓库、服务、控制器和路由，不涉及外部连接的初始化
func (a *App) build(db *gorm.DB, rdb *redis.Client) {
	a.DB = db
	a.Redis = rdb
	a.ctx, a.stop = context.WithCancel(context.Background())

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := i18n.Default.RegisterValidator(v); err != nil {
			logger.Log.Error("Failed to register validator translations", zap.Error(err))
		}
	}

	repos := a.initRepositories(db)
	svcs := a.initServices(repos, a.Config, db, rdb)
	ctrls := a.initControllers(svcs, db, rdb)

	router := gin.New()
	router.Use(gin.Recovery())
	a.setupMiddlewares(a.ctx, router, a.Config)
	a.registerRoutes(router, ctrls, repos, a.Config)

	if a.Config.Storage.Type == "local" {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}
	a.Router = router
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)
	i18n.Default.SetDefaultLocale(cfg.Server.Locale)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{Config: cfg, ConfigFile: filepath.Join("configs", "config.yaml")}
	if cfg.MigrateOnly {
		app.DB = db
		return app
	}

	// Redis 只用于缓存，连不上时降级为直接读库
	rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edunity-study", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.shutdownTracer = tp.Shutdown
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		i18n.Default.SetDefaultLocale(newCfg.Server.Locale)
	})

	app.build(db, rdb)
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := configwatcher.WatchConfig(watchCtx, a.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	a.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
