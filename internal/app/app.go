package app

import (
	"context"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/internal/controller"
	"linguist_ai_backend/internal/repository"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"
	"linguist_ai_backend/pkg/database"
	"linguist_ai_backend/pkg/logger"
	"linguist_ai_backend/pkg/monitoring"
	"linguist_ai_backend/pkg/security"
	"linguist_ai_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	lesson   *repository.LessonRepository
	activity *repository.ActivityRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	lesson    *service.LessonService
	progress  *service.ProgressService
	dashboard *service.DashboardService
	storage   *service.StorageService
	gemini    *service.GeminiService
	admin     *service.AdminService
	liveHub   *service.LiveHub
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	lesson    *controller.LessonController
	progress  *controller.ProgressController
	dashboard *controller.DashboardController
	ai        *controller.AIController
	live      *controller.LiveController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig applies the hot-reloadable sections of a fresh config.
// Server, database and redis settings need a restart and are left alone.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.ApplyReloadable(cfg)
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		lesson:   repository.NewLessonRepository(db),
		activity: repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, rdb, cfg)
	s.user = service.NewUserService(repos.user, repos.activity)
	s.lesson = service.NewLessonService(repos.lesson, s.storage)
	s.progress = service.NewProgressService(repos.user, repos.activity, db)
	s.dashboard = service.NewDashboardService(repos.user, repos.lesson, repos.activity)
	s.gemini = service.NewGeminiService(cfg.Gemini, rdb)

	s.liveHub = service.NewLiveHub(cfg, rdb)
	go s.liveHub.Run()

	s.admin = service.NewAdminService(repos.user, repos.lesson, repos.activity, s.auth, s.storage, s.liveHub, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		lesson:    controller.NewLessonController(s.lesson),
		progress:  controller.NewProgressController(s.progress),
		dashboard: controller.NewDashboardController(s.dashboard),
		ai:        controller.NewAIController(s.gemini, s.storage),
		live:      controller.NewLiveController(s.liveHub),
		admin:     controller.NewAdminController(s.admin),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.MigrateOnly {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		if cfg.MigrateOnly {
			logger.Log.Info("Migration finished, exiting")
			os.Exit(0)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// GeminiService holds its own copy of the section, so it needs a push
	// on reload.
	app.RegisterConfigCallback(func(fresh *config.Config) {
		services.gemini.UpdateConfig(fresh.Gemini)
	})

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("linguist-ai", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Close voice sessions before the HTTP listener so clients get a
	// final status message.
	if a.services != nil && a.services.liveHub != nil {
		a.services.liveHub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
