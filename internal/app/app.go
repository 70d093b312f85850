package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"signclass_backend/internal/config"
	"signclass_backend/internal/controller"
	"signclass_backend/internal/repository"
	"signclass_backend/internal/service"
	"signclass_backend/pkg/database"
	"signclass_backend/pkg/logger"
	"signclass_backend/pkg/monitoring"
	"signclass_backend/pkg/security"
	"signclass_backend/pkg/tracing"
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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	class      *repository.ClassRepository
	lesson     *repository.LessonRepository
	evaluation *repository.EvaluationRepository
	response   *repository.EvaluationResponseRepository
	challenge  *repository.ChallengeRepository
	metrics    *repository.MetricsRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	class      *service.ClassService
	lesson     *service.LessonService
	evaluation *service.EvaluationService
	challenge  *service.ChallengeService
	metrics    *service.MetricsService
	storage    *service.StorageService
	media      *service.MediaService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	class      *controller.ClassController
	lesson     *controller.LessonController
	evaluation *controller.EvaluationController
	challenge  *controller.ChallengeController
	metrics    *controller.MetricsController
	media      *controller.MediaController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a freshly reloaded config and notifies subscribers.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		class:      repository.NewClassRepository(db),
		lesson:     repository.NewLessonRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
		response:   repository.NewEvaluationResponseRepository(db),
		challenge:  repository.NewChallengeRepository(db),
		metrics:    repository.NewMetricsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.media = service.NewMediaService(s.storage)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.class = service.NewClassService(repos.class, repos.user)
	s.lesson = service.NewLessonService(repos.lesson, repos.class)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.response, repos.lesson)
	s.challenge = service.NewChallengeService(repos.challenge, repos.class)
	s.metrics = service.NewMetricsService(
		repos.metrics,
		repos.class,
		repos.user,
		repos.evaluation,
		repos.challenge,
		repos.response,
		rdb,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		class:      controller.NewClassController(s.class),
		lesson:     controller.NewLessonController(s.lesson, s.class),
		evaluation: controller.NewEvaluationController(s.evaluation),
		challenge:  controller.NewChallengeController(s.challenge, s.class),
		metrics:    controller.NewMetricsController(s.metrics, s.class),
		media:      controller.NewMediaController(s.media),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(100000, time.Minute))

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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("signclass-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
