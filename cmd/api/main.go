package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/analytics"
	httptransport "github.com/devfolio/portfolio-api/internal/api/http"
	"github.com/devfolio/portfolio-api/internal/api/http/handlers"
	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/config"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/inference"
	"github.com/devfolio/portfolio-api/internal/observability"
	"github.com/devfolio/portfolio-api/internal/persistence"
	"github.com/devfolio/portfolio-api/internal/repository"
	"github.com/devfolio/portfolio-api/internal/resume"
	"github.com/devfolio/portfolio-api/internal/service"
	"github.com/devfolio/portfolio-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo    repository.UserRepository
		productRepo repository.ProductRepository
		cartRepo    repository.CartRepository
		contactRepo repository.ContactRepository
	)
	if pg.Enabled() {
		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		productRepo = repository.NewProductRepository(pool)
		cartRepo = repository.NewCartRepository(pool)
		contactRepo = repository.NewContactRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		productRepo = repository.NewMemoryProductRepository(repository.DemoCatalog())
		cartRepo = repository.NewMemoryCartRepository(productRepo)
		contactRepo = repository.NewMemoryContactRepository()
	}
	taskRepo := repository.NewMemoryTaskRepository()

	var (
		revocations    repository.RevocationStore
		embeddingCache repository.EmbeddingCache
	)
	if redis.Available {
		revocations = repository.NewRedisRevocationStore(redis.Client)
		embeddingCache = repository.NewRedisEmbeddingCache(redis.Client)
	} else {
		revocations = repository.NewMemoryRevocationStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(logger, cfg.Notification)
	notificationWorker := worker.StartNotificationWorker(ctx, dispatcher, notifications, notifications.EventTypes(), logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	sessions := auth.NewSessionMiddleware(tokens, revocations, cfg.Auth.CookieName, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:        userRepo,
		RevocationStore: revocations,
		Tokens:          tokens,
		Dispatcher:      dispatcher,
		BcryptCost:      cfg.Auth.BcryptCost,
	}, logger)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, dispatcher, logger)
	contactService := service.NewContactService(contactRepo, dispatcher, logger)
	taskService := service.NewTaskService(taskRepo, dispatcher, logger)

	inferenceClient := inference.NewClient(cfg.Inference, nil)
	var (
		embedder inference.Embedder
		models   resume.Models
	)
	if inferenceClient.Enabled() {
		embedder = inference.NewCachedEmbedder(inferenceClient, embeddingCache, inferenceClient.EmbeddingModel(), cfg.Inference.CacheTTL(), logger)
		models = inferenceClient
	} else {
		logger.Warn("HUGGINGFACE_API_KEY not provided; recommendations fall back to newest products and resume analysis uses sample data")
	}
	recommendationService := service.NewRecommendationService(productRepo, embedder, logger)

	seed := uint64(time.Now().UnixNano())
	generator := analytics.NewGenerator(rand.NewPCG(seed, seed>>1), time.Now)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: 6 << 20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
		handlers.DependencyCheck{Name: "postgres", Required: pg.Enabled(), Ping: pg.Ping},
		handlers.DependencyCheck{Name: "redis", Required: false, Ping: redis.Ping},
	)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: healthHandler,
		Auth: handlers.NewAuthHandler(authService, handlers.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			TTL:    cfg.Auth.TokenTTL(),
		}),
		Products:        handlers.NewProductsHandler(productService),
		Cart:            handlers.NewCartHandler(cartService),
		Recommendations: handlers.NewRecommendationsHandler(recommendationService),
		Resume:          handlers.NewResumeHandler(resume.NewAnalyzer(models)),
		Analytics:       handlers.NewAnalyticsHandler(generator),
		Contact:         handlers.NewContactHandler(contactService),
		CppTools:        handlers.NewCppToolsHandler(),
		Tasks:           handlers.NewTasksHandler(taskService),
		Admin:           handlers.NewAdminHandler(contactService, metrics),
		Sessions:        sessions,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	notificationWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
