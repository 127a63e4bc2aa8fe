package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/config"
	infraCache "inkwell-backend/internal/infrastructure/cache"
	"inkwell-backend/internal/infrastructure/database"
	"inkwell-backend/internal/infrastructure/email"
	"inkwell-backend/internal/infrastructure/storage"
	"inkwell-backend/pkg/cache"
	"inkwell-backend/pkg/jwt"
	"inkwell-backend/pkg/logger"

	newsletterService "inkwell-backend/internal/domains/newsletter/service"
	postHandler "inkwell-backend/internal/domains/post/handler"
	postRepo "inkwell-backend/internal/domains/post/repository"
	postService "inkwell-backend/internal/domains/post/service"
	statsHandler "inkwell-backend/internal/domains/stats/handler"
	statsRepo "inkwell-backend/internal/domains/stats/repository"
	statsService "inkwell-backend/internal/domains/stats/service"
	subscriberHandler "inkwell-backend/internal/domains/subscriber/handler"
	subscriberRepo "inkwell-backend/internal/domains/subscriber/repository"
	subscriberService "inkwell-backend/internal/domains/subscriber/service"
	tenantHandler "inkwell-backend/internal/domains/tenant/handler"
	tenantRepo "inkwell-backend/internal/domains/tenant/repository"
	tenantService "inkwell-backend/internal/domains/tenant/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is
// a singleton; build order is config, infrastructure, repositories,
// services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Storage     *storage.MinIOStorage
	EmailSender email.Sender

	// Repositories
	TenantRepo     tenantRepo.TenantRepository
	PostRepo       postRepo.PostRepository
	StatsRepo      statsRepo.StatsRepository
	SubscriberRepo subscriberRepo.SubscriberRepository

	// Services
	TenantService     tenantService.ServiceInterface
	Resolver          tenantService.ResolverInterface
	PostService       postService.ServiceInterface
	StatsService      statsService.ServiceInterface
	SubscriberService subscriberService.ServiceInterface
	BroadcastService  newsletterService.ServiceInterface

	// Handlers
	TenantHandler     *tenantHandler.TenantHandler
	PostHandler       *postHandler.PostHandler
	StatsHandler      *statsHandler.StatsHandler
	SubscriberHandler *subscriberHandler.SubscriberHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the whole dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	logger.Info("config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	// Step 2: Connect to PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Step 3: Connect to Redis
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Step 4: Task queue client
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Step 5: Object storage and email transport
	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.EmailSender = email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Step 6: Repositories
	c.TenantRepo = tenantRepo.NewPostgresRepository(db.Pool)
	c.PostRepo = postRepo.NewPostgresRepository(db.Pool)
	c.StatsRepo = statsRepo.NewPostgresRepository(db.Pool)
	c.SubscriberRepo = subscriberRepo.NewPostgresRepository(db.Pool)

	// Step 7: Services
	verifier := tenantService.NewHTTPDomainVerifier(cfg.Domains)
	c.TenantService = tenantService.NewTenantService(c.TenantRepo, verifier)
	c.Resolver = tenantService.NewResolver(c.TenantRepo, c.Cache, cfg.Platform.ApexDomain)
	c.PostService = postService.NewPostService(c.PostRepo, c.TenantService, c.AsynqClient, c.Storage)
	c.StatsService = statsService.NewStatsService(c.StatsRepo, c.TenantService)
	c.SubscriberService = subscriberService.NewSubscriberService(c.SubscriberRepo)

	renderer := newsletterService.NewRenderer(cfg.Platform.BaseScheme, cfg.Platform.ApexDomain)
	c.BroadcastService = newsletterService.NewBroadcastService(
		c.PostRepo,
		c.TenantRepo,
		c.SubscriberRepo,
		c.EmailSender,
		renderer,
		cfg.Newsletter.MaxRecipients,
		time.Duration(cfg.Newsletter.SendTimeoutSec)*time.Second,
	)

	// Step 8: Handlers
	c.TenantHandler = tenantHandler.NewTenantHandler(c.TenantService, c.Resolver)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.StatsHandler = statsHandler.NewStatsHandler(c.StatsService)
	c.SubscriberHandler = subscriberHandler.NewSubscriberHandler(c.SubscriberService, c.TenantService)

	logger.Info("container initialized", map[string]interface{}{})
	return c, nil
}

// Cleanup releases external connections in reverse build order
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
