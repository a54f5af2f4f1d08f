package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/queue"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/shared/query"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"

	categoryHandler "blog-backend/internal/domains/category/handler"
	categoryModel "blog-backend/internal/domains/category/model"
	categoryRepo "blog-backend/internal/domains/category/repository"
	categoryService "blog-backend/internal/domains/category/service"

	tagHandler "blog-backend/internal/domains/tag/handler"
	tagModel "blog-backend/internal/domains/tag/model"
	tagRepo "blog-backend/internal/domains/tag/repository"
	tagService "blog-backend/internal/domains/tag/service"

	postHandler "blog-backend/internal/domains/post/handler"
	postJob "blog-backend/internal/domains/post/job"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"

	settingHandler "blog-backend/internal/domains/setting/handler"
	settingModel "blog-backend/internal/domains/setting/model"
	settingRepo "blog-backend/internal/domains/setting/repository"
	settingService "blog-backend/internal/domains/setting/service"

	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"

	uploadHandler "blog-backend/internal/domains/upload/handler"
	uploadService "blog-backend/internal/domains/upload/service"

	systemHandler "blog-backend/internal/domains/system/handler"
)

// Container holds the application dependency graph.
// Build order: config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// ========== Infrastructure ==========
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisClient
	Cache      cache.Cache
	Storage    storage.Presigner
	JWTManager *jwt.Manager
	Queue      *queue.Client

	// ========== Repositories ==========
	CategoryRepo categoryRepo.Repository
	TagRepo      tagRepo.Repository
	PostRepo     postRepo.Repository
	SettingRepo  settingRepo.Repository
	UserRepo     userRepo.Repository

	// ========== Services ==========
	CategoryService categoryService.Service
	TagService      tagService.Service
	PostService     postService.Service
	ViewCounter     *postService.ViewCounter
	SettingService  settingService.Service
	UserService     userService.Service
	UploadService   uploadService.Service

	// ========== Handlers ==========
	CategoryHandler    *categoryHandler.CategoryHandler
	TagHandler         *tagHandler.TagHandler
	PostHandler        *postHandler.PostHandler
	SettingHandler     *settingHandler.SettingHandler
	UserHandler        *userHandler.UserHandler
	UploadHandler      *uploadHandler.UploadHandler
	HealthHandler      *systemHandler.HealthHandler
	MaintenanceHandler *systemHandler.MaintenanceHandler

	// ========== Jobs (worker) ==========
	FlushViewsJob      *postJob.FlushViewsHandler
	ReconcileCountsJob *postJob.ReconcileCountsHandler
}

// Options tune what NewContainer connects to.
type Options struct {
	// SkipStorage leaves Storage nil (worker and CLI do not presign uploads).
	SkipStorage bool
	// SkipMigrate does not run goose migrations at startup.
	SkipMigrate bool
}

// NewContainer loads the config and builds everything with default options.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Build(cfg, Options{})
}

// Build wires the dependency graph for cfg.
func Build(cfg *config.Config, opts Options) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("initializing container")

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// ========== Database ==========
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if !opts.SkipMigrate {
		if err := db.Migrate(ctx); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// ========== Cache ==========
	// Redis is not critical: services run uncached and views are written through.
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	// ========== Storage ==========
	if !opts.SkipStorage {
		presigner, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage unavailable, uploads disabled")
		} else {
			c.Storage = presigner
		}
	}

	// ========== Auth + queue ==========
	c.JWTManager, err = jwt.NewManager(cfg.Auth.Secret, cfg.Auth.Salt, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init token manager: %w", err)
	}

	c.Queue = queue.NewClient(RedisConnOpt(cfg.Redis))

	c.initRepositories()
	c.initServices()
	c.initHandlers()
	c.initJobs()

	log.Info().Msg("container initialized")
	return c, nil
}

// RedisConnOpt is the asynq connection for the configured Redis.
func RedisConnOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.SettingRepo = settingRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.SettingService = settingService.NewSettingService(c.SettingRepo, c.Cache, settingModel.Settings{
		SiteTitle:       cfg.Site.Title,
		SiteDescription: cfg.Site.Description,
		SiteURL:         cfg.Site.URL,
		PostsPerPage:    cfg.Site.PostsPerPage,
	})

	c.ViewCounter = postService.NewViewCounter(c.Cache, c.PostRepo)
	c.PostService = postService.NewPostService(
		c.PostRepo,
		c.CategoryRepo,
		c.TagRepo,
		c.SettingService,
		c.Cache,
		c.ViewCounter,
		postService.Config{
			Mode:               query.ParseMode(cfg.Query.Strict),
			PublicDefaultLimit: cfg.Listing.PublicDefaultLimit,
			PublicMaxLimit:     cfg.Listing.PublicMaxLimit,
			AdminDefaultLimit:  cfg.Listing.AdminDefaultLimit,
			AdminMaxLimit:      cfg.Listing.AdminMaxLimit,
		},
	)

	// cached post details embed category and tag summaries
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.PostService)
	c.TagService = tagService.NewTagService(c.TagRepo, c.PostService)

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	if c.Storage != nil {
		c.UploadService = uploadService.NewUploadService(c.Storage, uploadService.Config{
			PublicBaseURL:  cfg.Storage.PublicBaseURL,
			Expiry:         cfg.Storage.PresignExpiry,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		})
	}
}

func (c *Container) initHandlers() {
	mode := query.ParseMode(c.Config.Query.Strict)

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService, categoryModel.DefaultListOptions(mode))
	c.TagHandler = tagHandler.NewTagHandler(c.TagService, tagModel.DefaultListOptions(mode))
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.SettingHandler = settingHandler.NewSettingHandler(c.SettingService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	if c.UploadService != nil {
		c.UploadHandler = uploadHandler.NewUploadHandler(c.UploadService)
	}

	optional := map[string]systemHandler.Pinger{"redis": c.Cache}
	if c.Storage != nil {
		optional["storage"] = c.Storage
	}
	c.HealthHandler = systemHandler.NewHealthHandler(c.Config.App.Version, c.DB, optional)
	c.MaintenanceHandler = systemHandler.NewMaintenanceHandler(c.Queue)
}

func (c *Container) initJobs() {
	c.FlushViewsJob = postJob.NewFlushViewsHandler(c.ViewCounter)
	c.ReconcileCountsJob = postJob.NewReconcileCountsHandler(map[string]postJob.CounterReconciler{
		"tags":       c.TagRepo,
		"categories": c.CategoryRepo,
	})
}

// Cleanup releases connections; safe on a partially built container.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}

	log.Info().Msg("container cleanup completed")
}
