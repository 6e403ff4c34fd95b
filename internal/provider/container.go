package provider

import (
	"time"

	"github.com/halotrubus/internal/authz"
	"github.com/halotrubus/internal/cache"
	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/queue"
	"github.com/halotrubus/internal/repository"
	"github.com/halotrubus/internal/service"
	"github.com/halotrubus/internal/session"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo   repository.ProductRepository
	ExpertRepo    repository.ExpertRepository
	ArticleRepo   repository.ArticleRepository
	CategoryRepo  repository.CategoryRepository
	GateAuditRepo repository.GateAuditLogRepository

	// Services
	AuthzService        *authz.Service
	GateAuditService    *service.GateAuditService
	CatalogService      *service.CatalogService
	SessionTokenService *service.SessionTokenService
	SessionService      *service.SessionService
	EventDispatcher     *service.EventDispatcher
	Pricing             session.PricingPolicy
}

// NewContainer 初始化容器，数据库需已通过 models.InitDB 打开
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化 Services
	if err := c.initServices(models.DB); err != nil {
		logger.Errorw("provider_init_services_failed", "error", err)
		panic(err)
	}

	return c
}

// NewContainerWithDB 使用指定数据库构建容器，不初始化 redis 与队列
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	c := &Container{Config: cfg}
	c.initRepositories(db)
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.ExpertRepo = repository.NewExpertRepository(db)
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.GateAuditRepo = repository.NewGateAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	pricing, err := session.PricingForTier(c.Config.Booking.PricingTier)
	if err != nil {
		return err
	}
	c.Pricing = pricing

	c.CatalogService = service.NewCatalogService(
		c.ProductRepo,
		c.ExpertRepo,
		c.ArticleRepo,
		c.CategoryRepo,
		time.Duration(c.Config.Catalog.CacheTTLSeconds)*time.Second,
	)
	c.SessionTokenService = service.NewSessionTokenService(c.Config.Session.TokenSecret, c.Config.Session.TokenExpireHours)

	var sinks []session.EventSink
	if c.QueueClient != nil {
		sinks = append(sinks, c.QueueClient)
	}
	c.EventDispatcher = service.NewEventDispatcher(sinks...)

	c.GateAuditService = service.NewGateAuditService(c.GateAuditRepo)

	c.SessionService, err = service.NewSessionService(
		c.Config,
		c.CatalogService,
		c.SessionTokenService,
		c.AuthzService,
		c.EventDispatcher,
	)
	if err != nil {
		return err
	}
	c.SessionService.UseGateAudit(c.GateAuditService)
	return nil
}
