package provider

import (
	"github.com/littlelemon-api/internal/authz"
	"github.com/littlelemon-api/internal/cache"
	"github.com/littlelemon-api/internal/config"
	"github.com/littlelemon-api/internal/logger"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/queue"
	"github.com/littlelemon-api/internal/repository"
	"github.com/littlelemon-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	GroupRepo    repository.GroupRepository
	CategoryRepo repository.CategoryRepository
	MenuItemRepo repository.MenuItemRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	CategoryService *service.CategoryService
	MenuItemService *service.MenuItemService
	CartService     *service.CartService
	OrderService    *service.OrderService
	StaffService    *service.StaffService
}

// NewContainer 初始化容器
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
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.GroupRepo = repository.NewGroupRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.MenuItemService = service.NewMenuItemService(c.MenuItemRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuItemRepo)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.CartRepo, c.GroupRepo, c.QueueClient)
	c.StaffService = service.NewStaffService(c.GroupRepo, c.UserRepo)
}
