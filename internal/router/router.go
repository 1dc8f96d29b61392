package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/cache"
	"github.com/littlelemon-api/internal/config"
	apihandlers "github.com/littlelemon-api/internal/http/handlers/api"
	"github.com/littlelemon-api/internal/logger"
	"github.com/littlelemon-api/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ll"
	}
	redisClient := cache.Client()
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many registration attempts",
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 匿名接口
		apiV1.POST("/users", RateLimitMiddleware(redisClient, registerRule, KeyByIP), handler.Register)
		apiV1.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), handler.Login)

		// 公开目录读取
		apiV1.GET("/categories", handler.ListCategories)
		apiV1.GET("/menu-items", handler.ListMenuItems)
		apiV1.GET("/menu-items/:id", handler.GetMenuItem)

		// 需鉴权的接口：JWT 解析 + 角色路由鉴权
		authorized := apiV1.Group("")
		authorized.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AuthzMiddleware(c.AuthzService))
		{
			authorized.GET("/users/me", handler.Me)

			// 目录管理（经理）
			authorized.POST("/categories", handler.CreateCategory)
			authorized.POST("/menu-items", handler.CreateMenuItem)
			authorized.PUT("/menu-items/:id", handler.UpdateMenuItem)
			authorized.PATCH("/menu-items/:id", handler.PatchMenuItem)
			authorized.DELETE("/menu-items/:id", handler.DeleteMenuItem)

			// 购物车
			authorized.GET("/cart/menu-items", handler.GetCart)
			authorized.POST("/cart/menu-items", handler.AddCartItem)
			authorized.PUT("/cart/menu-items/:id", handler.UpdateCartItem)
			authorized.DELETE("/cart/menu-items", handler.ClearCart)

			// 订单
			authorized.GET("/orders", handler.ListOrders)
			authorized.POST("/orders", handler.PlaceOrder)
			authorized.GET("/orders/:id", handler.GetOrderItems)
			authorized.PUT("/orders/:id", handler.ReplaceOrder)
			authorized.PATCH("/orders/:id", handler.PatchOrder)
			authorized.DELETE("/orders/:id", handler.DeleteOrder)

			// 员工分组管理（经理）
			authorized.GET("/groups/:group/users", handler.ListGroupMembers)
			authorized.POST("/groups/:group/users", handler.AddGroupMember)
			authorized.DELETE("/groups/:group/users/:id", handler.RemoveGroupMember)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
