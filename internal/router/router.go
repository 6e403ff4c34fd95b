package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halotrubus/internal/authz"
	"github.com/halotrubus/internal/cache"
	"github.com/halotrubus/internal/config"
	publichandlers "github.com/halotrubus/internal/http/handlers/public"
	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/provider"

	"github.com/gin-gonic/gin"
)

const sessionRoutePrefix = "/api/v1/session"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ht"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Name:          "login",
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	sessionRule := RateLimitRule{
		Name:          "session_create",
		Prefix:        fmt.Sprintf("%s:rate:session", redisPrefix),
		WindowSeconds: cfg.Security.SessionRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SessionRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/home", publicHandler.GetHomeFeed)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/experts", publicHandler.ListExperts)
			public.GET("/experts/:id", publicHandler.GetExpert)
			public.GET("/articles", publicHandler.ListArticles)
			public.GET("/articles/overview", publicHandler.GetArticleOverview)
			public.GET("/articles/:id", publicHandler.GetArticle)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/booking/options", publicHandler.GetBookingOptions)
			public.GET("/gate-policies", publicHandler.ListGatePolicies)
			public.GET("/routes", func(ctx *gin.Context) {
				response.Success(ctx, buildSessionRouteCatalog(r))
			})
		}

		apiV1.POST("/sessions", RateLimitMiddleware(redisClient, sessionRule, KeyByIP), publicHandler.CreateSession)

		// 会话接口（需会话令牌）
		sess := apiV1.Group("/session")
		sess.Use(SessionAuthMiddleware(c.SessionService))
		{
			sess.GET("", publicHandler.GetSession)
			sess.DELETE("", publicHandler.CloseSession)
			sess.GET("/history", publicHandler.GetHistory)
			sess.GET("/gate-audit", publicHandler.ListGateAudit)

			sess.POST("/navigation/tab", publicHandler.SwitchTab)
			sess.POST("/navigation/view-all", publicHandler.ViewAll)
			sess.POST("/navigation/category", publicHandler.ClickCategory)
			sess.POST("/navigation/shop-category", publicHandler.SetShopCategory)
			sess.POST("/navigation/search", publicHandler.SetSearchQuery)
			sess.POST("/navigation/search-click", publicHandler.SearchClick)

			sess.POST("/overlay", publicHandler.OpenOverlay)
			sess.POST("/overlay/close", publicHandler.CloseOverlay)

			sess.POST("/cart/items", publicHandler.AddCartItem)
			sess.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			sess.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			sess.POST("/cart/checkout", publicHandler.Checkout)

			sess.POST("/booking/kind", publicHandler.SelectBookingKind)
			sess.POST("/booking/advance", publicHandler.AdvanceBooking)
			sess.POST("/booking/back", publicHandler.BackBooking)
			sess.POST("/booking/date", publicHandler.SelectBookingDate)
			sess.POST("/booking/time", publicHandler.SelectBookingTime)
			sess.POST("/booking/submit", publicHandler.SubmitBooking)
			sess.POST("/booking/direct", publicHandler.DirectBooking)

			sess.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			sess.POST("/auth/register", publicHandler.Register)
			sess.POST("/auth/forgot-password", publicHandler.ForgotPassword)
			sess.POST("/auth/logout", publicHandler.Logout)
			sess.PUT("/profile/role", publicHandler.SetRole)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type sessionRouteCatalogItem struct {
	Module string `json:"module"`
	Method string `json:"method"`
	Object string `json:"object"`
	Route  string `json:"route"`
}

func buildSessionRouteCatalog(engine *gin.Engine) []sessionRouteCatalogItem {
	if engine == nil {
		return []sessionRouteCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]sessionRouteCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if item.Path != sessionRoutePrefix && !strings.HasPrefix(item.Path, sessionRoutePrefix+"/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		route := method + ":" + object
		if _, exists := seen[route]; exists {
			continue
		}
		seen[route] = struct{}{}
		items = append(items, sessionRouteCatalogItem{
			Module: deriveSessionRouteModule(object),
			Method: method,
			Object: object,
			Route:  route,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveSessionRouteModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), sessionRoutePrefix)
	normalized = strings.TrimPrefix(normalized, "/")
	if normalized == "" {
		return "session"
	}
	segments := strings.Split(normalized, "/")
	return segments[0]
}
