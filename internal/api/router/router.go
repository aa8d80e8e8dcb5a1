package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/petmall-backend/config"
	_ "github.com/d60-Lab/petmall-backend/docs"
	"github.com/d60-Lab/petmall-backend/internal/api/handler"
	"github.com/d60-Lab/petmall-backend/internal/api/middleware"
	"github.com/d60-Lab/petmall-backend/internal/service"
)

// New 组装路由
// /api/merchant 前缀为受保护命名空间，鉴权在路由组上完成，
// 其余路径不经过鉴权门（公开商城接口）
func New(cfg *config.Config, h *handler.Handler, users service.UserService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.AccessLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware("petmall-backend"))
	}

	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 上传文件静态服务
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(50, 100))

	// 公开接口
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", h.Me)
	api.POST("/upload", h.Upload)

	api.GET("/pet/list", h.ListPets)
	api.GET("/pet/detail/:id", h.GetPet)
	api.GET("/product/list", h.ListProducts)
	api.GET("/product/detail/:id", h.GetProduct)
	api.GET("/service/list", h.ListServices)
	api.GET("/service/detail/:id", h.GetService)
	api.GET("/merchant-info/list", h.ListMerchants)
	api.GET("/merchant-info/detail/:id", h.GetMerchant)

	// 用户侧订单接口，身份取自微信身份头或显式参数
	api.POST("/order/create", h.CreateOrder)
	api.GET("/order/detail/:id", h.GetOrderDetail)
	api.GET("/order/user/list", h.ListUserOrders)

	// 受保护命名空间：商家/管理端
	merchant := api.Group("/merchant")
	merchant.Use(middleware.RequireMerchant(users, cfg.Auth.AllowDebugHeader))
	{
		merchant.GET("/order/list", h.ListMerchantOrders)
		merchant.POST("/order/status", h.UpdateOrderStatus)
		merchant.POST("/order/tracking", h.UpdateTracking)
		merchant.DELETE("/order/:id", h.DeleteOrder)

		merchant.POST("/pet", h.SavePet)
		merchant.DELETE("/pet/:id", h.DeletePet)
		merchant.POST("/product", h.SaveProduct)
		merchant.DELETE("/product/:id", h.DeleteProduct)
		merchant.POST("/service", h.SaveService)
		merchant.DELETE("/service/:id", h.DeleteService)
		merchant.POST("/profile", h.SaveMerchant)

		admin := merchant.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.POST("/user/role", h.UpdateUserRole)
	}

	return r
}
