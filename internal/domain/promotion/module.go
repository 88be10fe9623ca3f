package promotion

import (
	"course_market/internal/domain/promotion/handler"
	"course_market/internal/domain/promotion/repository"
	"course_market/internal/domain/promotion/service"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PromotionModule 促销模块
type PromotionModule struct{}

func init() {
	registry.Register(&PromotionModule{})
}

func (m *PromotionModule) Name() string {
	return "promotion"
}

func (m *PromotionModule) Priority() int {
	return 10
}

func (m *PromotionModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入，Redis 可用时套上快照缓存
	pRepo := repository.NewPromotionRepository(ctx.DB)
	pService := service.NewPromotionService(pRepo)
	if ctx.Redis != nil {
		pService = service.NewCachedPromotionService(pService, ctx.Redis)
	}
	pHandler := handler.NewPromotionHandler(pService)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	// 2. 路由注册
	setupRoutes(ctx.Router, pHandler, middleware.AuthMiddleware(uRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PromotionHandler, auth gin.HandlerFunc) {
	admin := r.Group("/api/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.POST("/offers", h.CreateOffer)
		admin.GET("/offers", h.ListOffers)
		admin.PUT("/offers/:id", h.UpdateOffer)
		admin.DELETE("/offers/:id", h.DeleteOffer)

		admin.POST("/flash-sales", h.CreateFlashSale)
		admin.GET("/flash-sales", h.ListFlashSales)

		admin.POST("/user-based-offers", h.CreateTargetedOffer)
		admin.GET("/user-based-offers", h.ListTargetedOffers)

		admin.POST("/coupons", h.CreateCoupon)
		admin.GET("/coupons", h.ListCoupons)
		admin.DELETE("/coupons/:id", h.DeleteCoupon)
	}
}
