package cart

import (
	"course_market/internal/domain/cart/handler"
	"course_market/internal/domain/cart/repository"
	"course_market/internal/domain/cart/service"
	courseRepo "course_market/internal/domain/course/repository"
	"course_market/internal/domain/pricing"
	promoRepo "course_market/internal/domain/promotion/repository"
	promoService "course_market/internal/domain/promotion/service"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/lock"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CartModule 购物车模块
type CartModule struct{}

func init() {
	registry.Register(&CartModule{})
}

func (m *CartModule) Name() string {
	return "cart"
}

func (m *CartModule) Priority() int {
	return 20
}

func (m *CartModule) Init(ctx *registry.ModuleContext) error {
	// 1. 促销查询走快照缓存，定价与购物车共用一套
	pService := promoService.NewPromotionService(promoRepo.NewPromotionRepository(ctx.DB))
	if ctx.Redis != nil {
		pService = promoService.NewCachedPromotionService(pService, ctx.Redis)
	}

	resolver := pricing.NewResolver(pService)

	// 2. 依赖注入
	cRepo := repository.NewCartRepository(ctx.DB)
	cService := service.NewCartService(
		cRepo,
		courseRepo.NewCourseRepository(ctx.DB),
		resolver,
		pService,
		lock.NewRedisLock(ctx.Redis),
	)
	cHandler := handler.NewCartHandler(cService)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	// 3. 路由注册
	setupRoutes(ctx.Router, cHandler, middleware.AuthMiddleware(uRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CartHandler, auth gin.HandlerFunc) {
	taker := r.Group("/api/taker")
	taker.Use(auth)
	{
		taker.GET("/cart", h.GetCart)
		taker.POST("/cart/items", h.AddItem)
		taker.DELETE("/cart/items/:courseId", h.RemoveItem)
		taker.POST("/cart/coupon", h.ApplyCoupon)
		taker.POST("/checkout", h.Checkout)
	}
}
