package order

import (
	"course_market/internal/domain/order/handler"
	"course_market/internal/domain/order/repository"
	"course_market/internal/domain/order/service"
	"course_market/internal/domain/order/strategy"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/config"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"
	"course_market/pkg/logger"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 订单由购物车结算产生，优先级排在购物车之后
	return 25
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	oRepo := repository.NewOrderRepository(ctx.DB)
	oService := service.NewOrderService(oRepo)

	// 2. 注册支付策略
	if config.GlobalConfig.Alipay.AppID != "" {
		alipayStrategy, err := strategy.NewAlipayStrategy()
		if err != nil {
			logger.Log.Error("Failed to init Alipay strategy: " + err.Error())
		} else {
			oService.RegisterStrategy("alipay", alipayStrategy)
		}
	}

	if config.GlobalConfig.Wechat.MchID != "" {
		wechatStrategy, err := strategy.NewWechatStrategy()
		if err != nil {
			logger.Log.Error("Failed to init Wechat strategy: " + err.Error())
		} else {
			oService.RegisterStrategy("wechat", wechatStrategy)
		}
	}

	oHandler := handler.NewOrderHandler(oService)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	// 3. 路由注册
	setupRoutes(ctx.Router, oHandler, middleware.AuthMiddleware(uRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler, auth gin.HandlerFunc) {
	// 支付回调无需鉴权，但需验签
	notify := r.Group("/payment/notify")
	{
		notify.POST("/alipay", h.AlipayNotify)
		notify.POST("/wechat", h.WechatNotify)
	}

	taker := r.Group("/api/taker")
	taker.Use(auth)
	{
		taker.GET("/orders", h.ListOrders)
		taker.POST("/orders/pay", h.Pay)
	}
}
