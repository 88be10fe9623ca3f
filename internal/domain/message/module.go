package message

import (
	courseRepo "course_market/internal/domain/course/repository"
	"course_market/internal/domain/message/handler"
	"course_market/internal/domain/message/repository"
	"course_market/internal/domain/message/service"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"
	"course_market/internal/pkg/worker"

	"github.com/gin-gonic/gin"
)

// MessageModule 站内信模块
type MessageModule struct{}

func init() {
	registry.Register(&MessageModule{})
}

func (m *MessageModule) Name() string {
	return "message"
}

func (m *MessageModule) Priority() int {
	return 30
}

func (m *MessageModule) Init(ctx *registry.ModuleContext) error {
	// 1. 推送走异步工作池，队列打满时丢弃并记录
	pool := worker.NewWorkerPool(service.NewPushProcessor(), 4, 256)
	pool.Start()

	// 2. 依赖注入
	mRepo := repository.NewMessageRepository(ctx.DB)
	mService := service.NewMessageService(mRepo, courseRepo.NewCourseRepository(ctx.DB), pool)
	mHandler := handler.NewMessageHandler(mService)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	// 3. 路由注册
	setupRoutes(ctx.Router, mHandler, middleware.AuthMiddleware(uRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.MessageHandler, auth gin.HandlerFunc) {
	taker := r.Group("/api/taker")
	taker.Use(auth)
	{
		taker.POST("/courses/:id/contact", h.ContactInstructor)
	}

	creator := r.Group("/api/creator")
	creator.Use(auth, middleware.CreatorMiddleware())
	{
		creator.GET("/messages", h.GetInbox)
	}
}
