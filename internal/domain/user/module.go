package user

import (
	"course_market/internal/domain/user/handler"
	"course_market/internal/domain/user/repository"
	"course_market/internal/domain/user/service"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler, middleware.AuthMiddleware(userRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler, auth gin.HandlerFunc) {
	// 公开路由
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// 当前用户
	r.GET("/api/me", auth, h.Me)

	// 管理员用户管理
	adminGroup := r.Group("/api/admin/users")
	adminGroup.Use(auth, middleware.AdminMiddleware())
	{
		adminGroup.GET("/", h.GetUsers)
		adminGroup.POST("/", h.CreateUser)
		adminGroup.PUT("/:id", h.UpdateRole)
		adminGroup.DELETE("/:id", h.DeleteUser)
	}
}
