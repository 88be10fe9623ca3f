package course

import (
	"course_market/internal/domain/course/handler"
	"course_market/internal/domain/course/repository"
	"course_market/internal/domain/course/service"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CourseModule 课程模块
type CourseModule struct{}

func init() {
	registry.Register(&CourseModule{})
}

func (m *CourseModule) Name() string {
	return "course"
}

func (m *CourseModule) Priority() int {
	return 5
}

func (m *CourseModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	cRepo := repository.NewCourseRepository(ctx.DB)
	cService := service.NewCourseService(cRepo)
	cHandler := handler.NewCourseHandler(cService)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	// 2. 路由注册
	setupRoutes(ctx.Router, cHandler, middleware.AuthMiddleware(uRepo))

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CourseHandler, auth gin.HandlerFunc) {
	// 创作者课程管理
	creator := r.Group("/api/creator")
	creator.Use(auth, middleware.CreatorMiddleware())
	{
		creator.POST("/courses", h.CreateCourse)
		creator.GET("/courses", h.ListOwnCourses)
		creator.PUT("/courses/:id", h.UpdateCourse)
		creator.DELETE("/courses/:id", h.DeleteCourse)
		creator.POST("/courses/:id/content", h.AddContent)
		creator.DELETE("/courses/:id/content/:contentId", h.RemoveContent)
		creator.POST("/upload", h.UploadAsset)
		creator.GET("/courses/:id/ratings", h.GetRatings)
	}

	// 学员课程浏览
	taker := r.Group("/api/taker")
	taker.Use(auth)
	{
		taker.GET("/courses", h.SearchCourses)
		taker.GET("/courses/:id", h.GetCourse)
		taker.POST("/courses/:id/ratings", h.RateCourse)
	}
}
