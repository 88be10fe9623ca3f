package report

import (
	"course_market/internal/domain/report/handler"
	"course_market/internal/domain/report/repository"
	userRepo "course_market/internal/domain/user/repository"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ReportModule 报表模块
type ReportModule struct{}

func init() {
	registry.Register(&ReportModule{})
}

func (m *ReportModule) Name() string {
	return "report"
}

func (m *ReportModule) Priority() int {
	return 40
}

func (m *ReportModule) Init(ctx *registry.ModuleContext) error {
	// 报表依赖独立的 sqlx 连接，未配置时跳过该模块
	if ctx.SQLX == nil {
		return nil
	}

	rRepo := repository.NewReportRepository(ctx.SQLX)
	rHandler := handler.NewReportHandler(rRepo)

	uRepo := userRepo.NewUserRepository(ctx.DB)

	setupRoutes(ctx.Router, rHandler, middleware.AuthMiddleware(uRepo))
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ReportHandler, auth gin.HandlerFunc) {
	admin := r.Group("/api/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/reports/sales", h.SalesReport)
	}
}
