package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "course_market/docs"
	_ "course_market/internal/domain/cart"
	_ "course_market/internal/domain/course"
	_ "course_market/internal/domain/message"
	_ "course_market/internal/domain/order"
	_ "course_market/internal/domain/promotion"
	_ "course_market/internal/domain/report"
	_ "course_market/internal/domain/user"

	"course_market/internal/pkg/config"
	"course_market/internal/pkg/middleware"
	"course_market/internal/pkg/push"
	"course_market/internal/pkg/registry"
	"course_market/internal/pkg/uploader"
	"course_market/pkg/database"
	"course_market/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Course Market API
// @version 1.0
// @description 在线课程市场后端：课程、促销、购物车与结算
// @BasePath /api
func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()
	sqlxDB := database.InitSQLX()

	// OSS 与推送属于可选依赖，配置缺失时降级为不可用
	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("Uploader disabled", zap.Error(err))
	}
	if err := push.InitPushService(); err != nil {
		logger.Log.Warn("Push service disabled", zap.Error(err))
	}

	// 3. HTTP 引擎与全局中间件
	if !config.GlobalConfig.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// 4. 运维路由
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 5. 业务模块
	if err := registry.InitModules(&registry.ModuleContext{
		DB:     db,
		SQLX:   sqlxDB,
		Redis:  rdb,
		Router: r,
	}); err != nil {
		logger.Log.Fatal("Failed to init modules", zap.Error(err))
	}

	// 6. 启动与优雅退出
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", config.GlobalConfig.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Forced shutdown", zap.Error(err))
	}
}
