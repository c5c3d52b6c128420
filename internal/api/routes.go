package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/mautops/envgen-gin/docs" // 导入生成的 docs 包
)

// SetupRoutes 配置基础路由和中间件
// 业务路由由调用方在返回的 engine 上继续注册
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Export.MaxFiles > 0 {
		maxImportFiles = cfg.Export.MaxFiles
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(ErrorHandlerMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))

	if cfg.Server.RateLimitRPS > 0 {
		router.Use(RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}

	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}

	// 健康检查
	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	return router
}
