/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/envgen-gin/internal/api"
	"github.com/mautops/envgen-gin/internal/config"
	"github.com/mautops/envgen-gin/internal/container"
	"github.com/mautops/envgen-gin/internal/repository"
	"github.com/mautops/envgen-gin/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Envgen Gin API server.
The server will listen on the configured host and port,
and provide REST API interfaces for .env template management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 按配置初始化日志（级别/格式/输出）
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		api.SetDefaultLogger(logger)

		// 配置热加载: 配置文件变更时调整日志级别,无需重启
		if configPath != "" {
			watcher := config.NewConfigWatcher(cfg, configPath)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				if level, err := logrus.ParseLevel(newCfg.Log.Level); err == nil {
					api.SetLoggerLevel(level)
					logrus.SetLevel(level)
				}
			})
			if err := watcher.Start(); err != nil {
				log.Printf("config watch disabled: %v", err)
			} else {
				defer watcher.Stop()
			}
		}

		// 3. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. 初始化链路追踪（可选）
		if cfg.Tracing.Enabled {
			if err := api.InitTracing(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint); err != nil {
				return fmt.Errorf("failed to initialize tracing: %w", err)
			}
			defer api.ShutdownTracing(context.Background())
		}

		// 5. 初始化服务
		templateSvc := service.NewTemplateService(ctr.DB(), repository.NewTemplateRepository(ctr.DB()))
		clientSvc := service.NewClientService(repository.NewClientRepository(ctr.DB()), repository.NewTemplateRepository(ctr.DB()))
		clientVarSvc := service.NewClientVariableService(ctr.DB())
		envSvc := service.NewEnvService(ctr.DB())

		// 6. 初始化控制器
		templateController := api.NewTemplateController(templateSvc)
		clientController := api.NewClientController(clientSvc)
		clientVarController := api.NewClientVariableController(clientVarSvc)
		envController := api.NewEnvController(envSvc)

		// 7. 设置路由
		router := setupRoutesWithControllers(ctr, templateController, clientController, clientVarController, envController, cfg)

		// 8. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		// 启动服务器（在 goroutine 中）
		go func() {
			log.Printf("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server exited")
		return nil
	},
}

// setupRoutesWithControllers 设置路由并绑定控制器
func setupRoutesWithControllers(
	ctr *container.Container,
	templateController *api.TemplateController,
	clientController *api.ClientController,
	clientVarController *api.ClientVariableController,
	envController *api.EnvController,
	cfg *config.Config,
) *gin.Engine {
	router := api.SetupRoutes(ctr.DB(), cfg)

	// API v1 路由组
	v1 := router.Group("/api/v1")
	{
		// 模板管理路由
		templates := v1.Group("/templates")
		{
			// 批量导入路由（必须在 /:id 之前）
			templates.POST("/analyze-import", templateController.AnalyzeImport)
			templates.POST("/confirm-import", templateController.ConfirmImport)

			// 基础路由
			templates.POST("", templateController.Create)
			templates.GET("", templateController.List)
			templates.GET("/:id", templateController.Get)
			templates.PUT("/:id", templateController.Update)
			templates.DELETE("/:id", templateController.Delete)

			// ZIP 导出路由（必须在 /:id 之后,Gin 会优先匹配更长的路径）
			templates.GET("/:id/export", envController.ExportZip)
		}

		// 客户端管理路由
		clients := v1.Group("/clients")
		{
			clients.GET("", clientController.List)
			clients.POST("", clientController.Create)
			clients.PUT("/:id", clientController.Update)
			clients.DELETE("/:id", clientController.Delete)

			// 客户端变量路由
			clients.GET("/:id/variables", clientVarController.List)
			clients.PUT("/:id/variables", clientVarController.Upsert)
			clients.DELETE("/:id/variables/:variableId", clientVarController.Delete)
		}

		// .env 生成路由
		env := v1.Group("/env")
		{
			env.POST("/generate", envController.Generate)
		}
	}

	// 自定义 NoRoute 处理器,返回 JSON 格式的 404
	// 必须在所有业务路由注册之后设置,确保未匹配的路由返回 JSON 而不是 HTML
	router.NoRoute(func(c *gin.Context) {
		api.Error(c, http.StatusNotFound, "route not found", "the requested route does not exist")
	})

	return router
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}

// LoadConfig 加载配置
func LoadConfig(configPath string) (*config.Config, error) {
	return config.Load(configPath)
}
