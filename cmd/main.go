package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"printfolio/internal/config"
	"printfolio/internal/controller"
	"printfolio/internal/repository"
	"printfolio/internal/router"
	"printfolio/internal/service"
	"printfolio/internal/validation"
	"printfolio/pkg/logger"
)

// @title Printfolio Intake API
// @version 1.0
// @description 定制 3D 打印需求接收与作品集接口
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", getEnv("CONFIG_FILE", ""), "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// 3. 初始化依赖
	deps, err := initDependencies(cfg, log)
	if err != nil {
		log.Fatal("初始化依赖失败", zap.Error(err))
	}

	// 4. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, log)

	// 5. 启动服务
	startServer(r, cfg.Server, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Portfolio repository.PortfolioRepository
}

// Services 服务集合
type Services struct {
	Intake    *service.IntakeService
	Portfolio *service.PortfolioService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	// -------- Repo 层 --------
	portfolioRepo, err := repository.NewDefaultPortfolioRepo()
	if err != nil {
		return nil, err
	}
	repos := &Repositories{Portfolio: portfolioRepo}

	// -------- 业务服务 --------
	rules := validation.New(validation.Options{
		EnforceDescriptionMin: cfg.Intake.EnforceDescriptionMin,
		MaxImageBytes:         cfg.Intake.MaxImageBytes,
		AllowedImageTypes:     cfg.Intake.AllowedImageTypes,
	})
	services := &Services{
		Intake:    service.NewIntakeService(rules, service.NewLogRecorder(log), log),
		Portfolio: service.NewPortfolioService(repos.Portfolio),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Intake:    controller.NewIntakeController(services.Intake, log),
		Portfolio: controller.NewPortfolioController(services.Portfolio),
		System:    controller.NewSystemController(),
	}

	return &Dependencies{
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg config.ServerConfig, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr), zap.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	// 优雅关闭，最多等待 ShutdownTimeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务强制关闭", zap.Error(err))
	}

	log.Info("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
