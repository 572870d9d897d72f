package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"printfolio/internal/controller"
	"printfolio/internal/middleware"

	_ "printfolio/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Intake    *controller.IntakeController
	Portfolio *controller.PortfolioController
	System    *controller.SystemController
}

// SetupRouter 创建引擎并注册所有路由
func SetupRouter(ctrls *Controllers, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
		middleware.Metrics(),
	)

	InitRoutes(r, ctrls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctrls *Controllers) {
	// 1. 系统路由
	r.GET("/health", ctrls.System.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 2. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 3. API 路由组
	api := r.Group("/api")
	{
		// POST /api/submit-request
		api.POST("/submit-request", ctrls.Intake.SubmitRequest)

		// portfolio 作品集
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("", ctrls.Portfolio.GetList)
			portfolio.GET("/:id", ctrls.Portfolio.GetDetail)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "接口不存在"})
	})
}
