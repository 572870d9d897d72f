package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"printfolio/internal/api/dto"
)

// SystemController 系统接口
type SystemController struct{}

func NewSystemController() *SystemController {
	return &SystemController{}
}

// Health 存活检查
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.Response
// @Router /health [get]
func (ctrl *SystemController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Response{Code: 0, Message: "ok"})
}
