package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"printfolio/internal/api/dto"
	"printfolio/internal/repository"
	"printfolio/internal/service"
)

// PortfolioController 作品集控制器
type PortfolioController struct {
	portfolioService *service.PortfolioService
}

func NewPortfolioController(portfolioService *service.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService}
}

// GetList 作品列表
// @Summary 获取作品集列表
// @Tags Portfolio
// @Produce json
// @Param category query string false "分类"
// @Success 200 {object} dto.PortfolioListResponse
// @Router /api/portfolio [get]
func (ctrl *PortfolioController) GetList(c *gin.Context) {
	var req dto.ListPortfolioRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Response{Code: 400, Message: "参数错误: " + err.Error()})
		return
	}

	result, err := ctrl.portfolioService.List(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Response{Code: 500, Message: "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.Response{Code: 0, Message: "success", Data: result})
}

// GetDetail 作品详情
// @Summary 获取作品详情
// @Tags Portfolio
// @Produce json
// @Param id path string true "作品ID"
// @Success 200 {object} model.PortfolioItem
// @Failure 404 {object} dto.Response
// @Router /api/portfolio/{id} [get]
func (ctrl *PortfolioController) GetDetail(c *gin.Context) {
	item, err := ctrl.portfolioService.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrPortfolioItemNotFound) {
		c.JSON(http.StatusNotFound, dto.Response{Code: 404, Message: "作品不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Response{Code: 500, Message: "查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.Response{Code: 0, Message: "success", Data: item})
}
