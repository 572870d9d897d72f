package dto

import "printfolio/internal/model"

// ListPortfolioRequest 作品列表请求
type ListPortfolioRequest struct {
	Category string `form:"category"`
}

// PortfolioListResponse 作品列表响应
type PortfolioListResponse struct {
	Items      []model.PortfolioItem `json:"items"`
	Categories []string              `json:"categories"`
	Total      int                   `json:"total"`
}

// Response 通用响应信封
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
