package service

import (
	"context"

	"printfolio/internal/api/dto"
	"printfolio/internal/model"
	"printfolio/internal/repository"
)

// PortfolioService 作品集服务
type PortfolioService struct {
	repo repository.PortfolioRepository
}

// NewPortfolioService 创建作品集服务
func NewPortfolioService(repo repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// List 作品列表（可按分类过滤）
func (s *PortfolioService) List(ctx context.Context, req dto.ListPortfolioRequest) (*dto.PortfolioListResponse, error) {
	items, err := s.repo.List(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PortfolioListResponse{
		Items:      items,
		Categories: categories,
		Total:      len(items),
	}, nil
}

// Get 作品详情
func (s *PortfolioService) Get(ctx context.Context, id string) (*model.PortfolioItem, error) {
	return s.repo.Get(ctx, id)
}
