package repository

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
	"printfolio/internal/model"
)

//go:embed data/portfolio.yaml
var defaultPortfolio []byte

// ErrPortfolioItemNotFound 作品不存在
var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

// PortfolioRepository 作品集仓库（只读）
type PortfolioRepository interface {
	List(ctx context.Context, category string) ([]model.PortfolioItem, error)
	Get(ctx context.Context, id string) (*model.PortfolioItem, error)
	Categories(ctx context.Context) ([]string, error)
}

// portfolioFile YAML 文件结构
type portfolioFile struct {
	Items []model.PortfolioItem `yaml:"items"`
}

// YAMLPortfolioRepo 基于 YAML 的作品集仓库
// 数据在构造时一次性加载，之后只读，可并发访问
type YAMLPortfolioRepo struct {
	items []model.PortfolioItem
	index map[string]int
}

// NewDefaultPortfolioRepo 使用内嵌作品集
func NewDefaultPortfolioRepo() (*YAMLPortfolioRepo, error) {
	return NewYAMLPortfolioRepo(bytes.NewReader(defaultPortfolio))
}

// NewYAMLPortfolioRepo 从 YAML 读取作品集
func NewYAMLPortfolioRepo(r io.Reader) (*YAMLPortfolioRepo, error) {
	var file portfolioFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("解析作品集失败: %w", err)
	}

	repo := &YAMLPortfolioRepo{
		items: file.Items,
		index: make(map[string]int, len(file.Items)),
	}
	for i, item := range file.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("第 %d 个作品缺少 id", i+1)
		}
		if _, dup := repo.index[item.ID]; dup {
			return nil, fmt.Errorf("作品 id 重复: %s", item.ID)
		}
		repo.index[item.ID] = i
	}
	return repo, nil
}

// List 列出作品，category 为空时返回全部（大小写不敏感）
func (r *YAMLPortfolioRepo) List(_ context.Context, category string) ([]model.PortfolioItem, error) {
	out := make([]model.PortfolioItem, 0, len(r.items))
	for _, item := range r.items {
		if category == "" || strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Get 按 ID 获取作品
func (r *YAMLPortfolioRepo) Get(_ context.Context, id string) (*model.PortfolioItem, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ErrPortfolioItemNotFound
	}
	item := r.items[i]
	return &item, nil
}

// Categories 分类列表，按首次出现顺序去重
func (r *YAMLPortfolioRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range r.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out, nil
}
