package model

// PortfolioItem 作品集条目（落地页画廊）
type PortfolioItem struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
	Material    string `yaml:"material" json:"material"`
	Size        string `yaml:"size" json:"size"`
	Category    string `yaml:"category" json:"category"`
	PrintTime   string `yaml:"print_time,omitempty" json:"print_time,omitempty"`
}
