package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 全局配置
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Intake   IntakeConfig
	PrintReq ClientConfig
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string
	Mode            string // debug | release | test
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string
}

// IntakeConfig 定制打印需求接收配置
type IntakeConfig struct {
	MaxImageBytes         int64    // 参考图片上限
	AllowedImageTypes     []string // 允许的 MIME 类型
	EnforceDescriptionMin bool     // 服务端是否同样校验描述最小长度
}

// ClientConfig printreq 客户端配置
type ClientConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// ==================== 默认值 ====================

const (
	DefaultPort          = "8080"
	DefaultMaxImageBytes = 10 << 20
	DefaultEndpoint      = "http://localhost:8080"
)

// DefaultAllowedImageTypes 参考图片白名单（JPG / PNG / GIF）
var DefaultAllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("intake.max_image_bytes", DefaultMaxImageBytes)
	v.SetDefault("intake.allowed_image_types", DefaultAllowedImageTypes)
	v.SetDefault("intake.enforce_description_min", false)

	v.SetDefault("printreq.endpoint", DefaultEndpoint)
	v.SetDefault("printreq.timeout", 15*time.Second)
}

// ==================== 加载 ====================

// New 创建带默认值与环境变量绑定的 viper 实例
// 环境变量映射规则: server.port -> SERVER_PORT
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 加载配置
// path 为空时仅使用默认值 + 环境变量
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper 从 viper 实例解析配置并校验
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			Mode:            v.GetString("server.mode"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Intake: IntakeConfig{
			MaxImageBytes:         v.GetInt64("intake.max_image_bytes"),
			AllowedImageTypes:     splitList(v.GetStringSlice("intake.allowed_image_types")),
			EnforceDescriptionMin: v.GetBool("intake.enforce_description_min"),
		},
		PrintReq: ClientConfig{
			Endpoint: strings.TrimRight(v.GetString("printreq.endpoint"), "/"),
			Timeout:  v.GetDuration("printreq.timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port 不能为空")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode 无效: %q", c.Server.Mode)
	}
	if c.Intake.MaxImageBytes <= 0 {
		return fmt.Errorf("intake.max_image_bytes 必须大于 0: %d", c.Intake.MaxImageBytes)
	}
	if len(c.Intake.AllowedImageTypes) == 0 {
		return errors.New("intake.allowed_image_types 不能为空")
	}
	if c.PrintReq.Endpoint == "" {
		return errors.New("printreq.endpoint 不能为空")
	}
	if c.PrintReq.Timeout <= 0 {
		return fmt.Errorf("printreq.timeout 必须大于 0: %s", c.PrintReq.Timeout)
	}
	return nil
}

// splitList 兼容环境变量中逗号分隔的写法
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
