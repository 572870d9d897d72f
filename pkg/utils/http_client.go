package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent printreq 请求标识
const DefaultUserAgent = "Printfolio-printreq/1.0"

// ClientOptions HTTP 客户端参数
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// NewHTTPClient 创建一个配置好基础地址、超时和调试模式的 Resty 客户端
// 不开启重试：一次提交只发一次请求
func NewHTTPClient(opts ClientOptions) *resty.Client {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetDebug(opts.Debug).
		SetHeader("User-Agent", DefaultUserAgent)

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return client
}
