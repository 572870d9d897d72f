package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"printfolio/internal/api/dto"
	"printfolio/internal/model"
	"printfolio/pkg/utils"
)

// ==================== 错误定义 ====================

// APIError 接口返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("intake api: status %d", e.Status)
	}
	return fmt.Sprintf("intake api: status %d: %s", e.Status, e.Message)
}

// IsAPIError 判断是否为接口错误并取出
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// ==================== 客户端 ====================

// Options 客户端参数
type Options struct {
	Endpoint string
	Timeout  time.Duration
	Debug    bool
}

// IntakeClient Intake Endpoint 与作品集接口的客户端
type IntakeClient struct {
	http *resty.Client
}

// NewIntakeClient 创建客户端
func NewIntakeClient(opts Options) *IntakeClient {
	return &IntakeClient{
		http: utils.NewHTTPClient(utils.ClientOptions{
			BaseURL: opts.Endpoint,
			Timeout: opts.Timeout,
			Debug:   opts.Debug,
		}),
	}
}

// SubmitPrintRequest 以 multipart 表单提交一条需求
// 只发一次，不重试
func (c *IntakeClient) SubmitPrintRequest(ctx context.Context, req *model.PrintRequest) error {
	var errBody dto.ErrorResponse
	r := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			model.FieldTitle:       req.Title,
			model.FieldDescription: req.Description,
			model.FieldName:        req.RequesterName,
			model.FieldEmail:       req.RequesterEmail,
		}).
		SetError(&errBody)

	if img := req.ReferenceImage; img != nil {
		r.SetFileReader(model.FieldReferenceImage, img.Filename, bytes.NewReader(img.Data))
	}

	resp, err := r.Post("/api/submit-request")
	if err != nil {
		return fmt.Errorf("提交请求发送失败: %w", err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: errBody.Error}
	}

	var ok dto.SubmitResponse
	if err := decodeJSON(resp, &ok); err != nil {
		return err
	}
	if !ok.Success {
		return &APIError{Status: resp.StatusCode(), Message: ok.Message}
	}
	return nil
}

// Submit 实现 form.Submitter
func (c *IntakeClient) Submit(ctx context.Context, req *model.PrintRequest) error {
	return c.SubmitPrintRequest(ctx, req)
}

// ListPortfolio 获取作品集，category 为空返回全部
func (c *IntakeClient) ListPortfolio(ctx context.Context, category string) (*dto.PortfolioListResponse, error) {
	var list dto.PortfolioListResponse
	r := c.http.R().SetContext(ctx)
	if category != "" {
		r.SetQueryParam("category", category)
	}

	resp, err := r.Get("/api/portfolio")
	if err != nil {
		return nil, fmt.Errorf("请求作品集失败: %w", err)
	}
	if err := decodeEnvelope(resp, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPortfolioItem 获取单个作品
func (c *IntakeClient) GetPortfolioItem(ctx context.Context, id string) (*model.PortfolioItem, error) {
	var item model.PortfolioItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/api/portfolio/{id}")
	if err != nil {
		return nil, fmt.Errorf("请求作品详情失败: %w", err)
	}
	if err := decodeEnvelope(resp, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ==================== 响应解析 ====================

// envelope 作品集接口统一响应
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(resp *resty.Response, out any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &APIError{Status: resp.StatusCode(), Message: resp.String()}
	}
	if resp.StatusCode() != http.StatusOK || env.Code != 0 {
		return &APIError{Status: resp.StatusCode(), Message: env.Message}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("解析响应数据失败: %w", err)
	}
	return nil
}

func decodeJSON(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("解析响应失败 (status %d): %w", resp.StatusCode(), err)
	}
	return nil
}
