package form

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"printfolio/internal/model"
	"printfolio/internal/validation"
	"printfolio/pkg/utils"
)

// ==================== 错误定义 ====================

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrSubmissionSettled  = errors.New("request already submitted")
)

// SubmitFailedMessage 提交失败时展示给用户的提示
const SubmitFailedMessage = "Failed to submit request. Please try again."

// Submitter 负责把需求发往接收端
type Submitter interface {
	Submit(ctx context.Context, req *model.PrintRequest) error
}

// ==================== 表单控制器 ====================

// Controller 定制打印需求表单
// 持有字段值、字段错误、顶层提交错误与提交状态，并发安全
type Controller struct {
	mu          sync.Mutex
	validator   *validation.Validator
	logger      *zap.Logger
	req         model.PrintRequest
	fieldErrors validation.Errors
	submitError string
	status      Status
}

// New 创建表单控制器
func New(v *validation.Validator, logger *zap.Logger) *Controller {
	return &Controller{
		validator: v,
		logger:    logger.Named("form"),
		status:    StatusIdle,
	}
}

// ==================== 读取 ====================

// Status 当前提交状态
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Value 字段当前值
func (c *Controller) Value(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req.Field(field)
}

// Image 当前附带的参考图片
func (c *Controller) Image() *model.ReferenceImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.req.ReferenceImage
}

// FieldError 字段错误提示，无错误返回空串
func (c *Controller) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	fe, _ := c.fieldErrors.Get(field)
	return fe.Message
}

// Errors 全部字段错误
func (c *Controller) Errors() validation.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(validation.Errors(nil), c.fieldErrors...)
}

// SubmitError 顶层提交错误
func (c *Controller) SubmitError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitError
}

// ==================== 编辑 ====================

// Set 修改字段值，同时清除该字段的错误
func (c *Controller) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.req.SetField(field, value)
	c.clearFieldErrorLocked(field)
	return nil
}

// AttachImage 从本地路径读取参考图片
// 超过上限时记录字段错误并返回 utils.ErrImageTooLarge
func (c *Controller) AttachImage(path string) error {
	limit := c.validator.Options().MaxImageBytes
	if limit <= 0 {
		limit = maxUnboundedImage
	}

	name, data, err := utils.ReadImageFile(path, limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if editErr := c.editableLocked(); editErr != nil {
		return editErr
	}
	c.clearFieldErrorLocked(model.FieldReferenceImage)

	if errors.Is(err, utils.ErrImageTooLarge) {
		c.fieldErrors = append(c.fieldErrors, validation.FieldError{
			Field:   model.FieldReferenceImage,
			Rule:    validation.RuleImageSize,
			Message: "Reference image must be " + utils.FormatBytes(limit) + " or smaller",
		})
		return err
	}
	if err != nil {
		return err
	}

	c.req.ReferenceImage = &model.ReferenceImage{
		Filename:    name,
		Size:        int64(len(data)),
		ContentType: utils.DetectContentType(data),
		Data:        data,
	}
	return nil
}

// DetachImage 移除参考图片
func (c *Controller) DetachImage() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}
	c.req.ReferenceImage = nil
	c.clearFieldErrorLocked(model.FieldReferenceImage)
	return nil
}

// 未配置上限时读取本地文件的保护值
const maxUnboundedImage = 64 << 20

func (c *Controller) editableLocked() error {
	switch c.status {
	case StatusInFlight:
		return ErrSubmissionInFlight
	case StatusSettled:
		return ErrSubmissionSettled
	}
	return nil
}

func (c *Controller) clearFieldErrorLocked(field string) {
	kept := c.fieldErrors[:0]
	for _, fe := range c.fieldErrors {
		if fe.Field != field {
			kept = append(kept, fe)
		}
	}
	c.fieldErrors = kept
}

// ==================== 提交 ====================

// Begin 校验并进入 InFlight
// 校验失败返回 validation.Errors，不发请求；已有请求在途返回 ErrSubmissionInFlight
func (c *Controller) Begin() (*model.PrintRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return nil, err
	}

	c.submitError = ""
	c.fieldErrors = c.validator.Validate(&c.req, validation.ScopeForm)
	if len(c.fieldErrors) > 0 {
		return nil, append(validation.Errors(nil), c.fieldErrors...)
	}

	c.status = StatusInFlight
	snapshot := c.req
	return &snapshot, nil
}

// Finish 结束在途请求
// 成功进入 Settled；失败回到 Idle 并设置提交错误，字段值保留
func (c *Controller) Finish(err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusInFlight {
		return OutcomeIgnored
	}

	if err != nil {
		c.status = StatusIdle
		c.submitError = SubmitFailedMessage
		c.logger.Warn("提交定制打印需求失败", zap.Error(err))
		return OutcomeFailed
	}

	c.status = StatusSettled
	c.logger.Info("定制打印需求已提交", zap.String("title", c.req.Title))
	return OutcomeConfirmed
}

// Submit 校验 + 一次网络请求 + 结束，不重试
func (c *Controller) Submit(ctx context.Context, s Submitter) Outcome {
	req, err := c.Begin()
	if errors.Is(err, ErrSubmissionInFlight) || errors.Is(err, ErrSubmissionSettled) {
		return OutcomeIgnored
	}
	if err != nil {
		return OutcomeBlocked
	}
	return c.Finish(s.Submit(ctx, req))
}

// Reset 回到空白的 Idle 表单，在途时无效
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusInFlight {
		return
	}
	c.req = model.PrintRequest{}
	c.fieldErrors = nil
	c.submitError = ""
	c.status = StatusIdle
}
