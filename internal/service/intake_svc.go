package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"printfolio/internal/api/dto"
	"printfolio/internal/middleware"
	"printfolio/internal/model"
	"printfolio/internal/validation"
)

// ==================== 错误定义 ====================

var (
	ErrMissingFields          = errors.New("missing required fields")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrDescriptionTooShort    = errors.New("description too short")
	ErrInvalidReferenceImage  = errors.New("invalid reference image")
	ErrReferenceImageTooLarge = errors.New("reference image too large")
)

// ==================== 指标 ====================

// 提交结果标签
const (
	OutcomeAccepted      = "accepted"
	OutcomeMissingFields = "missing_fields"
	OutcomeInvalidEmail  = "invalid_email"
	OutcomeTooShort      = "description_too_short"
	OutcomeInvalidImage  = "invalid_image"
	OutcomeImageTooLarge = "image_too_large"
	OutcomeError         = "error"
)

var intakeSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "printfolio_intake_submissions_total",
		Help: "定制打印需求提交次数（按结果）",
	},
	[]string{"outcome"},
)

// ==================== 服务 ====================

// IntakeService 定制打印需求接收服务
// 无状态：每次调用互相独立，不去重
type IntakeService struct {
	validator *validation.Validator
	recorder  IntakeRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewIntakeService 创建接收服务
func NewIntakeService(v *validation.Validator, recorder IntakeRecorder, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		validator: v,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// MaxImageBytes 参考图片上限
func (s *IntakeService) MaxImageBytes() int64 {
	return s.validator.Options().MaxImageBytes
}

// Submit 校验并记录一条需求
func (s *IntakeService) Submit(ctx context.Context, req *model.PrintRequest) (*dto.SubmitResult, error) {
	// 1. 校验（接收端规则）
	if errs := s.validator.Validate(req, validation.ScopeIntake); len(errs) > 0 {
		err := classify(errs)
		intakeSubmissions.WithLabelValues(outcomeOf(err)).Inc()
		s.logger.Debug("需求校验未通过", zap.Error(errs), zap.String("request_id", middleware.RequestIDFrom(ctx)))
		return nil, err
	}

	// 2. 组装记录
	requestID := middleware.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	entry := &IntakeEntry{
		RequestID:         requestID,
		Title:             req.Title,
		Description:       req.Description,
		Name:              req.RequesterName,
		Email:             req.RequesterEmail,
		HasReferenceImage: req.HasReferenceImage(),
		ReceivedAt:        s.now(),
	}
	if img := req.ReferenceImage; img != nil {
		entry.ImageFilename = img.Filename
		entry.ImageSize = img.Size
		entry.ImageType = img.ContentType
	}

	// 3. 记录
	if err := s.recorder.Record(ctx, entry); err != nil {
		intakeSubmissions.WithLabelValues(OutcomeError).Inc()
		return nil, fmt.Errorf("记录需求失败: %w", err)
	}

	intakeSubmissions.WithLabelValues(OutcomeAccepted).Inc()
	return &dto.SubmitResult{
		RequestID:         requestID,
		ReceivedAt:        entry.ReceivedAt,
		HasReferenceImage: entry.HasReferenceImage,
	}, nil
}

// classify 按优先级归类：缺字段 > 邮箱 > 描述长度 > 图片
func classify(errs validation.Errors) error {
	switch {
	case errs.Has(validation.RuleRequired):
		return fmt.Errorf("%w: %w", ErrMissingFields, errs)
	case errs.Has(validation.RuleEmail):
		return fmt.Errorf("%w: %w", ErrInvalidEmail, errs)
	case errs.Has(validation.RuleMinLength):
		return fmt.Errorf("%w: %w", ErrDescriptionTooShort, errs)
	case errs.Has(validation.RuleImageSize):
		return fmt.Errorf("%w: %w", ErrReferenceImageTooLarge, errs)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidReferenceImage, errs)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return OutcomeMissingFields
	case errors.Is(err, ErrInvalidEmail):
		return OutcomeInvalidEmail
	case errors.Is(err, ErrDescriptionTooShort):
		return OutcomeTooShort
	case errors.Is(err, ErrReferenceImageTooLarge):
		return OutcomeImageTooLarge
	case errors.Is(err, ErrInvalidReferenceImage):
		return OutcomeInvalidImage
	}
	return OutcomeError
}

// RecordOutcome 记录未进入 Submit 的结果（如表单解析失败）
func RecordOutcome(outcome string) {
	intakeSubmissions.WithLabelValues(outcome).Inc()
}
