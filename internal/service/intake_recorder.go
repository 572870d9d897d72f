package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ==================== 接口定义 ====================

// IntakeRecorder 需求记录器
// 接收端唯一的副作用出口，便于替换与测试
type IntakeRecorder interface {
	Record(ctx context.Context, entry *IntakeEntry) error
}

// IntakeEntry 一条已通过校验的定制打印需求
type IntakeEntry struct {
	RequestID         string
	Title             string
	Description       string
	Name              string
	Email             string
	HasReferenceImage bool
	ImageFilename     string
	ImageSize         int64
	ImageType         string
	ReceivedAt        time.Time
}

// MarshalLogObject 实现 zapcore.ObjectMarshaler
func (e *IntakeEntry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("request_id", e.RequestID)
	enc.AddString("title", e.Title)
	enc.AddString("description", e.Description)
	enc.AddString("name", e.Name)
	enc.AddString("email", e.Email)
	enc.AddBool("has_reference_image", e.HasReferenceImage)
	if e.HasReferenceImage {
		enc.AddString("image_filename", e.ImageFilename)
		enc.AddInt64("image_size", e.ImageSize)
		enc.AddString("image_type", e.ImageType)
	}
	enc.AddTime("received_at", e.ReceivedAt)
	return nil
}

// ==================== 日志实现 ====================

// LogRecorder 将需求写入运维日志
type LogRecorder struct {
	logger *zap.Logger
}

// NewLogRecorder 创建日志记录器
func NewLogRecorder(logger *zap.Logger) *LogRecorder {
	return &LogRecorder{logger: logger.Named("intake")}
}

// Record 记录需求
func (r *LogRecorder) Record(_ context.Context, entry *IntakeEntry) error {
	r.logger.Info("收到新的定制打印需求", zap.Object("print_request", entry))
	return nil
}
