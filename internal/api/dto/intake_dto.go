package dto

import (
	"mime/multipart"
	"time"
)

// ==================== 请求 DTO ====================

// SubmitPrintRequestForm 定制打印需求传输单元（multipart/form-data）
type SubmitPrintRequestForm struct {
	Title          string                `form:"title"`
	Description    string                `form:"description"`
	Name           string                `form:"name"`
	Email          string                `form:"email"`
	ReferenceImage *multipart.FileHeader `form:"referenceImage" swaggerignore:"true"`
}

// ==================== 响应 DTO ====================

// SubmitResponse 提交成功响应
type SubmitResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Request submitted successfully"`
}

// ErrorResponse 接收端错误响应
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required fields"`
}

// 接收端对外提示信息
const (
	MsgSubmitted             = "Request submitted successfully"
	MsgMissingFields         = "Missing required fields"
	MsgInvalidEmail          = "Invalid email address"
	MsgDescriptionTooShort   = "Description must be at least 10 characters"
	MsgInvalidReferenceImage = "Invalid reference image"
	MsgReferenceImageTooBig  = "Reference image too large"
	MsgInternalError         = "Internal server error"
)

// SubmitResult 服务层提交结果
type SubmitResult struct {
	RequestID         string
	ReceivedAt        time.Time
	HasReferenceImage bool
}
