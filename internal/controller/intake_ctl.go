package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"printfolio/internal/api/dto"
	"printfolio/internal/middleware"
	"printfolio/internal/model"
	"printfolio/internal/service"
	"printfolio/pkg/utils"
)

// 表单其余字段预留的空间
const formOverheadBytes = 1 << 20

var errUnsupportedContentType = errors.New("unsupported content type")

// IntakeController 定制打印需求接收控制器
type IntakeController struct {
	intakeService *service.IntakeService
	logger        *zap.Logger
}

func NewIntakeController(intakeService *service.IntakeService, logger *zap.Logger) *IntakeController {
	return &IntakeController{intakeService: intakeService, logger: logger}
}

// SubmitRequest 提交定制打印需求
// @Summary 提交定制打印需求
// @Tags Intake
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "作品标题"
// @Param description formData string true "详细描述"
// @Param name formData string true "联系人"
// @Param email formData string true "联系邮箱"
// @Param referenceImage formData file false "参考图片 (JPG/PNG/GIF)"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/submit-request [post]
func (ctrl *IntakeController) SubmitRequest(c *gin.Context) {
	maxImage := ctrl.intakeService.MaxImageBytes()
	if maxImage > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImage+formOverheadBytes)
	}

	// 1. 解析传输单元，只接受表单编码
	b, err := formBinding(c.ContentType())
	if err != nil {
		ctrl.internalError(c, "解析表单失败", err)
		return
	}
	var form dto.SubmitPrintRequestForm
	if err := c.ShouldBindWith(&form, b); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			service.RecordOutcome(service.OutcomeImageTooLarge)
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: dto.MsgReferenceImageTooBig})
			return
		}
		ctrl.internalError(c, "解析表单失败", err)
		return
	}

	req := &model.PrintRequest{
		Title:          form.Title,
		Description:    form.Description,
		RequesterName:  form.Name,
		RequesterEmail: form.Email,
	}

	// 2. 读取参考图片（可选）
	if form.ReferenceImage != nil {
		img, err := ctrl.readReferenceImage(form, maxImage)
		if errors.Is(err, utils.ErrImageTooLarge) {
			service.RecordOutcome(service.OutcomeImageTooLarge)
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: dto.MsgReferenceImageTooBig})
			return
		}
		if err != nil {
			ctrl.internalError(c, "读取参考图片失败", err)
			return
		}
		req.ReferenceImage = img
	}

	// 3. 校验并记录
	if _, err := ctrl.intakeService.Submit(c.Request.Context(), req); err != nil {
		status, msg := intakeErrorResponse(err)
		if status == http.StatusInternalServerError {
			ctrl.internalError(c, "处理需求失败", err)
			return
		}
		c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.SubmitResponse{
		Success: true,
		Message: dto.MsgSubmitted,
	})
}

// readReferenceImage 读取上传的参考图片，超过上限直接拒绝
func (ctrl *IntakeController) readReferenceImage(form dto.SubmitPrintRequestForm, max int64) (*model.ReferenceImage, error) {
	fh := form.ReferenceImage
	if max > 0 && fh.Size > max {
		return nil, utils.ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limit := max
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := utils.ReadImage(f, limit)
	if err != nil {
		return nil, err
	}

	return &model.ReferenceImage{
		Filename: fh.Filename,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// formBinding multipart/form-data 或 x-www-form-urlencoded，其余一律视为解析失败
func formBinding(contentType string) (binding.Binding, error) {
	switch contentType {
	case binding.MIMEMultipartPOSTForm:
		return binding.FormMultipart, nil
	case binding.MIMEPOSTForm:
		return binding.Form, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnsupportedContentType, contentType)
}

func (ctrl *IntakeController) internalError(c *gin.Context, msg string, err error) {
	service.RecordOutcome(service.OutcomeError)
	ctrl.logger.Error(msg, zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgInternalError})
}

// intakeErrorResponse 服务层错误 -> HTTP 状态码与对外提示
func intakeErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, dto.MsgMissingFields
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest, dto.MsgInvalidEmail
	case errors.Is(err, service.ErrDescriptionTooShort):
		return http.StatusBadRequest, dto.MsgDescriptionTooShort
	case errors.Is(err, service.ErrInvalidReferenceImage):
		return http.StatusBadRequest, dto.MsgInvalidReferenceImage
	case errors.Is(err, service.ErrReferenceImageTooLarge):
		return http.StatusRequestEntityTooLarge, dto.MsgReferenceImageTooBig
	}
	return http.StatusInternalServerError, dto.MsgInternalError
}
