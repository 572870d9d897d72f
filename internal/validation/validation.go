package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"printfolio/internal/model"
	"printfolio/pkg/utils"
)

// ==================== 校验错误 ====================

// FieldError 字段级错误
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors 一次校验的全部字段错误，按表单顺序
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Err 无错误时返回 nil，避免 typed nil
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Has 是否存在指定规则的失败
func (e Errors) Has(rule string) bool {
	return slices.ContainsFunc(e, func(fe FieldError) bool { return fe.Rule == rule })
}

// Get 获取指定字段的错误
func (e Errors) Get(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Messages 字段名 -> 提示信息
func (e Errors) Messages() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// ==================== 校验器 ====================

// Options 校验选项
type Options struct {
	EnforceDescriptionMin bool     // 接收端是否也校验描述最小长度
	MaxImageBytes         int64    // 参考图片上限，0 表示不限制
	AllowedImageTypes     []string // 参考图片类型白名单，空表示不限制
}

// Validator PrintRequest 校验器
type Validator struct {
	validate *validator.Validate
	opts     Options
}

// New 创建校验器
func New(opts Options) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerRules(v)
	return &Validator{validate: v, opts: opts}
}

// Options 返回当前选项
func (v *Validator) Options() Options {
	return v.opts
}

// Validate 按边界校验全部字段，不短路
func (v *Validator) Validate(req *model.PrintRequest, scope Scope) Errors {
	var errs Errors

	for _, fr := range textRules {
		value := req.Field(fr.field)
		for _, r := range fr.rules {
			if !v.applies(r, scope) {
				continue
			}
			if err := v.validate.Var(value, r.tag); err != nil {
				errs = append(errs, FieldError{Field: fr.field, Rule: r.name, Message: r.message})
				break
			}
		}
	}

	if fe, ok := v.checkImage(req.ReferenceImage); !ok {
		errs = append(errs, fe)
	}
	return errs
}

func (v *Validator) applies(r rule, scope Scope) bool {
	if r.scope&scope != 0 {
		return true
	}
	return r.name == RuleMinLength && v.opts.EnforceDescriptionMin
}

// checkImage 参考图片：可选，存在时校验大小与嗅探类型
func (v *Validator) checkImage(img *model.ReferenceImage) (FieldError, bool) {
	if img == nil {
		return FieldError{}, true
	}

	if v.opts.MaxImageBytes > 0 {
		if err := v.validate.Var(img.Size, fmt.Sprintf("lte=%d", v.opts.MaxImageBytes)); err != nil {
			return FieldError{
				Field:   model.FieldReferenceImage,
				Rule:    RuleImageSize,
				Message: "Reference image must be " + utils.FormatBytes(v.opts.MaxImageBytes) + " or smaller",
			}, false
		}
	}

	if len(v.opts.AllowedImageTypes) > 0 {
		if img.ContentType == "" {
			img.ContentType = utils.DetectContentType(img.Data)
		}
		if err := v.validate.Var(img.ContentType, "oneof="+strings.Join(v.opts.AllowedImageTypes, " ")); err != nil {
			return FieldError{
				Field:   model.FieldReferenceImage,
				Rule:    RuleImageType,
				Message: "Reference image must be a " + describeTypes(v.opts.AllowedImageTypes),
			}, false
		}
	}
	return FieldError{}, true
}

// describeTypes image/jpeg,image/png,image/gif -> "JPG, PNG, or GIF"
func describeTypes(types []string) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		_, sub, _ := strings.Cut(t, "/")
		if sub == "jpeg" {
			sub = "jpg"
		}
		names = append(names, strings.ToUpper(sub))
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
