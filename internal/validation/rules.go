package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"printfolio/internal/model"
)

// ==================== 规则集 ====================
// 表单层与接收端共用同一份规则表，避免两端漂移

// Scope 规则生效的边界
type Scope uint8

const (
	ScopeForm   Scope = 1 << iota // 交互式表单
	ScopeIntake                   // 服务端接收
)

// 规则名（同时也是注册到 validator 的 tag）
const (
	RuleRequired  = "trimmed_required"
	RuleMinLength = "trimmed_min"
	RuleEmail     = "email_shape"
	RuleImageType = "image_type"
	RuleImageSize = "image_size"
)

// DescriptionMinLength 描述最少字符数（去除首尾空白后）
const DescriptionMinLength = 10

// 与浏览器正则的 \s 一致：ASCII 空白、\v、Unicode 空格分隔符、行/段分隔符与 BOM
const emailSpace = `\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// EmailPattern 邮箱基本形状 local@domain.tld
var EmailPattern = regexp.MustCompile(`^[^` + emailSpace + `@]+@[^` + emailSpace + `@]+\.[^` + emailSpace + `@]+$`)

// rule 单条规则
type rule struct {
	name    string
	tag     string // validator tag，可带参数
	message string
	scope   Scope
}

// fieldRules 单个字段的规则，按顺序检查，首个失败即停止
type fieldRules struct {
	field string
	rules []rule
}

var textRules = []fieldRules{
	{
		field: model.FieldTitle,
		rules: []rule{
			{name: RuleRequired, tag: RuleRequired, message: "Print title is required", scope: ScopeForm | ScopeIntake},
		},
	},
	{
		field: model.FieldDescription,
		rules: []rule{
			{name: RuleRequired, tag: RuleRequired, message: "Description is required", scope: ScopeForm | ScopeIntake},
			{
				name:    RuleMinLength,
				tag:     RuleMinLength + "=" + strconv.Itoa(DescriptionMinLength),
				message: "Description must be at least " + strconv.Itoa(DescriptionMinLength) + " characters",
				scope:   ScopeForm,
			},
		},
	},
	{
		field: model.FieldName,
		rules: []rule{
			{name: RuleRequired, tag: RuleRequired, message: "Your name is required", scope: ScopeForm | ScopeIntake},
		},
	},
	{
		field: model.FieldEmail,
		rules: []rule{
			{name: RuleRequired, tag: RuleRequired, message: "Email is required", scope: ScopeForm | ScopeIntake},
			{name: RuleEmail, tag: RuleEmail, message: "Please enter a valid email address", scope: ScopeForm | ScopeIntake},
		},
	},
}

// ==================== 自定义校验函数 ====================

// registerRules 注册自定义 tag
func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation(RuleRequired, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation(RuleMinLength, func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
	// 与浏览器端一致，对原始值做匹配
	_ = v.RegisterValidation(RuleEmail, func(fl validator.FieldLevel) bool {
		return EmailPattern.MatchString(fl.Field().String())
	})
}
