package model

// PrintRequest 定制打印需求
// 仅存在于一次提交过程中，不做持久化
type PrintRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RequesterName  string          `json:"name"`
	RequesterEmail string          `json:"email"`
	ReferenceImage *ReferenceImage `json:"-"`
}

// ReferenceImage 可选参考图片
type ReferenceImage struct {
	Filename    string
	Size        int64
	ContentType string // 由内容嗅探得出，空表示尚未检测
	Data        []byte
}

// HasReferenceImage 是否携带参考图片
func (r *PrintRequest) HasReferenceImage() bool {
	return r.ReferenceImage != nil
}

// ==================== 表单字段 ====================

// 表单字段名（multipart 传输单元中的 key）
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldReferenceImage = "referenceImage"
)

// TextFields 四个必填文本字段，按表单顺序
var TextFields = []string{FieldTitle, FieldDescription, FieldName, FieldEmail}

// Field 按表单字段名取值
func (r *PrintRequest) Field(name string) string {
	switch name {
	case FieldTitle:
		return r.Title
	case FieldDescription:
		return r.Description
	case FieldName:
		return r.RequesterName
	case FieldEmail:
		return r.RequesterEmail
	}
	return ""
}

// SetField 按表单字段名赋值，未知字段忽略
func (r *PrintRequest) SetField(name, value string) {
	switch name {
	case FieldTitle:
		r.Title = value
	case FieldDescription:
		r.Description = value
	case FieldName:
		r.RequesterName = value
	case FieldEmail:
		r.RequesterEmail = value
	}
}
