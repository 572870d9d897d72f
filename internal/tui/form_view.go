package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"printfolio/internal/form"
	"printfolio/internal/model"
)

// 表单字段顺序（焦点切换顺序）
var formFields = []string{
	model.FieldTitle,
	model.FieldDescription,
	model.FieldName,
	model.FieldEmail,
	model.FieldReferenceImage,
}

var fieldLabels = map[string]string{
	model.FieldTitle:          "Print Title",
	model.FieldDescription:    "Description",
	model.FieldName:           "Your Name",
	model.FieldEmail:          "Email",
	model.FieldReferenceImage: "Reference Image (optional, path)",
}

var fieldPlaceholders = map[string]string{
	model.FieldTitle:          "e.g., Custom Dragon Miniature",
	model.FieldDescription:    "Describe size, material, color and any other details",
	model.FieldName:           "John Doe",
	model.FieldEmail:          "john@example.com",
	model.FieldReferenceImage: "/path/to/reference.png",
}

// formView 定制打印需求表单页面
// 字段值以输入框为准，提交前同步到 form.Controller
type formView struct {
	inputs      map[string]*textinput.Model
	description textarea.Model
	focus       int
	imageErr    string // 本地文件读取失败，不属于校验规则
	attached    string // 已成功附加的图片路径
}

func newFormView() *formView {
	f := &formView{inputs: make(map[string]*textinput.Model)}
	for _, field := range formFields {
		if field == model.FieldDescription {
			continue
		}
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[field]
		ti.Width = 50
		ti.CharLimit = 0 // 长度由校验规则决定，输入框不截断
		f.inputs[field] = &ti
	}

	f.description = textarea.New()
	f.description.Placeholder = fieldPlaceholders[model.FieldDescription]
	f.description.ShowLineNumbers = false
	f.description.SetWidth(52)
	f.description.SetHeight(5)
	f.description.CharLimit = 0

	f.focusField(0)
	return f
}

func (f *formView) focused() string {
	return formFields[f.focus]
}

func (f *formView) focusField(i int) tea.Cmd {
	n := len(formFields)
	f.focus = ((i % n) + n) % n

	f.description.Blur()
	for _, in := range f.inputs {
		in.Blur()
	}
	if f.focused() == model.FieldDescription {
		return f.description.Focus()
	}
	return f.inputs[f.focused()].Focus()
}

func (f *formView) value(field string) string {
	if field == model.FieldDescription {
		return f.description.Value()
	}
	return f.inputs[field].Value()
}

func (f *formView) setValue(field, v string) {
	if field == model.FieldDescription {
		f.description.SetValue(v)
		return
	}
	f.inputs[field].SetValue(v)
}

func (f *formView) reset() {
	for _, field := range formFields {
		f.setValue(field, "")
	}
	f.imageErr = ""
	f.attached = ""
	f.focusField(0)
}

// update 处理编辑类按键；提交与返回由 App 处理
func (f *formView) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		if msg.String() == "down" && f.focused() == model.FieldDescription {
			break
		}
		return f.focusField(f.focus + 1)
	case "shift+tab", "up":
		if msg.String() == "up" && f.focused() == model.FieldDescription {
			break
		}
		return f.focusField(f.focus - 1)
	}

	var cmd tea.Cmd
	if f.focused() == model.FieldDescription {
		f.description, cmd = f.description.Update(msg)
		return cmd
	}
	in := f.inputs[f.focused()]
	*in, cmd = in.Update(msg)
	return cmd
}

// sync 把输入框的值写入表单控制器
// 返回 false 表示参考图片无法附加，不应继续提交
func (f *formView) sync(ctrl *form.Controller) bool {
	for _, field := range model.TextFields {
		if err := ctrl.Set(field, f.value(field)); err != nil {
			return false
		}
	}

	f.imageErr = ""
	path := strings.TrimSpace(f.value(model.FieldReferenceImage))
	switch {
	case path == "":
		f.attached = ""
		return ctrl.DetachImage() == nil
	case path == f.attached && ctrl.Image() != nil:
		return true
	}

	if err := ctrl.AttachImage(path); err != nil {
		f.attached = ""
		f.imageErr = ctrl.FieldError(model.FieldReferenceImage)
		if f.imageErr == "" {
			f.imageErr = "Could not read image: " + err.Error()
		}
		return false
	}
	f.attached = path
	return true
}

func (f *formView) view(ctrl *form.Controller) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Request a Custom 3D Print") + "\n")

	if msg := ctrl.SubmitError(); msg != "" {
		b.WriteString(bannerErrorStyle.Render(msg) + "\n\n")
	}

	for _, field := range formFields {
		label := labelStyle.Render(fieldLabels[field])
		if field != model.FieldReferenceImage {
			label += " " + requiredStyle.Render("*")
		}
		b.WriteString(label + "\n")

		if field == model.FieldDescription {
			b.WriteString(f.description.View() + "\n")
		} else {
			b.WriteString(f.inputs[field].View() + "\n")
		}

		msg := ctrl.FieldError(field)
		if field == model.FieldReferenceImage && f.imageErr != "" {
			msg = f.imageErr
		}
		if msg != "" {
			b.WriteString(errorStyle.Render(msg) + "\n")
		} else if field == model.FieldReferenceImage {
			b.WriteString(helpStyle.Render("PNG, JPG, GIF up to 10MB") + "\n")
		}
		b.WriteString("\n")
	}

	if ctrl.Status() == form.StatusInFlight {
		b.WriteString(buttonBusyStyle.Render("Submitting...") + "\n")
	} else {
		b.WriteString(buttonStyle.Render("Submit Request") + "\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab: move • ctrl+s: submit • esc: back to gallery"))
	return b.String()
}
