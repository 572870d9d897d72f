package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"printfolio/internal/api/dto"
	"printfolio/internal/form"
	"printfolio/internal/model"
	"printfolio/internal/validation"
)

// ==================== 测试替身 ====================

type stubCatalog struct {
	items []model.PortfolioItem
	err   error
}

func (s *stubCatalog) ListPortfolio(_ context.Context, _ string) (*dto.PortfolioListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PortfolioListResponse{Items: s.items, Total: len(s.items)}, nil
}

type stubSubmitter struct {
	calls int
	err   error
	got   *model.PrintRequest
}

func (s *stubSubmitter) Submit(_ context.Context, req *model.PrintRequest) error {
	s.calls++
	s.got = req
	return s.err
}

func newTestApp(t *testing.T, sub *stubSubmitter, opts ...AppOption) *App {
	t.Helper()
	v := validation.New(validation.Options{
		MaxImageBytes:     1 << 20,
		AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif"},
	})
	catalog := &stubCatalog{items: []model.PortfolioItem{
		{ID: "1", Title: "Dragon Miniature", Category: "Miniatures", Material: "Resin", Size: "15cm", PrintTime: "8 hours"},
		{ID: "6", Title: "Benchy Boat", Category: "Demo", Material: "PLA", Size: "6cm"},
	}}
	return NewApp(catalog, sub, form.New(v, zap.NewNop()), opts...)
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send 发送消息并同步执行返回的命令（只执行一层）
func send(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := a.Update(msg)
	require.Same(t, a, next)
	return cmd
}

func loadGallery(t *testing.T, a *App) {
	t.Helper()
	msg := a.loadGallery()()
	send(t, a, msg)
}

func fillDragon(a *App) {
	a.request.setValue(model.FieldTitle, "Custom Dragon Miniature")
	a.request.setValue(model.FieldDescription, "Please make it 15cm tall in red PLA")
	a.request.setValue(model.FieldName, "Jane Doe")
	a.request.setValue(model.FieldEmail, "jane@example.com")
}

// ==================== 作品集 ====================

func TestGallery_ModalOpensAndCloses(t *testing.T) {
	a := newTestApp(t, &stubSubmitter{})
	loadGallery(t, a)
	assert.Contains(t, a.View(), "Dragon Miniature")

	send(t, a, key(tea.KeyEnter))
	require.NotNil(t, a.gallery.selected)
	assert.Equal(t, "1", a.gallery.selected.ID)
	view := a.View()
	assert.Contains(t, view, "Print Time")
	assert.Contains(t, view, "Request Similar Print")

	send(t, a, key(tea.KeyEsc))
	assert.Nil(t, a.gallery.selected)
	assert.Equal(t, screenGallery, a.screen)
}

func TestGallery_RequestSimilarOpensForm(t *testing.T) {
	a := newTestApp(t, &stubSubmitter{})
	loadGallery(t, a)

	send(t, a, key(tea.KeyEnter))
	send(t, a, runes("r"))

	assert.Nil(t, a.gallery.selected)
	assert.Equal(t, screenForm, a.screen)
	assert.Contains(t, a.View(), "Request a Custom 3D Print")
}

func TestGallery_LoadError(t *testing.T) {
	v := validation.New(validation.Options{})
	a := NewApp(&stubCatalog{err: errors.New("connection refused")}, &stubSubmitter{}, form.New(v, zap.NewNop()))

	loadGallery(t, a)

	assert.Contains(t, a.View(), "Could not load portfolio")
}

// ==================== 表单 ====================

func TestForm_BlankSubmitShowsErrors(t *testing.T) {
	sub := &stubSubmitter{}
	a := newTestApp(t, sub, WithFormFirst())

	cmd := send(t, a, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.Zero(t, sub.calls)
	view := a.View()
	assert.Contains(t, view, "Print title is required")
	assert.Contains(t, view, "Description is required")
	assert.Contains(t, view, "Your name is required")
	assert.Contains(t, view, "Email is required")
}

func TestForm_InvalidEmailBlocks(t *testing.T) {
	sub := &stubSubmitter{}
	a := newTestApp(t, sub, WithFormFirst())
	fillDragon(a)
	a.request.setValue(model.FieldEmail, "not-an-email")

	cmd := send(t, a, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.Zero(t, sub.calls)
	assert.Contains(t, a.View(), "Please enter a valid email address")
}

func TestForm_DragonReachesConfirmation(t *testing.T) {
	sub := &stubSubmitter{}
	a := newTestApp(t, sub, WithFormFirst())
	fillDragon(a)

	cmd := send(t, a, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.Equal(t, form.StatusInFlight, a.form.Status())
	assert.Contains(t, a.View(), "Submitting...")

	// 在途时再次提交被忽略
	assert.Nil(t, send(t, a, key(tea.KeyCtrlS)))

	send(t, a, cmd())

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, "Custom Dragon Miniature", sub.got.Title)
	assert.False(t, sub.got.HasReferenceImage())
	assert.Equal(t, screenConfirmation, a.screen)
	view := a.View()
	assert.Contains(t, view, "What happens next?")
	assert.Contains(t, view, "Custom Dragon Miniature")

	send(t, a, runes("n"))
	assert.Equal(t, screenForm, a.screen)
	assert.Equal(t, form.StatusIdle, a.form.Status())
	assert.Empty(t, a.request.value(model.FieldTitle))
}

func TestForm_SubmitFailureShowsBanner(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("status 500")}
	a := newTestApp(t, sub, WithFormFirst())
	fillDragon(a)

	cmd := send(t, a, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	send(t, a, cmd())

	assert.Equal(t, screenForm, a.screen)
	assert.Equal(t, form.StatusIdle, a.form.Status())
	view := a.View()
	assert.Contains(t, view, "Failed to submit request. Please try again.")
	assert.Contains(t, view, "Submit Request")
	assert.Equal(t, "Jane Doe", a.request.value(model.FieldName))
}

func TestForm_ReferenceImage(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "dragon.png")
	require.NoError(t, os.WriteFile(png, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, 0o600))

	t.Run("缺失文件", func(t *testing.T) {
		sub := &stubSubmitter{}
		a := newTestApp(t, sub, WithFormFirst())
		fillDragon(a)
		a.request.setValue(model.FieldReferenceImage, filepath.Join(dir, "missing.png"))

		assert.Nil(t, send(t, a, key(tea.KeyCtrlS)))
		assert.Contains(t, a.View(), "Could not read image")
	})

	t.Run("PNG", func(t *testing.T) {
		sub := &stubSubmitter{}
		a := newTestApp(t, sub, WithFormFirst())
		fillDragon(a)
		a.request.setValue(model.FieldReferenceImage, png)

		cmd := send(t, a, key(tea.KeyCtrlS))
		require.NotNil(t, cmd)
		send(t, a, cmd())

		require.NotNil(t, sub.got)
		require.True(t, sub.got.HasReferenceImage())
		assert.Equal(t, "dragon.png", sub.got.ReferenceImage.Filename)
	})
}

func TestForm_FocusAndEscape(t *testing.T) {
	a := newTestApp(t, &stubSubmitter{}, WithFormFirst())
	assert.Equal(t, model.FieldTitle, a.request.focused())

	send(t, a, key(tea.KeyTab))
	assert.Equal(t, model.FieldDescription, a.request.focused())

	send(t, a, key(tea.KeyShiftTab))
	send(t, a, key(tea.KeyShiftTab))
	assert.Equal(t, model.FieldReferenceImage, a.request.focused())

	send(t, a, key(tea.KeyTab))
	send(t, a, runes("Vase"))
	assert.Equal(t, "Vase", a.request.value(model.FieldTitle))

	send(t, a, key(tea.KeyEsc))
	assert.Equal(t, screenGallery, a.screen)
}

func TestForm_LongInputNotTruncated(t *testing.T) {
	a := newTestApp(t, &stubSubmitter{}, WithFormFirst())

	long := strings.Repeat("x", 300)
	send(t, a, runes(long))
	assert.Equal(t, long, a.request.value(model.FieldTitle))

	send(t, a, key(tea.KeyTab))
	desc := strings.Repeat("y", 600)
	send(t, a, runes(desc))
	assert.Equal(t, desc, a.request.value(model.FieldDescription))
}

func TestConfirmationView(t *testing.T) {
	view := confirmationView("")
	for _, step := range nextSteps {
		assert.True(t, strings.Contains(view, step), step)
	}
}
