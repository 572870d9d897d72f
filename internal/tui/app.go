// Package tui 定制打印的终端界面
// 三个页面：作品集（含详情弹窗）、需求表单、提交确认
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"printfolio/internal/api/dto"
	"printfolio/internal/form"
	"printfolio/internal/model"
)

// screen 当前页面
type screen int

const (
	screenGallery screen = iota
	screenForm
	screenConfirmation
)

const defaultSubmitTimeout = 15 * time.Second

// Catalog 作品集数据来源
type Catalog interface {
	ListPortfolio(ctx context.Context, category string) (*dto.PortfolioListResponse, error)
}

// ==================== 消息 ====================

type galleryLoadedMsg struct {
	items []model.PortfolioItem
	err   error
}

type submitFinishedMsg struct {
	err error
}

// ==================== App ====================

// AppOption 定制 App 构造
type AppOption func(*App)

// WithFormFirst 启动时直接进入需求表单
func WithFormFirst() AppOption {
	return func(a *App) { a.screen = screenForm }
}

// WithSubmitTimeout 单次提交的超时
func WithSubmitTimeout(d time.Duration) AppOption {
	return func(a *App) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// App bubbletea 根模型
type App struct {
	screen    screen
	catalog   Catalog
	submitter form.Submitter
	form      *form.Controller
	timeout   time.Duration

	gallery *galleryView
	request *formView

	width  int
	height int
}

// NewApp 创建 App
func NewApp(catalog Catalog, submitter form.Submitter, ctrl *form.Controller, opts ...AppOption) *App {
	a := &App{
		screen:    screenGallery,
		catalog:   catalog,
		submitter: submitter,
		form:      ctrl,
		timeout:   defaultSubmitTimeout,
		gallery:   newGalleryView(),
		request:   newFormView(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadGallery(), a.request.focusField(0))
}

func (a *App) loadGallery() tea.Cmd {
	catalog := a.catalog
	timeout := a.timeout
	return func() tea.Msg {
		if catalog == nil {
			return galleryLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		list, err := catalog.ListPortfolio(ctx, "")
		if err != nil {
			return galleryLoadedMsg{err: err}
		}
		return galleryLoadedMsg{items: list.Items}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.gallery.setSize(msg.Width, msg.Height)
		return a, nil

	case galleryLoadedMsg:
		if msg.err != nil {
			a.gallery.loading = false
			a.gallery.err = msg.err
			return a, nil
		}
		return a, a.gallery.setItems(msg.items)

	case submitFinishedMsg:
		if a.form.Finish(msg.err) == form.OutcomeConfirmed {
			a.screen = screenConfirmation
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.screen {
	case screenGallery:
		action, cmd := a.gallery.update(msg)
		switch action {
		case galleryOpenForm:
			a.screen = screenForm
			return a.request.focusField(0)
		case galleryQuit:
			return tea.Quit
		}
		return cmd

	case screenForm:
		// 请求在途时忽略一切输入
		if a.form.Status() == form.StatusInFlight {
			return nil
		}
		switch msg.String() {
		case "ctrl+s":
			return a.submit()
		case "esc":
			a.screen = screenGallery
			return nil
		}
		return a.request.update(msg)

	case screenConfirmation:
		switch msg.String() {
		case "enter", "esc":
			a.resetForm()
			a.screen = screenGallery
		case "n":
			a.resetForm()
			a.screen = screenForm
		case "q":
			return tea.Quit
		}
	}
	return nil
}

// submit 本地校验通过后发出一次请求
func (a *App) submit() tea.Cmd {
	if !a.request.sync(a.form) {
		return nil
	}
	req, err := a.form.Begin()
	if err != nil {
		return nil
	}

	submitter := a.submitter
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submitFinishedMsg{err: submitter.Submit(ctx, req)}
	}
}

func (a *App) resetForm() {
	a.form.Reset()
	a.request.reset()
}

func (a *App) View() string {
	switch a.screen {
	case screenForm:
		return a.request.view(a.form)
	case screenConfirmation:
		return confirmationView(a.form.Value(model.FieldTitle))
	}
	return a.gallery.view()
}
