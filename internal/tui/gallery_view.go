package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"printfolio/internal/model"
)

// galleryAction 作品集页面对 App 的请求
type galleryAction int

const (
	galleryNone galleryAction = iota
	galleryOpenForm
	galleryQuit
)

// portfolioEntry implements list.DefaultItem
type portfolioEntry struct {
	item model.PortfolioItem
}

func (e portfolioEntry) Title() string { return e.item.Title }
func (e portfolioEntry) Description() string {
	return fmt.Sprintf("%s · %s · %s", e.item.Category, e.item.Material, e.item.Size)
}
func (e portfolioEntry) FilterValue() string { return e.item.Title + " " + e.item.Category }

// galleryView 作品集列表 + 详情弹窗
// 唯一的页面状态是当前选中的作品
type galleryView struct {
	list     list.Model
	selected *model.PortfolioItem
	loading  bool
	err      error
}

func newGalleryView() *galleryView {
	l := list.New(nil, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Printfolio · Portfolio"
	l.SetShowStatusBar(false)
	return &galleryView{list: l, loading: true}
}

func (g *galleryView) setItems(items []model.PortfolioItem) tea.Cmd {
	g.loading = false
	entries := make([]list.Item, 0, len(items))
	for _, it := range items {
		entries = append(entries, portfolioEntry{item: it})
	}
	return g.list.SetItems(entries)
}

func (g *galleryView) setSize(width, height int) {
	g.list.SetSize(width, height-2)
}

func (g *galleryView) update(msg tea.KeyMsg) (galleryAction, tea.Cmd) {
	// 弹窗打开时只响应关闭与「申请类似作品」
	if g.selected != nil {
		switch msg.String() {
		case "esc", "q":
			g.selected = nil
		case "r", "enter":
			g.selected = nil
			return galleryOpenForm, nil
		}
		return galleryNone, nil
	}

	if g.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		g.list, cmd = g.list.Update(msg)
		return galleryNone, cmd
	}

	switch msg.String() {
	case "enter":
		if entry, ok := g.list.SelectedItem().(portfolioEntry); ok {
			item := entry.item
			g.selected = &item
		}
		return galleryNone, nil
	case "n", "r":
		return galleryOpenForm, nil
	case "q":
		return galleryQuit, nil
	}

	var cmd tea.Cmd
	g.list, cmd = g.list.Update(msg)
	return galleryNone, cmd
}

func (g *galleryView) view() string {
	switch {
	case g.err != nil:
		return errorStyle.Render("Could not load portfolio: "+g.err.Error()) + "\n\n" +
			helpStyle.Render("n: request a custom print • q: quit")
	case g.loading:
		return helpStyle.Render("Loading portfolio...")
	case g.selected != nil:
		return g.modalView()
	}
	return g.list.View() + "\n" + helpStyle.Render("enter: details • n: request a custom print • q: quit")
}

func (g *galleryView) modalView() string {
	it := g.selected
	var b strings.Builder
	b.WriteString(titleStyle.Render(it.Title) + "\n")
	b.WriteString(it.Description + "\n\n")

	facts := []string{
		labelStyle.Render("Category: ") + it.Category,
		labelStyle.Render("Material: ") + it.Material,
		labelStyle.Render("Size: ") + it.Size,
	}
	if it.PrintTime != "" {
		facts = append(facts, labelStyle.Render("Print Time: ")+it.PrintTime)
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, facts...) + "\n\n")
	b.WriteString(helpStyle.Render("r: Request Similar Print • esc: Close"))
	return modalStyle.Render(b.String())
}
