package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"printfolio/internal/tui"
)

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in a custom print request interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, true)
		},
	}
}

// runTUI 全屏界面
func (a *app) runTUI(cmd *cobra.Command, formFirst bool) error {
	ctrl := a.newForm()

	opts := []tui.AppOption{tui.WithSubmitTimeout(a.cfg.PrintReq.Timeout)}
	if formFirst {
		opts = append(opts, tui.WithFormFirst())
	}

	p := tea.NewProgram(
		tui.NewApp(a.client, a.client, ctrl, opts...),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}
