package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"printfolio/internal/model"
)

func newGalleryCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "gallery [id]",
		Short: "List portfolio items, or show one item in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				item, err := a.client.GetPortfolioItem(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printItem(cmd.OutOrStdout(), item)
				return nil
			}

			list, err := a.client.ListPortfolio(cmd.Context(), category)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list.Items))
			for _, it := range list.Items {
				rows = append(rows, []string{it.ID, it.Title, it.Category, it.Material, it.Size})
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "TITLE", "CATEGORY", "MATERIAL", "SIZE").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d items\n", list.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show one category (e.g. Functional)")
	return cmd
}

func printItem(w io.Writer, it *model.PortfolioItem) {
	fmt.Fprintf(w, "%s\n\n%s\n\n", it.Title, it.Description)
	fmt.Fprintf(w, "Category:   %s\n", it.Category)
	fmt.Fprintf(w, "Material:   %s\n", it.Material)
	fmt.Fprintf(w, "Size:       %s\n", it.Size)
	if it.PrintTime != "" {
		fmt.Fprintf(w, "Print Time: %s\n", it.PrintTime)
	}
}
