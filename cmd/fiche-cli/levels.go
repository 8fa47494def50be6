package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-fiche/pkg/levels"
)

func levelsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Show how many stagiaires each level allows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), levelsTable())
			return nil
		},
	}
}

func levelsTable() string {
	rows := make([][]string, 0, len(levels.Levels())+1)
	for _, lvl := range levels.Levels() {
		b := levels.Resolve(lvl.Code)
		rows = append(rows, []string{lvl.Code, lvl.Label, strconv.Itoa(b.Min), strconv.Itoa(b.Max)})
	}
	rows = append(rows, []string{"*", "Autre niveau", strconv.Itoa(levels.Default.Min), strconv.Itoa(levels.Default.Max)})

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Code", "Niveau", "Min", "Max").
		Rows(rows...).
		String()
}
