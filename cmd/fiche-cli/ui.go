package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-fiche/pkg/submission"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
)

// printNotifier shows submission notifications as toast-like lines.
type printNotifier struct {
	out io.Writer
}

func (p printNotifier) Notify(n submission.Notification) {
	if n.Level == submission.LevelError {
		fmt.Fprintln(p.out, errorStyle.Render("✗")+" "+n.Message)
		return
	}
	fmt.Fprintln(p.out, successStyle.Render("✓")+" "+n.Message)
}
