package tui

import "errors"

var (
	// ErrAborted signals the user left the wizard (Ctrl+C or "Quitter").
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSubmitter is returned when the recap is confirmed but no submitter
	// was configured.
	ErrNoSubmitter = errors.New("tui: submitter is nil")
)
