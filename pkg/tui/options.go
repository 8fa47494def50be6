package tui

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-fiche/pkg/directory"
)

// Theme carries the prefixes added to informational and error lines.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{InfoPrefix: "›", ErrorPrefix: "✗"}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational lines.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithPageSize bounds directory lookups and select lists.
func WithPageSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// WithAnneeUniv restricts enrollment lookups to one academic year.
func WithAnneeUniv(year string) Option {
	return func(r *Runner) {
		r.anneeUniv = year
	}
}

// WithCatalog skips the catalog fetch and uses the given enumerations.
func WithCatalog(cat directory.Catalog) Option {
	return func(r *Runner) {
		r.catalog = &cat
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLogger sets the logger shared with the navigator and autofill.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
