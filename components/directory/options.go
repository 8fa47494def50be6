package directory

import (
	"log/slog"
	"net/http"

	source "github.com/goliatone/go-fiche/pkg/directory"
)

// GuardFunc rejects a request before any lookup runs.
type GuardFunc func(r *http.Request) error

type Options struct {
	SearchParam  string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc
	Logger       *slog.Logger

	// Source defaults to the embedded static directory.
	Source source.Directory
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		SearchParam:  "q",
		DefaultLimit: source.DefaultLimit,
		MaxLimit:     200,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = source.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}

func WithSource(dir source.Directory) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = dir
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
