// Package form holds the mutable fiche state behind a small control handle:
// dotted-path reads and writes, visible field errors, and the validation
// cadences used by the wizard (on change, on step trigger, before submit).
package form

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/validation"
)

// Form is safe for concurrent use. Autofill lookups may write to it from
// other goroutines while a prompt loop reads it.
type Form struct {
	mu         sync.RWMutex
	data       fiche.Snapshot
	errors     map[string][]string
	formErrors []string
	touched    map[string]struct{}
	schemas    *validation.Set
	logger     *slog.Logger
}

// Option customises a Form.
type Option func(*Form)

// WithSchemas replaces the default schema set, typically once the parcours
// and specialite enumerations are known.
func WithSchemas(set *validation.Set) Option {
	return func(f *Form) {
		if set != nil {
			f.schemas = set
		}
	}
}

// WithInitial seeds the form with prefilled values.
func WithInitial(snap fiche.Snapshot) Option {
	return func(f *Form) {
		f.data = snap.Clone()
	}
}

// WithLogger sets the logger used for validation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New returns a form holding the default values.
func New(opts ...Option) *Form {
	f := &Form{
		data:    fiche.DefaultSnapshot(),
		errors:  make(map[string][]string),
		touched: make(map[string]struct{}),
		schemas: validation.NewSet(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// SetSchemas swaps the schema set in place.
func (f *Form) SetSchemas(set *validation.Set) {
	if set == nil {
		return
	}
	f.mu.Lock()
	f.schemas = set
	f.mu.Unlock()
}

// Snapshot returns a fresh deep copy of the current values.
func (f *Form) Snapshot() fiche.Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data.Clone()
}

// Value resolves a dotted field path.
func (f *Form) Value(path string) (any, bool) {
	acc, ok := accessors[path]
	if !ok {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return acc.get(&f.data), true
}

// String resolves a path holding text. Unknown or non-text paths yield "".
func (f *Form) String(path string) string {
	value, ok := f.Value(path)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case fiche.EntityType:
		return string(v)
	default:
		return ""
	}
}

// SetValue writes value at path, marks the field touched and re-validates
// the owning step. Only touched fields, and fields already showing an error,
// get their visible errors refreshed.
func (f *Form) SetValue(path string, value any) error {
	acc, ok := accessors[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := acc.set(&f.data, value); err != nil {
		return fmt.Errorf("form: set %s: %w", path, err)
	}
	f.touched[path] = struct{}{}
	f.refreshLocked(fiche.StepOf(path))
	return nil
}

// SetValues applies several writes under one lock, in path order. Either
// every write lands or the form is left as it was.
func (f *Form) SetValues(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if _, ok := accessors[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.data.Clone()
	for _, path := range keys {
		if err := accessors[path].set(&next, values[path]); err != nil {
			return fmt.Errorf("form: set %s: %w", path, err)
		}
	}
	f.data = next
	steps := make(map[string]struct{})
	for _, path := range keys {
		f.touched[path] = struct{}{}
		steps[fiche.StepOf(path)] = struct{}{}
	}
	for step := range steps {
		f.refreshLocked(step)
	}
	return nil
}

func (f *Form) refreshLocked(step string) {
	res := f.schemas.ValidateStep(step, f.data)
	fields := res.Fields()
	for path := range f.touched {
		if fiche.StepOf(path) == step {
			f.assignLocked(path, fields[path])
		}
	}
	for path := range f.errors {
		if fiche.StepOf(path) != step {
			continue
		}
		if _, touched := f.touched[path]; touched {
			continue
		}
		f.assignLocked(path, fields[path])
	}
}

func (f *Form) assignLocked(path string, msgs []string) {
	if len(msgs) == 0 {
		delete(f.errors, path)
		return
	}
	f.errors[path] = append([]string(nil), msgs...)
}

// Trigger validates one step and makes every resulting error visible.
func (f *Form) Trigger(step string) validation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.schemas.ValidateStep(step, f.data)
	for path := range f.errors {
		if fiche.StepOf(path) == step {
			delete(f.errors, path)
		}
	}
	for path, msgs := range res.Fields() {
		f.errors[path] = msgs
		f.touched[path] = struct{}{}
	}
	f.logger.Debug("form: step validated", "step", step, "valid", res.Valid, "issues", len(res.Issues))
	return res
}

// ValidateAll runs the whole-form schema and replaces every visible error.
func (f *Form) ValidateAll() validation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.schemas.Validate(f.data)
	f.errors = make(map[string][]string)
	f.formErrors = nil
	for path, msgs := range res.Fields() {
		f.errors[path] = msgs
		f.touched[path] = struct{}{}
	}
	f.logger.Debug("form: validated", "valid", res.Valid, "issues", len(res.Issues))
	return res
}

// Errors returns a copy of the visible field errors.
func (f *Form) Errors() map[string][]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneErrors(f.errors)
}

// ErrorsFor returns the visible errors of one path.
func (f *Form) ErrorsFor(path string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.errors[path]...)
}

// StepErrors returns the visible errors of the paths owned by step.
func (f *Form) StepErrors(step string) map[string][]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string][]string)
	for path, msgs := range f.errors {
		if fiche.StepOf(path) == step {
			out[path] = append([]string(nil), msgs...)
		}
	}
	return out
}

// FormErrors returns messages not attached to a field.
func (f *Form) FormErrors() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.formErrors...)
}

// SetErrors attaches externally produced errors, such as a server response,
// without touching values.
func (f *Form) SetErrors(fields map[string][]string, formMessages []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for path, msgs := range fields {
		path = strings.TrimSpace(path)
		if path == "" || len(msgs) == 0 {
			continue
		}
		f.errors[path] = append(f.errors[path], msgs...)
	}
	f.formErrors = append(f.formErrors, formMessages...)
}

// ClearErrors drops every visible error and the touched set.
func (f *Form) ClearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = make(map[string][]string)
	f.formErrors = nil
	f.touched = make(map[string]struct{})
}

// Reset restores the default values and clears errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = fiche.DefaultSnapshot()
	f.errors = make(map[string][]string)
	f.formErrors = nil
	f.touched = make(map[string]struct{})
}

func cloneErrors(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
