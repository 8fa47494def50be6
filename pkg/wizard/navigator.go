// Package wizard implements step navigation for the fiche technique: forward
// moves are gated by the current step's validation, backward moves are free,
// and jumps are limited to visited or completed steps.
package wizard

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/goliatone/go-fiche/pkg/validation"
)

// Gate validates a step and exposes its errors to the user.
type Gate interface {
	Trigger(step string) validation.Result
}

// GateFunc adapts a function to Gate.
type GateFunc func(step string) validation.Result

// Trigger implements Gate.
func (fn GateFunc) Trigger(step string) validation.Result {
	return fn(step)
}

// Status is the stepper view of a single step.
type Status struct {
	Completed bool `json:"completed"`
	Current   bool `json:"current"`
	Clickable bool `json:"clickable"`
}

// Option customises a Navigator.
type Option func(*Navigator)

// WithSteps overrides the step catalogue. Empty lists are ignored.
func WithSteps(steps []Step) Option {
	return func(n *Navigator) {
		if len(steps) > 0 {
			n.steps = append([]Step(nil), steps...)
		}
	}
}

// WithLogger sets the logger used for transition traces.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Navigator owns the wizard position and the completed set.
type Navigator struct {
	mu        sync.Mutex
	steps     []Step
	current   int
	completed map[int]struct{}
	gate      Gate
	logger    *slog.Logger
}

// New returns a navigator positioned on the first step.
func New(gate Gate, opts ...Option) *Navigator {
	n := &Navigator{
		steps:     DefaultSteps(),
		completed: make(map[int]struct{}),
		gate:      gate,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Next validates the current step and advances when it passes. The terminal
// step is never validated; it is only marked completed.
func (n *Navigator) Next() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nextLocked()
}

func (n *Navigator) nextLocked() bool {
	step := n.steps[n.current]
	last := n.current == len(n.steps)-1
	if !last && n.gate != nil {
		res := n.gate.Trigger(step.ID)
		if !res.Valid {
			n.logger.Debug("wizard: step blocked", "step", step.ID, "issues", len(res.Issues))
			return false
		}
	}
	n.completed[n.current] = struct{}{}
	if !last {
		n.current++
	}
	n.logger.Debug("wizard: next", "from", step.ID, "to", n.steps[n.current].ID)
	return true
}

// Previous moves back one step. The completed set is left as is.
func (n *Navigator) Previous() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == 0 {
		return false
	}
	n.current--
	n.logger.Debug("wizard: previous", "to", n.steps[n.current].ID)
	return true
}

// GoTo jumps to step k when it is behind the current one or already
// completed. The step right after the current one goes through Next.
// Anything else, including out of range indexes, is ignored.
func (n *Navigator) GoTo(k int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if k < 0 || k >= len(n.steps) || k == n.current {
		return false
	}
	if _, done := n.completed[k]; k < n.current || done {
		n.current = k
		n.logger.Debug("wizard: goto", "to", n.steps[k].ID)
		return true
	}
	if k == n.current+1 {
		return n.nextLocked()
	}
	n.logger.Debug("wizard: goto rejected", "to", n.steps[k].ID, "current", n.steps[n.current].ID)
	return false
}

// Current returns the index of the active step.
func (n *Navigator) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// CurrentStep returns the active step.
func (n *Navigator) CurrentStep() Step {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.steps[n.current]
}

// Steps returns a copy of the catalogue.
func (n *Navigator) Steps() []Step {
	return append([]Step(nil), n.steps...)
}

// Completed returns the completed indexes in ascending order.
func (n *Navigator) Completed() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int, 0, len(n.completed))
	for k := range n.completed {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// IsCompleted reports whether step k passed validation at least once.
func (n *Navigator) IsCompleted(k int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.completed[k]
	return ok
}

// IsFirst reports whether the first step is active.
func (n *Navigator) IsFirst() bool {
	return n.Current() == 0
}

// IsLast reports whether the terminal step is active.
func (n *Navigator) IsLast() bool {
	return n.Current() == len(n.steps)-1
}

// Progress is the share of data steps completed, as a rounded percentage.
func (n *Navigator) Progress() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := len(n.steps) - 1
	if total <= 0 {
		return 100
	}
	pct := int(math.Round(float64(len(n.completed)) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Status reports how step k should be drawn in a stepper.
func (n *Navigator) Status(k int) Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, done := n.completed[k]
	return Status{
		Completed: done,
		Current:   k == n.current,
		Clickable: k >= 0 && k < len(n.steps) && (k <= n.current || done),
	}
}
