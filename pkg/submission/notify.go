package submission

import (
	"log/slog"
	"sync"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// User-facing messages.
const (
	MessageSuccess = "Demande de stage soumise avec succès !"
	MessageFailure = "Une erreur est survenue lors de la soumission de la demande. Veuillez réessayer."
)

// Notification is a user-visible message.
type Notification struct {
	Level   Level
	Message string
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (fn NotifierFunc) Notify(n Notification) {
	fn(n)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if n.Level == LevelError {
		logger.Error(n.Message)
		return
	}
	logger.Info(n.Message)
}

// Recorder keeps every notification; used by tests and the dev server.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Notifications returns a copy of what was recorded.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
