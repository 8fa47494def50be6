// Package submission turns a validated form into the backend payload, checks
// it against the published contract and hands it to the submission endpoint.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/form"
)

// ErrInvalidForm is returned when the whole-form validation fails; nothing
// is sent in that case.
var ErrInvalidForm = errors.New("submission: form is invalid")

// Submitter wires the payload mapping to an endpoint and a notifier.
type Submitter struct {
	endpoint      Endpoint
	notifier      Notifier
	contract      *Contract
	initialStatus string
	logger        *slog.Logger
}

// Option customises a Submitter.
type Option func(*Submitter)

// WithNotifier sets where success and failure notifications go.
func WithNotifier(n Notifier) Option {
	return func(s *Submitter) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithContract enables the payload contract check.
func WithContract(c *Contract) Option {
	return func(s *Submitter) {
		s.contract = c
	}
}

// WithInitialStatus overrides etat_formation_pratique.
func WithInitialStatus(status string) Option {
	return func(s *Submitter) {
		s.initialStatus = status
	}
}

// WithLogger sets the submitter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSubmitter returns a submitter posting to endpoint.
func NewSubmitter(endpoint Endpoint, opts ...Option) *Submitter {
	s := &Submitter{
		endpoint:      endpoint,
		initialStatus: DefaultInitialStatus,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}
	return s
}

// Submit validates f, builds and sends the payload. Form values are never
// modified; on failure the form stays editable and one error notification is
// emitted. Structured server errors are attached to the form's field errors.
func (s *Submitter) Submit(ctx context.Context, f *form.Form) (Payload, error) {
	res := f.ValidateAll()
	if !res.Valid {
		s.logger.Debug("submission: form invalid", "issues", len(res.Issues))
		return Payload{}, ErrInvalidForm
	}

	payload, err := Build(f.Snapshot(), s.initialStatus)
	if err != nil {
		return Payload{}, s.fail(err)
	}
	if s.contract != nil {
		if err := s.contract.Check(payload); err != nil {
			return payload, s.fail(err)
		}
	}

	if err := s.endpoint.Submit(ctx, payload); err != nil {
		if apiErr, ok := api.AsError(err); ok && len(apiErr.Fields) > 0 {
			mapping := MapErrors(apiErr.Fields)
			f.SetErrors(mapping.Fields, mapping.Form)
		}
		return payload, s.fail(err)
	}

	s.logger.Info("submission: fiche submitted", "stagiaires", payload.NombreStagiaire)
	s.notifier.Notify(Notification{Level: LevelSuccess, Message: MessageSuccess})
	return payload, nil
}

func (s *Submitter) fail(err error) error {
	s.logger.Warn("submission: failed", "error", err)
	s.notifier.Notify(Notification{Level: LevelError, Message: MessageFailure})
	return fmt.Errorf("submission: %w", err)
}
