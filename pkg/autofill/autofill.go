// Package autofill copies the canonical fields of a selected directory record
// into the form, and wipes them again when the user goes back to entering a
// new entity by hand.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
)

// Writer is the write capability into form state.
type Writer interface {
	SetValue(path string, value any) error
	SetValues(values map[string]any) error
}

type entity int

const (
	entityEtablissement entity = iota
	entityEncadreur
)

// Resolver is safe for concurrent use. Each entity carries a sequence number
// bumped by every selection or type change; a lookup that completes after a
// newer call is dropped.
type Resolver struct {
	dir    directory.Directory
	form   Writer
	logger *slog.Logger

	mu  sync.Mutex
	seq [2]uint64
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a resolver writing into form.
func New(dir directory.Directory, form Writer, opts ...Option) *Resolver {
	r := &Resolver{dir: dir, form: form, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// SelectEtablissement looks sigle up in the directory and writes it together
// with the descriptive slots. A miss or a failed lookup writes nothing.
func (r *Resolver) SelectEtablissement(ctx context.Context, sigle string) error {
	seq := r.bump(entityEtablissement)
	rec, err := r.dir.Etablissement(ctx, sigle)
	if err != nil {
		return r.lookupFailed("etablissement", sigle, err)
	}
	return r.commit(entityEtablissement, seq, "etablissement", sigle, map[string]any{
		fiche.PathEtablissementExistantID: sigle,
		fiche.PathEtablissementSigle:      rec.Sigle,
		fiche.PathEtablissementRaison:     rec.RaisonSociale,
		fiche.PathEtablissementEmail:      rec.Email,
		fiche.PathEtablissementAdresse:    rec.Adresse,
		fiche.PathEtablissementContact:    rec.Contact,
		fiche.PathEtablissementSiteWeb:    rec.SiteWeb,
	})
}

// SelectEncadreur is the encadreur counterpart of SelectEtablissement.
func (r *Resolver) SelectEncadreur(ctx context.Context, id string) error {
	seq := r.bump(entityEncadreur)
	rec, err := r.dir.Encadreur(ctx, id)
	if err != nil {
		return r.lookupFailed("encadreur", id, err)
	}
	return r.commit(entityEncadreur, seq, "encadreur", id, map[string]any{
		fiche.PathEncadreurExistantID: id,
		fiche.PathEncadreurNom:        rec.User.Nom,
		fiche.PathEncadreurPrenoms:    rec.User.Prenoms,
		fiche.PathEncadreurEmail:      rec.User.Email,
		fiche.PathEncadreurContact:    rec.User.Contact,
	})
}

// SetEtablissementType switches the établissement discriminant. Switching to
// nouveau clears the reference and every descriptive slot.
func (r *Resolver) SetEtablissementType(t fiche.EntityType) error {
	return r.setType(entityEtablissement, t, fiche.PathEtablissementType, fiche.PathEtablissementExistantID, fiche.EtablissementDescriptivePaths)
}

// SetEncadreurType is the encadreur counterpart of SetEtablissementType.
func (r *Resolver) SetEncadreurType(t fiche.EntityType) error {
	return r.setType(entityEncadreur, t, fiche.PathEncadreurType, fiche.PathEncadreurExistantID, fiche.EncadreurDescriptivePaths)
}

func (r *Resolver) setType(e entity, t fiche.EntityType, typePath, idPath string, descriptive []string) error {
	values := map[string]any{typePath: t}
	if t == fiche.EntityNouveau {
		values[idPath] = ""
		for _, path := range descriptive {
			values[path] = ""
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[e]++
	if err := r.form.SetValues(values); err != nil {
		return fmt.Errorf("autofill: %w", err)
	}
	return nil
}

// bump invalidates lookups in flight for e and returns the new sequence.
func (r *Resolver) bump(e entity) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[e]++
	return r.seq[e]
}

func (r *Resolver) commit(e entity, seq uint64, kind, id string, values map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq[e] != seq {
		r.logger.Debug("autofill: stale lookup dropped", "entity", kind, "id", id)
		return nil
	}
	if err := r.form.SetValues(values); err != nil {
		return fmt.Errorf("autofill: %w", err)
	}
	r.logger.Debug("autofill: filled", "entity", kind, "id", id)
	return nil
}

func (r *Resolver) lookupFailed(kind, id string, err error) error {
	if errors.Is(err, directory.ErrNotFound) {
		r.logger.Debug("autofill: no record", "entity", kind, "id", id)
		return nil
	}
	r.logger.Warn("autofill: lookup failed", "entity", kind, "id", id, "error", err)
	return fmt.Errorf("autofill: lookup %s %q: %w", kind, id, err)
}
