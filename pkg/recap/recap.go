// Package recap projects a fiche snapshot onto the read-only review shown
// before submission, and renders it for the terminal or as HTML.
package recap

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/levels"
)

// Field is one labelled value. Badges replaces Value for list fields.
type Field struct {
	Label     string   `json:"label"`
	Value     string   `json:"value,omitempty"`
	Badges    []string `json:"badges,omitempty"`
	Span      bool     `json:"span,omitempty"`
	Multiline bool     `json:"multiline,omitempty"`
}

// Section groups the fields of one wizard step.
type Section struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Builder resolves existing entities through an optional directory.
type Builder struct {
	dir    directory.Directory
	logger *slog.Logger
}

// Option customises a Builder.
type Option func(*Builder)

// WithDirectory enables lookups of existing entities.
func WithDirectory(dir directory.Directory) Option {
	return func(b *Builder) {
		b.dir = dir
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder returns a recap builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build returns the sections in wizard order. Existing entities are looked up
// concurrently; a miss or a failed lookup falls back to the autofilled slots.
func (b *Builder) Build(ctx context.Context, snap fiche.Snapshot) []Section {
	var (
		etab    *directory.EtablissementRecord
		enc     *directory.EncadreurRecord
		g, gctx = errgroup.WithContext(ctx)
	)
	if b.dir != nil && snap.Etablissement.Type == fiche.EntityExistant && snap.Etablissement.ExistantID != "" {
		g.Go(func() error {
			rec, err := b.dir.Etablissement(gctx, snap.Etablissement.ExistantID)
			if err != nil {
				b.logger.Debug("recap: etablissement lookup", "id", snap.Etablissement.ExistantID, "error", err)
				return nil
			}
			etab = &rec
			return nil
		})
	}
	if b.dir != nil && snap.Encadreur.Type == fiche.EntityExistant && snap.Encadreur.ExistantID != "" {
		g.Go(func() error {
			rec, err := b.dir.Encadreur(gctx, snap.Encadreur.ExistantID)
			if err != nil {
				b.logger.Debug("recap: encadreur lookup", "id", snap.Encadreur.ExistantID, "error", err)
				return nil
			}
			enc = &rec
			return nil
		})
	}
	// Lookup errors are logged and fall back to the form values, so the
	// group never fails.
	_ = g.Wait()

	return []Section{
		etablissementSection(snap.Etablissement, etab),
		encadreurSection(snap.Encadreur, enc),
		stagiaireSection(snap.Stagiaire),
		sujetSection(snap.Sujet),
		aspectSection(snap.AspectTechnique),
	}
}

func etablissementSection(e fiche.Etablissement, rec *directory.EtablissementRecord) Section {
	s := Section{ID: fiche.StepEtablissement, Title: "Établissement d'accueil"}
	if e.Type == fiche.EntityExistant {
		r := directory.EtablissementRecord{
			Sigle:         e.Sigle,
			RaisonSociale: e.RaisonSociale,
			Email:         e.Email,
			Contact:       e.Contact,
			Adresse:       e.AdressePostale,
			SiteWeb:       e.SiteWeb,
		}
		if rec != nil {
			r = *rec
		}
		if r.Sigle == "" {
			r.Sigle = e.ExistantID
		}
		s.Fields = []Field{
			{Label: "Sigle", Value: r.Sigle},
			{Label: "Raison sociale", Value: r.RaisonSociale},
			{Label: "Responsable", Value: r.Responsable},
			{Label: "Email", Value: r.Email},
			{Label: "Telephone", Value: r.Contact},
			{Label: "Adresse", Value: r.Adresse},
			{Label: "Site web", Value: r.SiteWeb, Span: true},
		}
		return s
	}
	s.Fields = []Field{
		{Label: "Sigle", Value: e.Sigle},
		{Label: "Raison sociale", Value: e.RaisonSociale},
		{Label: "Email", Value: e.Email},
		{Label: "Telephone", Value: e.Contact},
		{Label: "Adresse", Value: e.AdressePostale},
		{Label: "Site web", Value: e.SiteWeb, Span: true},
	}
	return s
}

func encadreurSection(e fiche.Encadreur, rec *directory.EncadreurRecord) Section {
	p := e.User
	if e.Type == fiche.EntityExistant && rec != nil {
		p = rec.User.Person()
	}
	return Section{
		ID:    fiche.StepEncadreur,
		Title: "Encadreur professionnel",
		Fields: []Field{
			{Label: "Nom", Value: p.Nom},
			{Label: "Prénom(s)", Value: p.Prenoms},
			{Label: "Email", Value: p.Email},
			{Label: "Téléphone", Value: p.Contact},
		},
	}
}

func levelLabel(code string) string {
	norm := levels.Normalize(code)
	for _, l := range levels.Levels() {
		if l.Code == norm {
			return l.Label
		}
	}
	return code
}

func stagiaireSection(g fiche.StagiaireGroup) Section {
	return Section{
		ID:    fiche.StepStagiaire,
		Title: "Stagiaire(s)",
		Fields: []Field{
			{Label: "Niveau d'étude", Value: levelLabel(g.Niveau)},
			{Label: "Parcours", Value: g.Parcours},
			{Label: "Liste de(s) stagiaire(s)", Badges: g.Labels(), Span: true},
		},
	}
}

func sujetSection(s fiche.Sujet) Section {
	return Section{
		ID:    fiche.StepSujet,
		Title: "Sujet proposé",
		Fields: []Field{
			{Label: "Thème", Value: s.Theme, Span: true},
			{Label: "Orientation", Value: s.Orientation},
			{Label: "Objectifs", Value: s.Objectif, Span: true, Multiline: true},
			{Label: "Descriptif", Value: s.Descriptif, Span: true, Multiline: true},
		},
	}
}

func aspectSection(a fiche.AspectTechnique) Section {
	return Section{
		ID:    fiche.StepAspectTechnique,
		Title: "Aspects techniques",
		Fields: []Field{
			{Label: "Planning prévisionnel", Value: a.PlanningPrevisionnel, Span: true, Multiline: true},
			{Label: "Moyens logiciels", Value: a.MoyenLogiciel, Span: true, Multiline: true},
			{Label: "Moyens matériels", Value: a.MoyenMateriel, Span: true, Multiline: true},
		},
	}
}
