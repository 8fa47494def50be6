package directory

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

func labelled(code, description string) string {
	if description == "" || description == code {
		return code
	}
	return code + fiche.EnrollmentSeparator + description
}

// EtablissementOptions keys each option by sigle.
func EtablissementOptions(records []EtablissementRecord) []fiche.Option {
	out := make([]fiche.Option, 0, len(records))
	for _, r := range records {
		out = append(out, fiche.Option{ID: r.Sigle, Label: labelled(r.Sigle, r.RaisonSociale)})
	}
	return out
}

// EncadreurOptions keys each option by supervisor id.
func EncadreurOptions(records []EncadreurRecord) []fiche.Option {
	out := make([]fiche.Option, 0, len(records))
	for _, r := range records {
		label := r.User.FullName()
		if r.Etablissement != "" {
			label += " (" + r.Etablissement + ")"
		}
		out = append(out, fiche.Option{ID: r.ID, Label: label})
	}
	return out
}

func SpecialiteOptions(records []Specialite) []fiche.Option {
	out := make([]fiche.Option, 0, len(records))
	for _, r := range records {
		out = append(out, fiche.Option{ID: r.Code, Label: labelled(r.Code, r.Description)})
	}
	return out
}

func ParcoursOptions(records []Parcours) []fiche.Option {
	out := make([]fiche.Option, 0, len(records))
	for _, r := range records {
		out = append(out, fiche.Option{ID: r.Code, Label: labelled(r.Code, r.Description)})
	}
	return out
}

// InscriptionOptions keys each option by enrollment code and labels it
// "MATRICULE - NOM Prenoms".
func InscriptionOptions(records []Inscription) []fiche.Option {
	out := make([]fiche.Option, 0, len(records))
	for _, r := range records {
		out = append(out, fiche.Option{ID: r.Code, Label: r.Label()})
	}
	return out
}

// IDs extracts option identifiers.
func IDs(opts []fiche.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

// Catalog holds the enumerations the form validates against.
type Catalog struct {
	Specialites []fiche.Option
	Parcours    []fiche.Option
}

// LoadCatalog fetches specialites and parcours concurrently. A failed fetch
// is logged and leaves its list empty.
func LoadCatalog(ctx context.Context, dir Directory, limit int, logger *slog.Logger) Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		cat Catalog
		g   errgroup.Group
	)
	g.Go(func() error {
		page, err := dir.Specialites(ctx, Query{Limit: limit})
		if err != nil {
			logger.Warn("directory: specialites unavailable", "error", err)
			return nil
		}
		cat.Specialites = SpecialiteOptions(page.Data)
		return nil
	})
	g.Go(func() error {
		page, err := dir.Parcours(ctx, Query{Limit: limit})
		if err != nil {
			logger.Warn("directory: parcours unavailable", "error", err)
			return nil
		}
		cat.Parcours = ParcoursOptions(page.Data)
		return nil
	})
	_ = g.Wait()
	return cat
}
