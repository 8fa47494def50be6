package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

type accessor struct {
	get func(s *fiche.Snapshot) any
	set func(s *fiche.Snapshot, value any) error
}

func stringField(ref func(s *fiche.Snapshot) *string) accessor {
	return accessor{
		get: func(s *fiche.Snapshot) any { return *ref(s) },
		set: func(s *fiche.Snapshot, value any) error {
			str, err := coerceString(value)
			if err != nil {
				return err
			}
			*ref(s) = str
			return nil
		},
	}
}

func typeField(ref func(s *fiche.Snapshot) *fiche.EntityType) accessor {
	return accessor{
		get: func(s *fiche.Snapshot) any { return *ref(s) },
		set: func(s *fiche.Snapshot, value any) error {
			str, err := coerceString(value)
			if err != nil {
				return err
			}
			*ref(s) = fiche.EntityType(strings.TrimSpace(str))
			return nil
		},
	}
}

var accessors = map[string]accessor{
	fiche.PathEtablissementType:       typeField(func(s *fiche.Snapshot) *fiche.EntityType { return &s.Etablissement.Type }),
	fiche.PathEtablissementExistantID: stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.ExistantID }),
	fiche.PathEtablissementSigle:      stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.Sigle }),
	fiche.PathEtablissementRaison:     stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.RaisonSociale }),
	fiche.PathEtablissementEmail:      stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.Email }),
	fiche.PathEtablissementAdresse:    stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.AdressePostale }),
	fiche.PathEtablissementContact:    stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.Contact }),
	fiche.PathEtablissementSiteWeb:    stringField(func(s *fiche.Snapshot) *string { return &s.Etablissement.SiteWeb }),

	fiche.PathEncadreurType:       typeField(func(s *fiche.Snapshot) *fiche.EntityType { return &s.Encadreur.Type }),
	fiche.PathEncadreurExistantID: stringField(func(s *fiche.Snapshot) *string { return &s.Encadreur.ExistantID }),
	fiche.PathEncadreurNom:        stringField(func(s *fiche.Snapshot) *string { return &s.Encadreur.User.Nom }),
	fiche.PathEncadreurPrenoms:    stringField(func(s *fiche.Snapshot) *string { return &s.Encadreur.User.Prenoms }),
	fiche.PathEncadreurEmail:      stringField(func(s *fiche.Snapshot) *string { return &s.Encadreur.User.Email }),
	fiche.PathEncadreurContact:    stringField(func(s *fiche.Snapshot) *string { return &s.Encadreur.User.Contact }),

	fiche.PathStagiaireNiveau:   stringField(func(s *fiche.Snapshot) *string { return &s.Stagiaire.Niveau }),
	fiche.PathStagiaireParcours: stringField(func(s *fiche.Snapshot) *string { return &s.Stagiaire.Parcours }),
	fiche.PathStagiaires: {
		get: func(s *fiche.Snapshot) any {
			return append([]fiche.Stagiaire{}, s.Stagiaire.Stagiaires...)
		},
		set: func(s *fiche.Snapshot, value any) error {
			list, err := coerceStagiaires(value)
			if err != nil {
				return err
			}
			s.Stagiaire.Stagiaires = list
			return nil
		},
	},

	fiche.PathSujetTheme:       stringField(func(s *fiche.Snapshot) *string { return &s.Sujet.Theme }),
	fiche.PathSujetOrientation: stringField(func(s *fiche.Snapshot) *string { return &s.Sujet.Orientation }),
	fiche.PathSujetObjectif:    stringField(func(s *fiche.Snapshot) *string { return &s.Sujet.Objectif }),
	fiche.PathSujetDescriptif:  stringField(func(s *fiche.Snapshot) *string { return &s.Sujet.Descriptif }),

	fiche.PathAspectPlanning: stringField(func(s *fiche.Snapshot) *string { return &s.AspectTechnique.PlanningPrevisionnel }),
	fiche.PathAspectLogiciel: stringField(func(s *fiche.Snapshot) *string { return &s.AspectTechnique.MoyenLogiciel }),
	fiche.PathAspectMateriel: stringField(func(s *fiche.Snapshot) *string { return &s.AspectTechnique.MoyenMateriel }),
}

// Paths lists every addressable field path, sorted.
func Paths() []string {
	out := make([]string, 0, len(accessors))
	for path := range accessors {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// StepPaths lists the field paths owned by a step, sorted.
func StepPaths(step string) []string {
	var out []string
	for _, path := range Paths() {
		if fiche.StepOf(path) == step {
			out = append(out, path)
		}
	}
	return out
}

func coerceString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fiche.EntityType:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, value)
	}
}

func coerceStagiaires(value any) ([]fiche.Stagiaire, error) {
	switch v := value.(type) {
	case nil:
		return []fiche.Stagiaire{}, nil
	case []fiche.Stagiaire:
		return append([]fiche.Stagiaire{}, v...), nil
	case []fiche.Option:
		out := make([]fiche.Stagiaire, 0, len(v))
		for _, opt := range v {
			out = append(out, fiche.Stagiaire{Code: opt.ID, Label: opt.Label})
		}
		return out, nil
	case []string:
		return fiche.StagiairesFromLabels(v...), nil
	case []any:
		out := make([]fiche.Stagiaire, 0, len(v))
		for _, item := range v {
			str, err := coerceString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, fiche.Stagiaire{Label: str})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected stagiaire list, got %T", ErrInvalidValue, value)
	}
}
