package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/levels"
)

// Option configures a Set.
type Option func(*Set)

// WithParcours restricts stagiaire.parcours to the given codes.
func WithParcours(codes ...string) Option {
	return func(s *Set) {
		s.parcours = cleanCodes(codes)
	}
}

// WithSpecialites restricts sujet.orientation to the given codes.
func WithSpecialites(codes ...string) Option {
	return func(s *Set) {
		s.specialites = cleanCodes(codes)
	}
}

// Set holds one schema per wizard step. The whole-form schema is the
// conjunction of the step schemas.
type Set struct {
	parcours    []string
	specialites []string
	order       []string
	steps       map[string]Schema
}

// NewSet builds the fiche technique schemas.
func NewSet(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.order = []string{
		fiche.StepEtablissement,
		fiche.StepEncadreur,
		fiche.StepStagiaire,
		fiche.StepSujet,
		fiche.StepAspectTechnique,
	}
	s.steps = map[string]Schema{
		fiche.StepEtablissement:   EtablissementSchema(),
		fiche.StepEncadreur:       EncadreurSchema(),
		fiche.StepStagiaire:       StagiaireSchema(s.parcours),
		fiche.StepSujet:           SujetSchema(s.specialites),
		fiche.StepAspectTechnique: AspectTechniqueSchema(),
	}
	return s
}

// Step returns the schema for a step id. Steps without a schema (the recap)
// get one that always passes.
func (s *Set) Step(id string) Schema {
	if s != nil {
		if schema, ok := s.steps[id]; ok {
			return schema
		}
	}
	return SchemaFunc(func(fiche.Snapshot) Result { return Ok() })
}

// Whole returns the aggregate schema run before submission.
func (s *Set) Whole() Schema {
	schemas := make([]Schema, 0, len(s.order))
	for _, id := range s.order {
		schemas = append(schemas, s.steps[id])
	}
	return All(schemas...)
}

// ValidateStep runs the schema of one step.
func (s *Set) ValidateStep(id string, snap fiche.Snapshot) Result {
	return s.Step(id).Validate(snap)
}

// Validate runs the whole-form schema.
func (s *Set) Validate(snap fiche.Snapshot) Result {
	return s.Whole().Validate(snap)
}

// EtablissementSchema is a tagged union over etablissement.type.
func EtablissementSchema() Schema {
	return Union{
		Path:         fiche.PathEtablissementType,
		Discriminant: func(s fiche.Snapshot) fiche.EntityType { return s.Etablissement.Type },
		Message:      msgEntityType,
		Variants: map[fiche.EntityType]Schema{
			fiche.EntityExistant: Field{
				Path:   fiche.PathEtablissementExistantID,
				Value:  func(s fiche.Snapshot) string { return s.Etablissement.ExistantID },
				Checks: []Check{Required(msgEtablissementExistant)},
			},
			fiche.EntityNouveau: All(
				Field{
					Path:   fiche.PathEtablissementSigle,
					Value:  func(s fiche.Snapshot) string { return s.Etablissement.Sigle },
					Checks: []Check{MinLen(2, msgSigle)},
				},
				Field{
					Path:   fiche.PathEtablissementRaison,
					Value:  func(s fiche.Snapshot) string { return s.Etablissement.RaisonSociale },
					Checks: []Check{MinLen(3, msgRaisonSociale)},
				},
				Field{
					Path:   fiche.PathEtablissementEmail,
					Value:  func(s fiche.Snapshot) string { return s.Etablissement.Email },
					Checks: []Check{Email(msgEmail)},
				},
				Field{
					Path:   fiche.PathEtablissementAdresse,
					Value:  func(s fiche.Snapshot) string { return s.Etablissement.AdressePostale },
					Checks: []Check{MinLen(10, msgAdresse)},
				},
				Field{
					Path:   fiche.PathEtablissementContact,
					Value:  func(s fiche.Snapshot) string { return s.Etablissement.Contact },
					Checks: []Check{MinLen(10, msgContactEtablissement)},
				},
			),
		},
	}
}

// EncadreurSchema is a tagged union over encadreur.type.
func EncadreurSchema() Schema {
	return Union{
		Path:         fiche.PathEncadreurType,
		Discriminant: func(s fiche.Snapshot) fiche.EntityType { return s.Encadreur.Type },
		Message:      msgEntityType,
		Variants: map[fiche.EntityType]Schema{
			fiche.EntityExistant: Field{
				Path:   fiche.PathEncadreurExistantID,
				Value:  func(s fiche.Snapshot) string { return s.Encadreur.ExistantID },
				Checks: []Check{Required(msgEncadreurExistant)},
			},
			fiche.EntityNouveau: All(
				Field{
					Path:   fiche.PathEncadreurNom,
					Value:  func(s fiche.Snapshot) string { return s.Encadreur.User.Nom },
					Checks: []Check{MinLen(2, msgNom)},
				},
				Field{
					Path:   fiche.PathEncadreurPrenoms,
					Value:  func(s fiche.Snapshot) string { return s.Encadreur.User.Prenoms },
					Checks: []Check{MinLen(2, msgPrenoms)},
				},
				Field{
					Path:   fiche.PathEncadreurEmail,
					Value:  func(s fiche.Snapshot) string { return s.Encadreur.User.Email },
					Checks: []Check{Email(msgEmail)},
				},
				Field{
					Path:   fiche.PathEncadreurContact,
					Value:  func(s fiche.Snapshot) string { return s.Encadreur.User.Contact },
					Checks: []Check{MinLen(8, msgTelephone)},
				},
			),
		},
	}
}

// StagiaireSchema validates the academic slice, including the level-dependent
// count of stagiaires.
func StagiaireSchema(parcours []string) Schema {
	return All(
		Field{
			Path:  fiche.PathStagiaireNiveau,
			Value: func(s fiche.Snapshot) string { return s.Stagiaire.Niveau },
			Checks: []Check{
				Required(msgNiveau),
				{
					Rule:    RuleOneOf,
					Message: msgNiveauInconnu,
					Test:    levels.Known,
				},
			},
		},
		Field{
			Path:   fiche.PathStagiaireParcours,
			Value:  func(s fiche.Snapshot) string { return s.Stagiaire.Parcours },
			Checks: []Check{Required(msgParcours), OneOf(parcours, msgParcoursInconnu)},
		},
		SchemaFunc(validateStagiaires),
	)
}

func validateStagiaires(s fiche.Snapshot) Result {
	var issues []Issue
	for _, entry := range s.Stagiaire.Stagiaires {
		if !MinLen(3, "").Test(entry.Display()) {
			issues = append(issues, Issue{Field: fiche.PathStagiaires, Rule: RuleMinLength, Message: msgStagiaireNom})
			break
		}
	}
	if issue, ok := CountIssue(s.Stagiaire.Niveau, len(s.Stagiaire.Stagiaires)); !ok {
		issues = append(issues, issue)
	}
	return Fail(issues...)
}

// CountIssue checks n against the bounds of niveau and describes the failure.
func CountIssue(niveau string, n int) (Issue, bool) {
	bounds := levels.Resolve(niveau)
	if bounds.Allows(n) {
		return Issue{}, true
	}
	code := levels.Normalize(niveau)
	known := levels.Known(niveau)
	if n < bounds.Min {
		msg := fmt.Sprintf("Au moins %d stagiaire(s) requis", bounds.Min)
		if known {
			msg = fmt.Sprintf("Le niveau %s requiert au moins %d stagiaire(s)", code, bounds.Min)
		}
		return Issue{Field: fiche.PathStagiaires, Rule: RuleMinItems, Message: msg}, false
	}
	msg := fmt.Sprintf("Maximum %d stagiaires autorisés", bounds.Max)
	if known {
		msg = fmt.Sprintf("Le niveau %s autorise au maximum %d stagiaire(s)", code, bounds.Max)
	}
	return Issue{Field: fiche.PathStagiaires, Rule: RuleMaxItems, Message: msg}, false
}

// SujetSchema validates the proposed subject.
func SujetSchema(specialites []string) Schema {
	return All(
		Field{
			Path:   fiche.PathSujetTheme,
			Value:  func(s fiche.Snapshot) string { return s.Sujet.Theme },
			Checks: []Check{MinLen(5, msgTheme)},
		},
		Field{
			Path:   fiche.PathSujetOrientation,
			Value:  func(s fiche.Snapshot) string { return s.Sujet.Orientation },
			Checks: []Check{Required(msgOrientation), OneOf(specialites, msgOrientationInconnu)},
		},
		Field{
			Path:   fiche.PathSujetObjectif,
			Value:  func(s fiche.Snapshot) string { return s.Sujet.Objectif },
			Checks: []Check{MinLen(20, msgObjectif)},
		},
		Field{
			Path:   fiche.PathSujetDescriptif,
			Value:  func(s fiche.Snapshot) string { return s.Sujet.Descriptif },
			Checks: []Check{MinLen(50, msgDescriptif)},
		},
	)
}

// AspectTechniqueSchema validates planning and resources.
func AspectTechniqueSchema() Schema {
	return All(
		Field{
			Path:   fiche.PathAspectPlanning,
			Value:  func(s fiche.Snapshot) string { return s.AspectTechnique.PlanningPrevisionnel },
			Checks: []Check{MinLen(20, msgPlanning)},
		},
		Field{
			Path:   fiche.PathAspectLogiciel,
			Value:  func(s fiche.Snapshot) string { return s.AspectTechnique.MoyenLogiciel },
			Checks: []Check{MinLen(10, msgLogiciel)},
		},
		Field{
			Path:   fiche.PathAspectMateriel,
			Value:  func(s fiche.Snapshot) string { return s.AspectTechnique.MoyenMateriel },
			Checks: []Check{MinLen(10, msgMateriel)},
		},
	)
}

func cleanCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
