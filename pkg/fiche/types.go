package fiche

import "strings"

// EntityType discriminates between a newly entered entity and a reference to
// an existing directory record.
type EntityType string

const (
	EntityNouveau  EntityType = "nouveau"
	EntityExistant EntityType = "existant"
)

// Valid reports whether t is one of the known discriminants.
func (t EntityType) Valid() bool {
	return t == EntityNouveau || t == EntityExistant
}

// Step identifiers, in wizard order. They double as the first segment of every
// field path belonging to the step.
const (
	StepEtablissement   = "etablissement"
	StepEncadreur       = "encadreur"
	StepStagiaire       = "stagiaire"
	StepSujet           = "sujet"
	StepAspectTechnique = "aspectTechnique"
	StepRecapitulatif   = "recapitulatif"
)

// Option is a selectable value with its canonical identifier kept apart from
// the label shown to the user.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Etablissement is the host organisation slice of the form.
type Etablissement struct {
	Type           EntityType `json:"type"`
	ExistantID     string     `json:"etablissementExistantId"`
	Sigle          string     `json:"sigle"`
	RaisonSociale  string     `json:"raisonSociale"`
	Email          string     `json:"email"`
	AdressePostale string     `json:"adressePostale"`
	Contact        string     `json:"contact"`
	SiteWeb        string     `json:"siteWeb"`
}

// Person holds the identity fields of an encadreur.
type Person struct {
	Nom     string `json:"nom"`
	Prenoms string `json:"prenoms"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// FullName joins nom and prenoms the way labels display them.
func (p Person) FullName() string {
	return strings.TrimSpace(p.Nom + " " + p.Prenoms)
}

// Encadreur is the professional supervisor slice of the form.
type Encadreur struct {
	Type       EntityType `json:"type"`
	ExistantID string     `json:"encadreurExistantId"`
	User       Person     `json:"user"`
}

// Stagiaire is one selected participant. Code is the canonical enrollment code
// when the entry came from the directory; Label is what the user saw or typed.
type Stagiaire struct {
	Code  string `json:"code,omitempty"`
	Label string `json:"label"`
}

// Display returns the value shown to the user.
func (s Stagiaire) Display() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Code
}

// EnrollmentSeparator separates the code from the name in stagiaire labels.
const EnrollmentSeparator = " - "

// EnrollmentCode returns the canonical code. Entries typed by hand carry no
// code, so the leading token of the "CODE - Name" label is used instead.
func (s Stagiaire) EnrollmentCode() string {
	if code := strings.TrimSpace(s.Code); code != "" {
		return code
	}
	label := strings.TrimSpace(s.Label)
	if idx := strings.Index(label, EnrollmentSeparator); idx >= 0 {
		return strings.TrimSpace(label[:idx])
	}
	return label
}

// StagiairesFromLabels wraps plain display strings.
func StagiairesFromLabels(labels ...string) []Stagiaire {
	out := make([]Stagiaire, 0, len(labels))
	for _, label := range labels {
		out = append(out, Stagiaire{Label: label})
	}
	return out
}

// StagiaireGroup is the academic slice of the form.
type StagiaireGroup struct {
	Niveau     string      `json:"niveau"`
	Parcours   string      `json:"parcours"`
	Stagiaires []Stagiaire `json:"stagiaires"`
}

// Labels returns the display values in order.
func (g StagiaireGroup) Labels() []string {
	out := make([]string, 0, len(g.Stagiaires))
	for _, s := range g.Stagiaires {
		out = append(out, s.Display())
	}
	return out
}

// Sujet describes the proposed internship subject.
type Sujet struct {
	Theme       string `json:"theme"`
	Orientation string `json:"orientation"`
	Objectif    string `json:"objectif"`
	Descriptif  string `json:"descriptif"`
}

// AspectTechnique lists the planning and the resources.
type AspectTechnique struct {
	PlanningPrevisionnel string `json:"planningPrevisionnel"`
	MoyenLogiciel        string `json:"moyenLogiciel"`
	MoyenMateriel        string `json:"moyenMateriel"`
}

// Snapshot aggregates every slice of the form.
type Snapshot struct {
	Etablissement   Etablissement   `json:"etablissement"`
	Encadreur       Encadreur       `json:"encadreur"`
	Stagiaire       StagiaireGroup  `json:"stagiaire"`
	Sujet           Sujet           `json:"sujet"`
	AspectTechnique AspectTechnique `json:"aspectTechnique"`
}

// DefaultSnapshot returns the values a fresh form starts with: both entities
// as nouveau and every text empty.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Etablissement: Etablissement{Type: EntityNouveau},
		Encadreur:     Encadreur{Type: EntityNouveau},
		Stagiaire:     StagiaireGroup{Stagiaires: []Stagiaire{}},
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Stagiaire.Stagiaires != nil {
		out.Stagiaire.Stagiaires = append([]Stagiaire{}, s.Stagiaire.Stagiaires...)
	}
	return out
}
