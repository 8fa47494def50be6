package directory

import (
	"strings"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

// User is the identity block nested in supervisor and student records.
type User struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Email   string `json:"email" yaml:"email"`
	Nom     string `json:"nom" yaml:"nom"`
	Prenoms string `json:"prenoms" yaml:"prenoms"`
	Contact string `json:"contact" yaml:"contact"`
}

// FullName returns "NOM Prenoms".
func (u User) FullName() string {
	return strings.TrimSpace(u.Nom + " " + u.Prenoms)
}

// Person converts the user into the form's identity block.
func (u User) Person() fiche.Person {
	return fiche.Person{Nom: u.Nom, Prenoms: u.Prenoms, Email: u.Email, Contact: u.Contact}
}

// EtablissementRecord is a host organisation as served by the backend.
type EtablissementRecord struct {
	Sigle         string `json:"sigle_ea" yaml:"sigle_ea"`
	RaisonSociale string `json:"raison_sociale" yaml:"raison_sociale"`
	Responsable   string `json:"responsable_ea" yaml:"responsable_ea"`
	Email         string `json:"email_ea" yaml:"email_ea"`
	Contact       string `json:"contact_ea" yaml:"contact_ea"`
	Adresse       string `json:"adresse_ea" yaml:"adresse_ea"`
	SiteWeb       string `json:"site_web_ea" yaml:"site_web_ea"`
}

// EncadreurRecord is a professional supervisor.
type EncadreurRecord struct {
	ID            string `json:"id" yaml:"id"`
	User          User   `json:"user" yaml:"user"`
	Etablissement string `json:"etablissement,omitempty" yaml:"etablissement,omitempty"`
}

// Specialite is an orientation a sujet can be filed under.
type Specialite struct {
	Code        string `json:"code_specialite" yaml:"code_specialite"`
	Description string `json:"description_specialite" yaml:"description_specialite"`
}

// Parcours is an academic track.
type Parcours struct {
	Code        string `json:"code_parcours" yaml:"code_parcours"`
	Description string `json:"description_parcours" yaml:"description_parcours"`
}

// Niveau is an academic level.
type Niveau struct {
	Code        string `json:"code_niveau" yaml:"code_niveau"`
	Description string `json:"description_niveau,omitempty" yaml:"description_niveau,omitempty"`
}

// Etudiant is the student behind an enrollment.
type Etudiant struct {
	Matricule string `json:"matricule" yaml:"matricule"`
	User      User   `json:"user" yaml:"user"`
}

// Inscription is a student's enrollment for one academic year.
type Inscription struct {
	Code                  string   `json:"code_inscription" yaml:"code_inscription"`
	Etudiant              Etudiant `json:"etudiant" yaml:"etudiant"`
	Niveau                Niveau   `json:"niveau" yaml:"niveau"`
	Parcours              Parcours `json:"parcours" yaml:"parcours"`
	AnneeUniv             string   `json:"annee_univ,omitempty" yaml:"annee_univ,omitempty"`
	EtatFormationPratique string   `json:"etat_formation_pratique,omitempty" yaml:"etat_formation_pratique,omitempty"`
}

// Label renders "MATRICULE - NOM Prenoms".
func (i Inscription) Label() string {
	return i.Etudiant.Matricule + fiche.EnrollmentSeparator + i.Etudiant.User.FullName()
}
