package submission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

// DefaultInitialStatus is the workflow status of a freshly filed fiche.
const DefaultInitialStatus = "EN_ATTENTE"

// ErrUnknownVariant is returned when an entity discriminant is neither
// nouveau nor existant.
var ErrUnknownVariant = errors.New("submission: unknown entity type")

// Payload is the body of POST /v1/formation/pratiques. Exactly one of each
// reference/new pair is set.
type Payload struct {
	Theme                string `json:"theme"`
	Specialite           string `json:"specialite"`
	Objectif             string `json:"objectif"`
	Descriptif           string `json:"descriptif"`
	PlanningPrevisionnel string `json:"planning_previsionnel"`
	MoyenLogiciel        string `json:"moyen_logiciel"`
	MoyenMateriel        string `json:"moyen_materiel"`

	Niveau          string   `json:"niveau"`
	Parcours        string   `json:"parcours"`
	NombreStagiaire int      `json:"nombre_stagiaire"`
	Inscriptions    []string `json:"inscriptions"`

	EtablissementAccueilID   string                  `json:"etablissement_accueil_id,omitempty"`
	EtablissementAccueil     *EtablissementAccueil   `json:"etablissement_accueil,omitempty"`
	EncadreurProfessionnelID string                  `json:"encadreur_professionnel_id,omitempty"`
	EncadreurProfessionnel   *EncadreurProfessionnel `json:"encadreur_professionnel,omitempty"`

	EtatFormationPratique  string `json:"etat_formation_pratique"`
	AutorisationSoutenance bool   `json:"autorisation_soutenance"`
	RapportDepose          bool   `json:"rapport_depose"`
}

// EtablissementAccueil is a host organisation created with the fiche.
type EtablissementAccueil struct {
	Sigle         string `json:"sigle_ea"`
	RaisonSociale string `json:"raison_sociale"`
	Email         string `json:"email_ea"`
	Adresse       string `json:"adresse_ea"`
	Contact       string `json:"contact_ea"`
	SiteWeb       string `json:"site_web_ea,omitempty"`
}

// User is the identity block of a new supervisor.
type User struct {
	Nom     string `json:"nom"`
	Prenoms string `json:"prenoms"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// EncadreurProfessionnel is a supervisor created with the fiche.
type EncadreurProfessionnel struct {
	User User `json:"user"`
}

// Build maps a snapshot onto the backend payload. initialStatus defaults to
// DefaultInitialStatus when empty.
func Build(snap fiche.Snapshot, initialStatus string) (Payload, error) {
	status := strings.TrimSpace(initialStatus)
	if status == "" {
		status = DefaultInitialStatus
	}

	codes := make([]string, 0, len(snap.Stagiaire.Stagiaires))
	for _, s := range snap.Stagiaire.Stagiaires {
		codes = append(codes, s.EnrollmentCode())
	}

	p := Payload{
		Theme:                snap.Sujet.Theme,
		Specialite:           snap.Sujet.Orientation,
		Objectif:             snap.Sujet.Objectif,
		Descriptif:           snap.Sujet.Descriptif,
		PlanningPrevisionnel: snap.AspectTechnique.PlanningPrevisionnel,
		MoyenLogiciel:        snap.AspectTechnique.MoyenLogiciel,
		MoyenMateriel:        snap.AspectTechnique.MoyenMateriel,

		Niveau:          snap.Stagiaire.Niveau,
		Parcours:        snap.Stagiaire.Parcours,
		NombreStagiaire: len(snap.Stagiaire.Stagiaires),
		Inscriptions:    codes,

		EtatFormationPratique:  status,
		AutorisationSoutenance: false,
		RapportDepose:          false,
	}

	switch v := snap.Etablissement.Variant().(type) {
	case fiche.ExistingEtablissement:
		p.EtablissementAccueilID = v.ID
	case fiche.NewEtablissement:
		p.EtablissementAccueil = &EtablissementAccueil{
			Sigle:         v.Sigle,
			RaisonSociale: v.RaisonSociale,
			Email:         v.Email,
			Adresse:       v.AdressePostale,
			Contact:       v.Contact,
			SiteWeb:       v.SiteWeb,
		}
	default:
		return Payload{}, fmt.Errorf("%w: etablissement %q", ErrUnknownVariant, snap.Etablissement.Type)
	}

	switch v := snap.Encadreur.Variant().(type) {
	case fiche.ExistingEncadreur:
		p.EncadreurProfessionnelID = v.ID
	case fiche.NewEncadreur:
		p.EncadreurProfessionnel = &EncadreurProfessionnel{User: User{
			Nom:     v.User.Nom,
			Prenoms: v.User.Prenoms,
			Email:   v.User.Email,
			Contact: v.User.Contact,
		}}
	default:
		return Payload{}, fmt.Errorf("%w: encadreur %q", ErrUnknownVariant, snap.Encadreur.Type)
	}

	return p, nil
}
