package fiche

import "strings"

// Field paths shared by the form handle, validation issues, prompts and the
// server error mapping.
const (
	PathEtablissementType       = "etablissement.type"
	PathEtablissementExistantID = "etablissement.etablissementExistantId"
	PathEtablissementSigle      = "etablissement.sigle"
	PathEtablissementRaison     = "etablissement.raisonSociale"
	PathEtablissementEmail      = "etablissement.email"
	PathEtablissementAdresse    = "etablissement.adressePostale"
	PathEtablissementContact    = "etablissement.contact"
	PathEtablissementSiteWeb    = "etablissement.siteWeb"

	PathEncadreurType       = "encadreur.type"
	PathEncadreurExistantID = "encadreur.encadreurExistantId"
	PathEncadreurNom        = "encadreur.user.nom"
	PathEncadreurPrenoms    = "encadreur.user.prenoms"
	PathEncadreurEmail      = "encadreur.user.email"
	PathEncadreurContact    = "encadreur.user.contact"

	PathStagiaireNiveau   = "stagiaire.niveau"
	PathStagiaireParcours = "stagiaire.parcours"
	PathStagiaires        = "stagiaire.stagiaires"

	PathSujetTheme       = "sujet.theme"
	PathSujetOrientation = "sujet.orientation"
	PathSujetObjectif    = "sujet.objectif"
	PathSujetDescriptif  = "sujet.descriptif"

	PathAspectPlanning = "aspectTechnique.planningPrevisionnel"
	PathAspectLogiciel = "aspectTechnique.moyenLogiciel"
	PathAspectMateriel = "aspectTechnique.moyenMateriel"
)

// EtablissementDescriptivePaths lists the slots written by autofill and
// cleared when switching back to nouveau.
var EtablissementDescriptivePaths = []string{
	PathEtablissementSigle,
	PathEtablissementRaison,
	PathEtablissementEmail,
	PathEtablissementAdresse,
	PathEtablissementContact,
	PathEtablissementSiteWeb,
}

// EncadreurDescriptivePaths is the encadreur counterpart of
// EtablissementDescriptivePaths.
var EncadreurDescriptivePaths = []string{
	PathEncadreurNom,
	PathEncadreurPrenoms,
	PathEncadreurEmail,
	PathEncadreurContact,
}

// StepOf returns the step identifier owning path.
func StepOf(path string) string {
	if idx := strings.IndexByte(path, '.'); idx >= 0 {
		return path[:idx]
	}
	return path
}
