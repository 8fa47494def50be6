package wizard

import "github.com/goliatone/go-fiche/pkg/fiche"

// Step describes one page of the wizard.
type Step struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// DefaultSteps returns the fiche technique steps in order. The last one is
// the read-only recap.
func DefaultSteps() []Step {
	return []Step{
		{ID: fiche.StepEtablissement, Title: "Établissement d'accueil", Subtitle: "Informations sur l'entreprise"},
		{ID: fiche.StepEncadreur, Title: "Encadreur professionnel", Subtitle: "Responsable du stage"},
		{ID: fiche.StepStagiaire, Title: "Stagiaire(s)", Subtitle: "Informations académiques"},
		{ID: fiche.StepSujet, Title: "Sujet proposé", Subtitle: "Objectifs et description"},
		{ID: fiche.StepAspectTechnique, Title: "Aspects techniques", Subtitle: "Planning et ressources"},
		{ID: fiche.StepRecapitulatif, Title: "Récapitulatif", Subtitle: "Vérification des données"},
	}
}
