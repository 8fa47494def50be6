package validation

// Messages surfaced next to fields. They mirror the wording users already
// know from the web form.
const (
	msgEntityType = "Veuillez choisir entre un nouvel enregistrement ou un existant"

	msgEtablissementExistant = "Veuillez sélectionner un établissement existant"
	msgSigle                 = "Le sigle doit contenir au moins 2 caractères"
	msgRaisonSociale         = "La raison sociale doit contenir au moins 3 caractères"
	msgEmail                 = "Veuillez saisir une adresse email valide"
	msgAdresse               = "L'adresse doit être complète (minimum 10 caractères)"
	msgContactEtablissement  = "Le contact doit contenir au moins 10 caractères"

	msgEncadreurExistant = "Veuillez sélectionner un encadreur existant"
	msgNom               = "Le nom doit contenir au moins 2 caractères"
	msgPrenoms           = "Les prénoms doivent contenir au moins 2 caractères"
	msgTelephone         = "Le numéro de téléphone doit contenir au moins 8 chiffres"

	msgNiveau          = "Veuillez sélectionner un niveau d'étude"
	msgNiveauInconnu   = "Niveau d'étude inconnu"
	msgParcours        = "Veuillez sélectionner un parcours"
	msgParcoursInconnu = "Parcours inconnu"
	msgStagiaireNom    = "Chaque nom doit contenir au moins 3 caractères"

	msgTheme              = "Le thème doit contenir au moins 5 caractères"
	msgOrientation        = "Veuillez sélectionner une orientation"
	msgOrientationInconnu = "Orientation inconnue"
	msgObjectif           = "L'objectif doit être détaillé (minimum 20 caractères)"
	msgDescriptif         = "Le descriptif doit être détaillé (minimum 50 caractères)"

	msgPlanning = "Le planning doit être détaillé (minimum 20 caractères)"
	msgLogiciel = "Veuillez détailler les moyens logiciels"
	msgMateriel = "Veuillez détailler les moyens matériels"
)
