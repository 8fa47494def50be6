package fiche

// EtablissementVariant is either ExistingEtablissement or NewEtablissement.
type EtablissementVariant interface {
	isEtablissementVariant()
}

// ExistingEtablissement references a directory record.
type ExistingEtablissement struct {
	ID string
}

// NewEtablissement carries a fully described organisation.
type NewEtablissement struct {
	Sigle          string
	RaisonSociale  string
	Email          string
	AdressePostale string
	Contact        string
	SiteWeb        string
}

func (ExistingEtablissement) isEtablissementVariant() {}
func (NewEtablissement) isEtablissementVariant()      {}

// Variant projects the form slice onto the branch selected by Type. It
// returns nil when the discriminant is unknown.
func (e Etablissement) Variant() EtablissementVariant {
	switch e.Type {
	case EntityExistant:
		return ExistingEtablissement{ID: e.ExistantID}
	case EntityNouveau:
		return NewEtablissement{
			Sigle:          e.Sigle,
			RaisonSociale:  e.RaisonSociale,
			Email:          e.Email,
			AdressePostale: e.AdressePostale,
			Contact:        e.Contact,
			SiteWeb:        e.SiteWeb,
		}
	default:
		return nil
	}
}

// EncadreurVariant is either ExistingEncadreur or NewEncadreur.
type EncadreurVariant interface {
	isEncadreurVariant()
}

// ExistingEncadreur references a directory record.
type ExistingEncadreur struct {
	ID string
}

// NewEncadreur carries the identity of a supervisor not yet in the directory.
type NewEncadreur struct {
	User Person
}

func (ExistingEncadreur) isEncadreurVariant() {}
func (NewEncadreur) isEncadreurVariant()      {}

// Variant projects the form slice onto the branch selected by Type.
func (e Encadreur) Variant() EncadreurVariant {
	switch e.Type {
	case EntityExistant:
		return ExistingEncadreur{ID: e.ExistantID}
	case EntityNouveau:
		return NewEncadreur{User: e.User}
	default:
		return nil
	}
}
