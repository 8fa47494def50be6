package directory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-fiche/pkg/api"
)

// Backend routes.
const (
	RouteEtablissements = "/v1/etablissement-accueils"
	RouteEncadreurs     = "/v1/encadreur/professionnel"
	RouteSpecialites    = "/v1/specialites"
	RouteParcours       = "/v1/parcours"
	RouteInscriptions   = "/v1/inscriptions"
)

// Query parameter names understood by the backend.
const (
	ParamLimit                 = "limit"
	ParamPage                  = "page"
	ParamSigle                 = "sigle_ea"
	ParamID                    = "id"
	ParamNiveau                = "niveau"
	ParamParcours              = "parcours"
	ParamAnneeUniv             = "annee_univ"
	ParamEtudiant              = "etudiant"
	ParamEtatFormationPratique = "etat_formation_pratique"
)

// Getter is the slice of api.Client used here.
type Getter interface {
	GetJSON(ctx context.Context, path string, params url.Values, out any) error
}

// HTTP reads the directory from the backend.
type HTTP struct {
	client Getter
}

var (
	_ Directory = (*HTTP)(nil)
	_ Getter    = (*api.Client)(nil)
)

// NewHTTP wraps an API client.
func NewHTTP(client Getter) *HTTP {
	return &HTTP{client: client}
}

func pageParams(q Query) url.Values {
	q = q.normalized()
	params := url.Values{}
	params.Set(ParamLimit, strconv.Itoa(q.Limit))
	params.Set(ParamPage, strconv.Itoa(q.Page))
	return params
}

func fetch[T any](ctx context.Context, c Getter, route string, params url.Values) (Page[T], error) {
	var page Page[T]
	if err := c.GetJSON(ctx, route, params, &page); err != nil {
		return Page[T]{}, fmt.Errorf("directory: list %s: %w", route, err)
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Etablissements forwards Search as the sigle filter.
func (h *HTTP) Etablissements(ctx context.Context, q Query) (Page[EtablissementRecord], error) {
	params := pageParams(q)
	if q.Search != "" {
		params.Set(ParamSigle, q.Search)
	}
	return fetch[EtablissementRecord](ctx, h.client, RouteEtablissements, params)
}

func (h *HTTP) Etablissement(ctx context.Context, sigle string) (EtablissementRecord, error) {
	params := pageParams(Query{Limit: 10})
	params.Set(ParamSigle, sigle)
	page, err := fetch[EtablissementRecord](ctx, h.client, RouteEtablissements, params)
	if err != nil {
		return EtablissementRecord{}, err
	}
	for _, r := range page.Data {
		if Equal(r.Sigle, sigle) {
			return r, nil
		}
	}
	return EtablissementRecord{}, fmt.Errorf("%w: etablissement %q", ErrNotFound, sigle)
}

// Encadreurs has no server-side search; Search filters the fetched page.
func (h *HTTP) Encadreurs(ctx context.Context, q Query) (Page[EncadreurRecord], error) {
	page, err := fetch[EncadreurRecord](ctx, h.client, RouteEncadreurs, pageParams(q))
	if err != nil {
		return page, err
	}
	if q.Search != "" {
		page.Data = Filter(page.Data, q.Search, encadreurFields)
	}
	return page, nil
}

func (h *HTTP) Encadreur(ctx context.Context, id string) (EncadreurRecord, error) {
	params := pageParams(Query{Limit: 10})
	params.Set(ParamID, id)
	page, err := fetch[EncadreurRecord](ctx, h.client, RouteEncadreurs, params)
	if err != nil {
		return EncadreurRecord{}, err
	}
	for _, r := range page.Data {
		if r.ID == id {
			return r, nil
		}
	}
	return EncadreurRecord{}, fmt.Errorf("%w: encadreur %q", ErrNotFound, id)
}

func (h *HTTP) Specialites(ctx context.Context, q Query) (Page[Specialite], error) {
	page, err := fetch[Specialite](ctx, h.client, RouteSpecialites, pageParams(q))
	if err == nil && q.Search != "" {
		page.Data = Filter(page.Data, q.Search, specialiteFields)
	}
	return page, err
}

func (h *HTTP) Parcours(ctx context.Context, q Query) (Page[Parcours], error) {
	page, err := fetch[Parcours](ctx, h.client, RouteParcours, pageParams(q))
	if err == nil && q.Search != "" {
		page.Data = Filter(page.Data, q.Search, parcoursFields)
	}
	return page, err
}

func (h *HTTP) Inscriptions(ctx context.Context, q InscriptionQuery) (Page[Inscription], error) {
	params := pageParams(q.Query)
	for key, value := range map[string]string{
		ParamNiveau:                q.Niveau,
		ParamParcours:              q.Parcours,
		ParamAnneeUniv:             q.AnneeUniv,
		ParamEtudiant:              q.Etudiant,
		ParamEtatFormationPratique: q.EtatFormationPratique,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}
	page, err := fetch[Inscription](ctx, h.client, RouteInscriptions, params)
	if err == nil && q.Search != "" {
		page.Data = Filter(page.Data, q.Search, inscriptionFields)
	}
	return page, err
}
