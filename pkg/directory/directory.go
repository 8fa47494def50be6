// Package directory looks up the reference data the fiche technique points
// to: host organisations, professional supervisors, specialities, tracks and
// student enrollments. Two sources implement Directory: a static set embedded
// in the binary and the backend HTTP API.
package directory

import (
	"context"
	"errors"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("directory: not found")

// Directory is the lookup contract shared by every source. List calls are
// paginated; a failed call returns an error and no partial page.
type Directory interface {
	Etablissements(ctx context.Context, q Query) (Page[EtablissementRecord], error)
	// Etablissement resolves a record by its sigle.
	Etablissement(ctx context.Context, sigle string) (EtablissementRecord, error)
	Encadreurs(ctx context.Context, q Query) (Page[EncadreurRecord], error)
	Encadreur(ctx context.Context, id string) (EncadreurRecord, error)
	Specialites(ctx context.Context, q Query) (Page[Specialite], error)
	Parcours(ctx context.Context, q Query) (Page[Parcours], error)
	Inscriptions(ctx context.Context, q InscriptionQuery) (Page[Inscription], error)
}

// DefaultLimit applies when a query leaves Limit unset.
const DefaultLimit = 50

// Query selects one page of a list, optionally narrowed by free text.
type Query struct {
	Limit  int
	Page   int
	Search string
}

func (q Query) normalized() Query {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return q
}

// InscriptionQuery narrows the enrollment list. Empty fields do not filter.
type InscriptionQuery struct {
	Query
	Niveau                string
	Parcours              string
	AnneeUniv             string
	Etudiant              string
	EtatFormationPratique string
}

// Meta describes the page returned.
type Meta struct {
	Total int `json:"total" yaml:"total"`
	Page  int `json:"page" yaml:"page"`
	Limit int `json:"limit" yaml:"limit"`
}

// Page is the list envelope used by the backend.
type Page[T any] struct {
	Data []T  `json:"data" yaml:"data"`
	Meta Meta `json:"meta" yaml:"meta"`
}

// Paginate slices items according to q.
func Paginate[T any](items []T, q Query) Page[T] {
	q = q.normalized()
	page := Page[T]{Data: []T{}, Meta: Meta{Total: len(items), Page: q.Page, Limit: q.Limit}}
	start := (q.Page - 1) * q.Limit
	if start >= len(items) {
		return page
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	page.Data = append(page.Data, items[start:end]...)
	return page
}
