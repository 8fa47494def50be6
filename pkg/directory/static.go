package directory

import (
	"context"
	"embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/directory.yaml
var dataFS embed.FS

const defaultDataPath = "data/directory.yaml"

// Dataset is the content served by a Static directory.
type Dataset struct {
	Etablissements []EtablissementRecord `yaml:"etablissements"`
	Encadreurs     []EncadreurRecord     `yaml:"encadreurs"`
	Specialites    []Specialite          `yaml:"specialites"`
	Parcours       []Parcours            `yaml:"parcours"`
	Inscriptions   []Inscription         `yaml:"inscriptions"`
}

var (
	defaultOnce    sync.Once
	defaultDataset Dataset
	defaultErr     error
)

// DefaultDataset returns the embedded reference data.
func DefaultDataset() (Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultDataset, defaultErr = LoadDataset(f)
	})
	if defaultErr != nil {
		return Dataset{}, defaultErr
	}
	return defaultDataset, nil
}

// LoadDataset decodes a YAML dataset.
func LoadDataset(r io.Reader) (Dataset, error) {
	if r == nil {
		return Dataset{}, fmt.Errorf("directory: missing reader")
	}
	var ds Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("directory: decode dataset: %w", err)
	}
	return ds, nil
}

// Static serves a fixed dataset from memory.
type Static struct {
	data Dataset
}

var _ Directory = (*Static)(nil)

// NewStatic wraps ds.
func NewStatic(ds Dataset) *Static {
	return &Static{data: ds}
}

// DefaultStatic serves the embedded dataset.
func DefaultStatic() (*Static, error) {
	ds, err := DefaultDataset()
	if err != nil {
		return nil, err
	}
	return NewStatic(ds), nil
}

// Dataset returns the served data.
func (s *Static) Dataset() Dataset {
	return s.data
}

func (s *Static) Etablissements(ctx context.Context, q Query) (Page[EtablissementRecord], error) {
	if err := ctx.Err(); err != nil {
		return Page[EtablissementRecord]{}, err
	}
	return Paginate(Filter(s.data.Etablissements, q.Search, etablissementFields), q), nil
}

func (s *Static) Etablissement(ctx context.Context, sigle string) (EtablissementRecord, error) {
	if err := ctx.Err(); err != nil {
		return EtablissementRecord{}, err
	}
	for _, r := range s.data.Etablissements {
		if Equal(r.Sigle, sigle) {
			return r, nil
		}
	}
	return EtablissementRecord{}, fmt.Errorf("%w: etablissement %q", ErrNotFound, sigle)
}

func (s *Static) Encadreurs(ctx context.Context, q Query) (Page[EncadreurRecord], error) {
	if err := ctx.Err(); err != nil {
		return Page[EncadreurRecord]{}, err
	}
	return Paginate(Filter(s.data.Encadreurs, q.Search, encadreurFields), q), nil
}

func (s *Static) Encadreur(ctx context.Context, id string) (EncadreurRecord, error) {
	if err := ctx.Err(); err != nil {
		return EncadreurRecord{}, err
	}
	for _, r := range s.data.Encadreurs {
		if r.ID == id {
			return r, nil
		}
	}
	return EncadreurRecord{}, fmt.Errorf("%w: encadreur %q", ErrNotFound, id)
}

func (s *Static) Specialites(ctx context.Context, q Query) (Page[Specialite], error) {
	if err := ctx.Err(); err != nil {
		return Page[Specialite]{}, err
	}
	return Paginate(Filter(s.data.Specialites, q.Search, specialiteFields), q), nil
}

func (s *Static) Parcours(ctx context.Context, q Query) (Page[Parcours], error) {
	if err := ctx.Err(); err != nil {
		return Page[Parcours]{}, err
	}
	return Paginate(Filter(s.data.Parcours, q.Search, parcoursFields), q), nil
}

func (s *Static) Inscriptions(ctx context.Context, q InscriptionQuery) (Page[Inscription], error) {
	if err := ctx.Err(); err != nil {
		return Page[Inscription]{}, err
	}
	var kept []Inscription
	for _, r := range s.data.Inscriptions {
		if matchInscription(r, q) {
			kept = append(kept, r)
		}
	}
	return Paginate(Filter(kept, q.Search, inscriptionFields), q.Query), nil
}
