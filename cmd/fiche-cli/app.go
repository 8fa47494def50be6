package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/config"
	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/session"
)

// app carries what PersistentPreRunE resolved.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func (a *app) session() (*session.Session, error) {
	if a.cfg.API.TokenFile == "" {
		return session.Anonymous(), nil
	}
	return session.Load(a.cfg.API.TokenFile)
}

func (a *app) client() (*api.Client, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	return api.New(a.cfg.API.BaseURL,
		api.WithTimeout(a.cfg.API.Timeout),
		api.WithSession(sess),
		api.WithLogger(a.logger),
	)
}

// directory returns the configured source. The HTTP source shares client.
func (a *app) directory(client *api.Client) (directory.Directory, error) {
	switch a.cfg.Directory.Source {
	case config.SourceHTTP:
		if client == nil {
			return nil, fmt.Errorf("http directory needs an API client")
		}
		return directory.NewHTTP(client), nil
	default:
		return directory.DefaultStatic()
	}
}

// readSnapshot decodes a fiche from YAML or JSON. Keys follow the JSON field
// names of the form, e.g. etablissement.raisonSociale.
func readSnapshot(path string) (fiche.Snapshot, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fiche.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return decodeSnapshot(data, strings.ToLower(filepath.Ext(path)))
}

func decodeSnapshot(data []byte, ext string) (fiche.Snapshot, error) {
	snap := fiche.DefaultSnapshot()
	if ext == ".json" {
		if err := json.Unmarshal(data, &snap); err != nil {
			return fiche.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
		}
		return snap, nil
	}
	// yaml.v3 ignores json tags; go through the generic form instead.
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fiche.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	raw, err := json.Marshal(generic)
	if err != nil {
		return fiche.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fiche.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
