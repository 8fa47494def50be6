package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := LoadWith("", map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults changed (-want +got):\n%s", diff)
	}
}

func TestFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiche.yaml")
	body := strings.Join([]string{
		"api:",
		"  base_url: https://stages.example.mg/api",
		"  timeout: 30s",
		"directory:",
		"  source: http",
		"  page_size: 20",
		"log:",
		"  level: debug",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWith(path, map[string]string{
		"FICHE_DIRECTORY_PAGE_SIZE":       "10",
		"FICHE_SUBMISSION_INITIAL_STATUS": "BROUILLON",
		"FICHE_DEVSERVER_ADDR":            ":9090",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "https://stages.example.mg/api" || cfg.API.Timeout != 30*time.Second {
		t.Fatalf("api = %+v", cfg.API)
	}
	if cfg.Directory.Source != SourceHTTP || cfg.Directory.PageSize != 10 {
		t.Fatalf("directory = %+v", cfg.Directory)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if cfg.Submission.InitialStatus != "BROUILLON" || cfg.DevServer.Addr != ":9090" {
		t.Fatalf("submission=%+v devserver=%+v", cfg.Submission, cfg.DevServer)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	_, err := LoadWith("", map[string]string{
		"FICHE_DIRECTORY_SOURCE":    "ldap",
		"FICHE_DIRECTORY_PAGE_SIZE": "0",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"directory.source", "directory.page_size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := LoadWith(filepath.Join(t.TempDir(), "nope.yaml"), map[string]string{}); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestBadEnvValue(t *testing.T) {
	if _, err := LoadWith("", map[string]string{"FICHE_API_TIMEOUT": "soon"}); err == nil {
		t.Fatal("expected error for an unparsable duration")
	}
}
