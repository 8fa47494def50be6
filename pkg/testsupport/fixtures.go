package testsupport

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

// ValidSnapshot returns a fully valid fiche with both entities entered as
// nouveau and a single L3 stagiaire.
func ValidSnapshot() fiche.Snapshot {
	return fiche.Snapshot{
		Etablissement: fiche.Etablissement{
			Type:           fiche.EntityNouveau,
			Sigle:          "ACME",
			RaisonSociale:  "ACME Corporation Madagascar",
			Email:          "contact@acme-mg.com",
			AdressePostale: "Lot II M 15 Androhibe, 101 Antananarivo",
			Contact:        "+261 34 12 345 67",
			SiteWeb:        "https://acme-mg.com",
		},
		Encadreur: fiche.Encadreur{
			Type: fiche.EntityNouveau,
			User: fiche.Person{
				Nom:     "RAKOTOMALALA",
				Prenoms: "Jean Pierre",
				Email:   "jp.rakotomalala@acme-mg.com",
				Contact: "+261 34 12 345 67",
			},
		},
		Stagiaire: fiche.StagiaireGroup{
			Niveau:   "L3",
			Parcours: "GB",
			Stagiaires: []fiche.Stagiaire{
				{Code: "INS-2024-001", Label: "ETU001 - ANDRIAMANANA Hery"},
			},
		},
		Sujet: fiche.Sujet{
			Theme:       "Plateforme de gestion des stages",
			Orientation: "GB",
			Objectif:    "Automatiser le suivi des fiches techniques de stage",
			Descriptif:  "Conception et réalisation d'une application web de dépôt et de validation des fiches techniques.",
		},
		AspectTechnique: fiche.AspectTechnique{
			PlanningPrevisionnel: "S1-S2 analyse, S3-S6 développement, S7 recette",
			MoyenLogiciel:        "Go, PostgreSQL, React",
			MoyenMateriel:        "Un poste de travail, un serveur de test",
		},
	}
}

// ExistingSnapshot returns ValidSnapshot with both entities switched to
// existant references and their descriptive slots left empty.
func ExistingSnapshot(etablissementID, encadreurID string) fiche.Snapshot {
	snap := ValidSnapshot()
	snap.Etablissement = fiche.Etablissement{Type: fiche.EntityExistant, ExistantID: etablissementID}
	snap.Encadreur = fiche.Encadreur{Type: fiche.EntityExistant, ExistantID: encadreurID}
	return snap
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustJSON marshals value or fails the test.
func MustJSON(t *testing.T, value any) []byte {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

// DiffJSON compares two values through their generic JSON form so struct
// payloads can be compared against literal maps.
func DiffJSON(t *testing.T, want, got any) string {
	t.Helper()
	var w, g any
	if err := json.Unmarshal(MustJSON(t, want), &w); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	if err := json.Unmarshal(MustJSON(t, got), &g); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	return cmp.Diff(w, g)
}
