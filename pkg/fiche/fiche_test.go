package fiche_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fiche/pkg/fiche"
)

func TestEnrollmentCode(t *testing.T) {
	cases := []struct {
		name string
		in   fiche.Stagiaire
		want string
	}{
		{"tagged code wins", fiche.Stagiaire{Code: "INS-7", Label: "ETU007 - RABE Soa"}, "INS-7"},
		{"label fallback", fiche.Stagiaire{Label: "ETU007 - RABE Soa"}, "ETU007"},
		{"label without separator", fiche.Stagiaire{Label: "ETU007"}, "ETU007"},
		{"hyphenated name", fiche.Stagiaire{Label: "ETU008 - RANDRIA-MALALA Feno"}, "ETU008"},
		{"blank", fiche.Stagiaire{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.EnrollmentCode(); got != tc.want {
				t.Fatalf("EnrollmentCode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEtablissementVariant(t *testing.T) {
	e := fiche.Etablissement{Type: fiche.EntityExistant, ExistantID: "ACME", Sigle: "ignored"}
	if diff := cmp.Diff(fiche.ExistingEtablissement{ID: "ACME"}, e.Variant()); diff != "" {
		t.Fatalf("existant variant (-want +got):\n%s", diff)
	}

	e.Type = fiche.EntityNouveau
	nv, ok := e.Variant().(fiche.NewEtablissement)
	if !ok || nv.Sigle != "ignored" {
		t.Fatalf("nouveau variant = %#v", e.Variant())
	}

	e.Type = "autre"
	if e.Variant() != nil {
		t.Fatal("unknown discriminant should have no variant")
	}
}

func TestEncadreurVariant(t *testing.T) {
	p := fiche.Person{Nom: "RAKOTO", Prenoms: "Be"}
	e := fiche.Encadreur{Type: fiche.EntityNouveau, ExistantID: "3", User: p}
	if diff := cmp.Diff(fiche.NewEncadreur{User: p}, e.Variant()); diff != "" {
		t.Fatalf("nouveau variant (-want +got):\n%s", diff)
	}
	e.Type = fiche.EntityExistant
	if diff := cmp.Diff(fiche.ExistingEncadreur{ID: "3"}, e.Variant()); diff != "" {
		t.Fatalf("existant variant (-want +got):\n%s", diff)
	}
	if got := p.FullName(); got != "RAKOTO Be" {
		t.Fatalf("FullName() = %q", got)
	}
}

func TestCloneDoesNotShareStagiaires(t *testing.T) {
	s := fiche.DefaultSnapshot()
	s.Stagiaire.Stagiaires = append(s.Stagiaire.Stagiaires, fiche.Stagiaire{Label: "ETU001 - A B"})
	c := s.Clone()
	c.Stagiaire.Stagiaires[0].Label = "other"
	if s.Stagiaire.Stagiaires[0].Label != "ETU001 - A B" {
		t.Fatal("clone aliases the stagiaire slice")
	}
}

func TestStepOf(t *testing.T) {
	if got := fiche.StepOf(fiche.PathEncadreurNom); got != fiche.StepEncadreur {
		t.Fatalf("StepOf = %q", got)
	}
	if got := fiche.StepOf("recapitulatif"); got != fiche.StepRecapitulatif {
		t.Fatalf("StepOf = %q", got)
	}
}
