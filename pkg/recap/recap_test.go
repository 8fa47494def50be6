package recap_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/recap"
	"github.com/goliatone/go-fiche/pkg/testsupport"
)

func labels(s recap.Section) []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Label)
	}
	return out
}

func TestSectionFieldSets(t *testing.T) {
	sections := recap.NewBuilder().Build(context.Background(), testsupport.ValidSnapshot())
	want := map[string][]string{
		"Établissement d'accueil": {"Sigle", "Raison sociale", "Email", "Telephone", "Adresse", "Site web"},
		"Encadreur professionnel": {"Nom", "Prénom(s)", "Email", "Téléphone"},
		"Stagiaire(s)":            {"Niveau d'étude", "Parcours", "Liste de(s) stagiaire(s)"},
		"Sujet proposé":           {"Thème", "Orientation", "Objectifs", "Descriptif"},
		"Aspects techniques":      {"Planning prévisionnel", "Moyens logiciels", "Moyens matériels"},
	}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections", len(sections))
	}
	for _, s := range sections {
		if diff := cmp.Diff(want[s.Title], labels(s)); diff != "" {
			t.Errorf("%s fields (-want +got):\n%s", s.Title, diff)
		}
	}

	list := sections[2].Fields[2]
	if !list.Span || list.Value != "" {
		t.Fatalf("stagiaire list field = %+v", list)
	}
	if diff := cmp.Diff([]string{"ETU001 - ANDRIAMANANA Hery"}, list.Badges); diff != "" {
		t.Fatalf("badges (-want +got):\n%s", diff)
	}
	if got := sections[2].Fields[0].Value; got != "L3 - Licence 3ème année" {
		t.Fatalf("niveau = %q", got)
	}
}

func TestExistingEntitiesResolvedFromDirectory(t *testing.T) {
	dir, err := directory.DefaultStatic()
	if err != nil {
		t.Fatal(err)
	}
	snap := testsupport.ExistingSnapshot("InnovTech", "4")
	sections := recap.NewBuilder(recap.WithDirectory(dir)).Build(context.Background(), snap)

	etab := sections[0]
	if diff := cmp.Diff([]string{"Sigle", "Raison sociale", "Responsable", "Email", "Telephone", "Adresse", "Site web"}, labels(etab)); diff != "" {
		t.Fatalf("existant fields (-want +got):\n%s", diff)
	}
	if etab.Fields[2].Value != "RANDRIANARISOA Sophie Claire" {
		t.Fatalf("responsable = %q", etab.Fields[2].Value)
	}
	if sections[1].Fields[0].Value != "RANDRIANARISOA" {
		t.Fatalf("encadreur nom = %q", sections[1].Fields[0].Value)
	}
}

type failingDirectory struct{ directory.Directory }

func (failingDirectory) Etablissement(context.Context, string) (directory.EtablissementRecord, error) {
	return directory.EtablissementRecord{}, errors.New("timeout")
}

func (failingDirectory) Encadreur(context.Context, string) (directory.EncadreurRecord, error) {
	return directory.EncadreurRecord{}, directory.ErrNotFound
}

func TestLookupFailureFallsBackToAutofilledSlots(t *testing.T) {
	snap := testsupport.ExistingSnapshot("ACME Corp", "1")
	snap.Etablissement.RaisonSociale = "ACME Corporation Madagascar"
	snap.Encadreur.User = fiche.Person{Nom: "RAKOTOMALALA", Prenoms: "Jean Pierre"}

	sections := recap.NewBuilder(recap.WithDirectory(failingDirectory{})).Build(context.Background(), snap)
	if got := sections[0].Fields[0].Value; got != "ACME Corp" {
		t.Fatalf("sigle falls back to the reference id, got %q", got)
	}
	if got := sections[0].Fields[1].Value; got != "ACME Corporation Madagascar" {
		t.Fatalf("raison sociale = %q", got)
	}
	if got := sections[1].Fields[1].Value; got != "Jean Pierre" {
		t.Fatalf("prenoms = %q", got)
	}
}

func TestRenderText(t *testing.T) {
	out := recap.RenderText(recap.NewBuilder().Build(context.Background(), testsupport.ValidSnapshot()))
	for _, want := range []string{
		"Établissement d'accueil",
		"Raison sociale :",
		"ACME Corporation Madagascar",
		"[ETU001 - ANDRIAMANANA Hery]",
		"Aspects techniques",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output misses %q:\n%s", want, out)
		}
	}

	empty := recap.RenderText(recap.NewBuilder().Build(context.Background(), fiche.DefaultSnapshot()))
	if !strings.Contains(empty, recap.Placeholder) {
		t.Errorf("empty values should show the placeholder:\n%s", empty)
	}
}

func TestRenderHTMLSanitizesAndKeepsStructure(t *testing.T) {
	snap := testsupport.ValidSnapshot()
	snap.Sujet.Theme = `<script>alert(1)</script>Plateforme <b>stages</b>`
	snap.Sujet.Objectif = "Ligne un\nLigne deux"

	out, err := recap.RenderHTML(recap.NewBuilder().Build(context.Background(), snap))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script") || strings.Contains(out, "<b>") {
		t.Fatalf("markup leaked into output:\n%s", out)
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var (
		headings []string
		badges   []string
		brCount  int
	)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h3":
				headings = append(headings, textOf(n))
			case "span":
				if attr(n, "class") == "badge" {
					badges = append(badges, textOf(n))
				}
			case "br":
				brCount++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	wantHeadings := []string{"Établissement d'accueil", "Encadreur professionnel", "Stagiaire(s)", "Sujet proposé", "Aspects techniques"}
	if diff := cmp.Diff(wantHeadings, headings); diff != "" {
		t.Fatalf("headings (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ETU001 - ANDRIAMANANA Hery"}, badges); diff != "" {
		t.Fatalf("badges (-want +got):\n%s", diff)
	}
	if brCount != 1 {
		t.Fatalf("expected one line break from the multiline objectif, got %d", brCount)
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
