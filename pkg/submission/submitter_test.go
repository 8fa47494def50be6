package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/form"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/testsupport"
)

func TestSubmitSuccessNotifies(t *testing.T) {
	var sent []submission.Payload
	rec := &submission.Recorder{}
	s := submission.NewSubmitter(
		submission.EndpointFunc(func(_ context.Context, p submission.Payload) error {
			sent = append(sent, p)
			return nil
		}),
		submission.WithNotifier(rec),
		submission.WithContract(mustContract(t)),
	)
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))

	p, err := s.Submit(context.Background(), f)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(sent) != 1 || p.NombreStagiaire != 1 {
		t.Fatalf("sent=%d nombre_stagiaire=%d", len(sent), p.NombreStagiaire)
	}
	want := []submission.Notification{{Level: submission.LevelSuccess, Message: submission.MessageSuccess}}
	if diff := cmp.Diff(want, rec.Notifications()); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
}

func TestSubmitInvalidFormSendsNothing(t *testing.T) {
	called := false
	rec := &submission.Recorder{}
	s := submission.NewSubmitter(
		submission.EndpointFunc(func(context.Context, submission.Payload) error {
			called = true
			return nil
		}),
		submission.WithNotifier(rec),
	)
	snap := testsupport.ValidSnapshot()
	snap.Stagiaire.Stagiaires = append(snap.Stagiaire.Stagiaires, fiche.Stagiaire{Label: "ETU002 - RASOAMANANA Mialy"})
	f := form.New(form.WithInitial(snap))

	_, err := s.Submit(context.Background(), f)
	if !errors.Is(err, submission.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if called || len(rec.Notifications()) != 0 {
		t.Fatalf("called=%v notifications=%v", called, rec.Notifications())
	}
	want := []string{"Le niveau L3 autorise au maximum 1 stagiaire(s)"}
	if diff := cmp.Diff(want, f.ErrorsFor(fiche.PathStagiaires)); diff != "" {
		t.Fatalf("stagiaires errors (-want +got):\n%s", diff)
	}
}

func TestSubmitFailureKeepsFormState(t *testing.T) {
	rec := &submission.Recorder{}
	boom := errors.New("connection reset")
	s := submission.NewSubmitter(
		submission.EndpointFunc(func(context.Context, submission.Payload) error { return boom }),
		submission.WithNotifier(rec),
	)
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	before := f.Snapshot()

	_, err := s.Submit(context.Background(), f)
	if !errors.Is(err, boom) {
		t.Fatalf("expected endpoint error, got %v", err)
	}
	want := []submission.Notification{{Level: submission.LevelError, Message: submission.MessageFailure}}
	if diff := cmp.Diff(want, rec.Notifications()); diff != "" {
		t.Fatalf("notifications (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("form changed after failed submit (-want +got):\n%s", diff)
	}

	if err := f.SetValue(fiche.PathSujetTheme, "Nouveau thème du stage"); err != nil {
		t.Fatalf("form not editable after failure: %v", err)
	}
	if got := f.Snapshot().Sujet.Theme; got != "Nouveau thème du stage" {
		t.Fatalf("theme = %q", got)
	}
}

func TestSubmitMapsServerFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != submission.RouteFormationPratiques {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation failed","errors":{
			"etablissement_accueil.sigle_ea":["Ce sigle existe déjà"],
			"inscriptions.0":["Inscription déjà liée à une fiche"],
			"global":["Période de dépôt close"]}}`))
	}))
	defer srv.Close()

	client, err := api.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	rec := &submission.Recorder{}
	s := submission.NewSubmitter(submission.NewHTTPEndpoint(client), submission.WithNotifier(rec))
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	before := f.Snapshot()

	_, err = s.Submit(context.Background(), f)
	if !api.IsStatus(err, http.StatusUnprocessableEntity) {
		t.Fatalf("expected a 422 error, got %v", err)
	}
	checks := map[string][2][]string{
		"sigle":       {{"Ce sigle existe déjà"}, f.ErrorsFor(fiche.PathEtablissementSigle)},
		"stagiaires":  {{"Inscription déjà liée à une fiche"}, f.ErrorsFor(fiche.PathStagiaires)},
		"form errors": {{"Période de dépôt close"}, f.FormErrors()},
	}
	for name, pair := range checks {
		if diff := cmp.Diff(pair[0], pair[1]); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", name, diff)
		}
	}
	if n := len(rec.Notifications()); n != 1 {
		t.Fatalf("notifications = %d", n)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("form changed (-want +got):\n%s", diff)
	}
}

func TestMapErrors(t *testing.T) {
	got := submission.MapErrors(map[string][]string{
		"/encadreur_professionnel/user/email": {"Email déjà utilisé", " "},
		"sujet.theme":                         {"Trop vague", "Trop vague"},
		"data.moyen_logiciel":                 {"Requis"},
		"__all__":                             {"Erreur générale"},
		"unknown_field":                       {"Champ inconnu"},
	})
	want := submission.ErrorMapping{
		Fields: map[string][]string{
			fiche.PathEncadreurEmail: {"Email déjà utilisé"},
			fiche.PathSujetTheme:     {"Trop vague"},
			fiche.PathAspectLogiciel: {"Requis"},
		},
	}
	if diff := cmp.Diff(want.Fields, got.Fields); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff([]string{"Erreur générale", "Champ inconnu"}, got.Form, sortStrings); diff != "" {
		t.Fatalf("form errors (-want +got):\n%s", diff)
	}
}
