package form_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/form"
	"github.com/goliatone/go-fiche/pkg/testsupport"
	"github.com/goliatone/go-fiche/pkg/validation"
)

func TestNewStartsWithDefaults(t *testing.T) {
	f := form.New()
	if diff := cmp.Diff(fiche.DefaultSnapshot(), f.Snapshot()); diff != "" {
		t.Fatalf("default snapshot mismatch (-want +got):\n%s", diff)
	}
	if got := f.String(fiche.PathEtablissementType); got != "nouveau" {
		t.Fatalf("etablissement type = %q", got)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("fresh form should not show errors: %v", f.Errors())
	}
}

func TestSetValueRoundTripsEveryPath(t *testing.T) {
	f := form.New()
	for _, path := range form.Paths() {
		if path == fiche.PathStagiaires {
			continue
		}
		if err := f.SetValue(path, "x-"+path); err != nil {
			t.Fatalf("set %s: %v", path, err)
		}
		if got := f.String(path); got != "x-"+path {
			t.Fatalf("%s = %q", path, got)
		}
	}
}

func TestSetValueRejectsUnknownPathAndBadType(t *testing.T) {
	f := form.New()
	if err := f.SetValue("etablissement.nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.SetValue(fiche.PathSujetTheme, 42); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestSetValuesIsAllOrNothing(t *testing.T) {
	f := form.New()
	if err := f.SetValue(fiche.PathEncadreurNom, "RABE"); err != nil {
		t.Fatalf("set: %v", err)
	}
	before := f.Snapshot()

	err := f.SetValues(map[string]any{
		fiche.PathEncadreurNom:        "RAKOTO",
		fiche.PathEtablissementRaison: "ACME",
		"etablissement.nope":          "x",
	})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("unknown path left partial writes (-want +got):\n%s", diff)
	}

	err = f.SetValues(map[string]any{
		fiche.PathEncadreurNom: "RAKOTO",
		fiche.PathSujetTheme:   42,
	})
	if !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("bad value left partial writes (-want +got):\n%s", diff)
	}
}

func TestStagiairesAcceptTaggedAndPlainValues(t *testing.T) {
	f := form.New()
	if err := f.SetValue(fiche.PathStagiaires, []fiche.Option{{ID: "INS-1", Label: "ETU001 - RAKOTO Be"}}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	want := []fiche.Stagiaire{{Code: "INS-1", Label: "ETU001 - RAKOTO Be"}}
	if diff := cmp.Diff(want, f.Snapshot().Stagiaire.Stagiaires); diff != "" {
		t.Fatalf("stagiaires mismatch (-want +got):\n%s", diff)
	}

	if err := f.SetValue(fiche.PathStagiaires, []string{"ETU002 - RABE Soa"}); err != nil {
		t.Fatalf("set labels: %v", err)
	}
	got := f.Snapshot().Stagiaire.Stagiaires
	if len(got) != 1 || got[0].Code != "" || got[0].EnrollmentCode() != "ETU002" {
		t.Fatalf("unexpected stagiaires: %+v", got)
	}
}

func TestOnChangeShowsOnlyTouchedFields(t *testing.T) {
	f := form.New()
	if err := f.SetValue(fiche.PathEtablissementRaison, "A"); err != nil {
		t.Fatal(err)
	}
	errs := f.Errors()
	if diff := cmp.Diff([]string{"La raison sociale doit contenir au moins 3 caractères"}, errs[fiche.PathEtablissementRaison]); diff != "" {
		t.Fatalf("raison sociale errors (-want +got):\n%s", diff)
	}
	if _, ok := errs[fiche.PathEtablissementSigle]; ok {
		t.Fatalf("untouched sigle should not show an error: %v", errs)
	}

	if err := f.SetValue(fiche.PathEtablissementRaison, "ACME Corp"); err != nil {
		t.Fatal(err)
	}
	if got := f.ErrorsFor(fiche.PathEtablissementRaison); len(got) != 0 {
		t.Fatalf("error should clear once fixed: %v", got)
	}
}

func TestTriggerMakesStepErrorsVisible(t *testing.T) {
	f := form.New()
	_ = f.SetValue(fiche.PathEtablissementSigle, "AB")
	_ = f.SetValue(fiche.PathEtablissementRaison, "A")

	res := f.Trigger(fiche.StepEtablissement)
	if res.Valid {
		t.Fatal("expected etablissement step to fail")
	}
	errs := f.StepErrors(fiche.StepEtablissement)
	for _, path := range []string{
		fiche.PathEtablissementRaison,
		fiche.PathEtablissementEmail,
		fiche.PathEtablissementAdresse,
		fiche.PathEtablissementContact,
	} {
		if len(errs[path]) == 0 {
			t.Errorf("expected visible error for %s", path)
		}
	}
	if _, ok := errs[fiche.PathEtablissementSigle]; ok {
		t.Errorf("sigle AB is valid: %v", errs[fiche.PathEtablissementSigle])
	}
	if len(f.StepErrors(fiche.StepEncadreur)) != 0 {
		t.Errorf("other steps must stay untouched")
	}
}

func TestSwitchingVariantDropsStaleErrors(t *testing.T) {
	f := form.New()
	f.Trigger(fiche.StepEtablissement)
	if len(f.StepErrors(fiche.StepEtablissement)) == 0 {
		t.Fatal("expected nouveau errors")
	}
	if err := f.SetValues(map[string]any{
		fiche.PathEtablissementType:       fiche.EntityExistant,
		fiche.PathEtablissementExistantID: "ACME",
	}); err != nil {
		t.Fatal(err)
	}
	if errs := f.StepErrors(fiche.StepEtablissement); len(errs) != 0 {
		t.Fatalf("existant with id should clear errors, got %v", errs)
	}
}

func TestValidateAllAndServerErrors(t *testing.T) {
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	if res := f.ValidateAll(); !res.Valid {
		t.Fatalf("valid snapshot rejected: %+v", res.Issues)
	}

	before := f.Snapshot()
	f.SetErrors(map[string][]string{fiche.PathSujetTheme: {"Thème déjà utilisé"}}, []string{"Erreur serveur"})
	if diff := cmp.Diff([]string{"Thème déjà utilisé"}, f.ErrorsFor(fiche.PathSujetTheme)); diff != "" {
		t.Fatalf("server errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Erreur serveur"}, f.FormErrors()); diff != "" {
		t.Fatalf("form errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("SetErrors changed values (-want +got):\n%s", diff)
	}

	f.ValidateAll()
	if len(f.Errors()) != 0 || len(f.FormErrors()) != 0 {
		t.Fatalf("ValidateAll should replace stale errors")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	snap := f.Snapshot()
	snap.Stagiaire.Stagiaires[0].Label = "changed"
	snap.Sujet.Theme = "changed"
	again := f.Snapshot()
	if again.Stagiaire.Stagiaires[0].Label == "changed" || again.Sujet.Theme == "changed" {
		t.Fatal("snapshot shares memory with the form")
	}
}

func TestWithSchemasNarrowsEnumerations(t *testing.T) {
	f := form.New(
		form.WithInitial(testsupport.ValidSnapshot()),
		form.WithSchemas(validation.NewSet(validation.WithParcours("ASR"))),
	)
	res := f.Trigger(fiche.StepStagiaire)
	if res.Valid {
		t.Fatal("GB should be rejected when only ASR is offered")
	}
	if len(f.ErrorsFor(fiche.PathStagiaireParcours)) == 0 {
		t.Fatal("expected a parcours error")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	f := form.New(form.WithInitial(testsupport.ValidSnapshot()))
	f.Trigger(fiche.StepSujet)
	f.Reset()
	if diff := cmp.Diff(fiche.DefaultSnapshot(), f.Snapshot()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentWrites(t *testing.T) {
	f := form.New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.SetValue(fiche.PathSujetTheme, "Plateforme")
			_ = f.Snapshot()
			_ = f.Errors()
		}()
	}
	wg.Wait()
	if got := f.String(fiche.PathSujetTheme); got != "Plateforme" {
		t.Fatalf("theme = %q", got)
	}
}
