package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	component "github.com/goliatone/go-fiche/components/directory"
	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/directory"
)

type envelope[T any] struct {
	Data []T            `json:"data"`
	Meta directory.Meta `json:"meta"`
}

func get[T any](t *testing.T, h http.Handler, target string) (int, envelope[T]) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var out envelope[T]
	if rec.Code == http.StatusOK {
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Fatalf("expected JSON content-type, got %q", ct)
		}
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec.Code, out
}

func TestEtablissementsFilterBySigle(t *testing.T) {
	h := component.New().Handler()

	code, page := get[directory.EtablissementRecord](t, h, "/v1/etablissement-accueils?sigle_ea=digimada&limit=5")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(page.Data) != 1 || page.Data[0].Sigle != "DigiMada" {
		t.Fatalf("data = %+v", page.Data)
	}
	if page.Meta.Limit != 5 || page.Meta.Page != 1 {
		t.Fatalf("meta = %+v", page.Meta)
	}
}

func TestEncadreurByIDReturnsEmptyDataWhenMissing(t *testing.T) {
	h := component.New().Handler()

	_, page := get[directory.EncadreurRecord](t, h, "/v1/encadreur/professionnel?id=2")
	if len(page.Data) != 1 || page.Data[0].ID != "2" {
		t.Fatalf("data = %+v", page.Data)
	}

	code, page := get[directory.EncadreurRecord](t, h, "/v1/encadreur/professionnel?id=404")
	if code != http.StatusOK || page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("expected empty data array, got %d %#v", code, page.Data)
	}
}

func TestInscriptionsForwardFilters(t *testing.T) {
	h := component.New().Handler()

	_, page := get[directory.Inscription](t, h, "/v1/inscriptions?niveau=L3&parcours=GB&annee_univ=2024-2025")
	var codes []string
	for _, r := range page.Data {
		codes = append(codes, r.Code)
	}
	if diff := cmp.Diff([]string{"INS-2024-001", "INS-2024-002", "INS-2024-003"}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestLimitClamped(t *testing.T) {
	h := component.New(component.WithMaxLimit(2)).Handler()

	_, page := get[directory.Inscription](t, h, "/v1/inscriptions?limit=100")
	if len(page.Data) != 2 || page.Meta.Total != 20 {
		t.Fatalf("expected 2 of 20, got %d of %d", len(page.Data), page.Meta.Total)
	}
}

func TestGuardStatus(t *testing.T) {
	h := component.New(component.WithGuard(func(r *http.Request) error {
		if r.Header.Get("Authorization") == "" {
			return component.StatusError{Code: http.StatusUnauthorized}
		}
		return nil
	})).Handler()

	code, _ := get[directory.Parcours](t, h, "/v1/parcours")
	if code != http.StatusUnauthorized {
		t.Fatalf("status = %d", code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := component.New().Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/parcours", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

type failingDirectory struct {
	directory.Directory
}

func (failingDirectory) Specialites(context.Context, directory.Query) (directory.Page[directory.Specialite], error) {
	return directory.Page[directory.Specialite]{}, errors.New("database is down")
}

func TestSourceFailureIsBadGateway(t *testing.T) {
	h := component.New(component.WithSource(failingDirectory{})).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/specialites", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "database") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
}

// The HTTP directory client reads the component exactly like the static
// source it wraps.
func TestHTTPClientRoundTrip(t *testing.T) {
	router := mux.NewRouter()
	if _, err := component.RegisterRoutes(router, "/api"); err != nil {
		t.Fatalf("register: %v", err)
	}
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL + "/api")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	remote := directory.NewHTTP(client)
	local, err := directory.DefaultStatic()
	if err != nil {
		t.Fatalf("static: %v", err)
	}
	ctx := context.Background()

	want, _ := local.Etablissement(ctx, "TechSoft")
	got, err := remote.Etablissement(ctx, "TechSoft")
	if err != nil {
		t.Fatalf("remote etablissement: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("etablissement mismatch (-want +got):\n%s", diff)
	}

	if _, err := remote.Encadreur(ctx, "999"); !errors.Is(err, directory.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	wantCat := directory.LoadCatalog(ctx, local, 50, nil)
	gotCat := directory.LoadCatalog(ctx, remote, 50, nil)
	if diff := cmp.Diff(wantCat, gotCat); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestMountPath(t *testing.T) {
	for _, tc := range []struct{ base, want string }{
		{"", "/v1/parcours"},
		{"/", "/v1/parcours"},
		{"api", "/api/v1/parcours"},
		{"/api/", "/api/v1/parcours"},
	} {
		if got := component.MountPath(tc.base, directory.RouteParcours); got != tc.want {
			t.Errorf("MountPath(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}
