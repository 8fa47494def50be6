package submission_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/submission"
	"github.com/goliatone/go-fiche/pkg/testsupport"
)

func mustContract(t *testing.T) *submission.Contract {
	t.Helper()
	c, err := submission.DefaultContract()
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	return c
}

func TestContractAcceptsBuiltPayloads(t *testing.T) {
	c := mustContract(t)
	cases := []struct {
		name string
		snap fiche.Snapshot
	}{
		{"nouveau", testsupport.ValidSnapshot()},
		{"existant", testsupport.ExistingSnapshot("ACME Corp", "1")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := submission.Build(tc.snap, "")
			if err != nil {
				t.Fatal(err)
			}
			if err := c.Check(p); err != nil {
				t.Fatalf("contract rejected payload: %v", err)
			}
		})
	}
}

func TestContractRejectsBothReferenceAndBlock(t *testing.T) {
	c := mustContract(t)
	p, err := submission.Build(testsupport.ValidSnapshot(), "")
	if err != nil {
		t.Fatal(err)
	}
	p.EtablissementAccueilID = "ACME Corp"

	err = c.Check(p)
	if !errors.Is(err, submission.ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestContractReportsFieldIssues(t *testing.T) {
	c := mustContract(t)
	p, err := submission.Build(testsupport.ValidSnapshot(), "")
	if err != nil {
		t.Fatal(err)
	}
	p.Niveau = "D1"
	p.Inscriptions = []string{}

	err = c.Check(p)
	var cerr *submission.ContractError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ContractError, got %v", err)
	}
	joined := strings.Join(cerr.Issues, "\n")
	for _, field := range []string{"niveau", "inscriptions"} {
		if !strings.Contains(joined, field) {
			t.Errorf("issues do not mention %s:\n%s", field, joined)
		}
	}
}

func TestCheckJSONRejectsGarbage(t *testing.T) {
	if err := mustContract(t).CheckJSON([]byte("{")); !errors.Is(err, submission.ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
}

func TestContractErrorFields(t *testing.T) {
	cerr := &submission.ContractError{Issues: []string{
		"niveau: value is not one of the allowed values",
		"inscriptions: minimum number of items is 1",
		"doesn't match all schemas from \"allOf\"",
	}}
	fields, rest := cerr.Fields()
	if len(fields["niveau"]) != 1 || len(fields["inscriptions"]) != 1 {
		t.Fatalf("fields = %v", fields)
	}
	if len(rest) != 1 {
		t.Fatalf("rest = %v", rest)
	}
}
