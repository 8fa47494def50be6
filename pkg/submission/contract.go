package submission

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// RouteFormationPratiques is the submission endpoint.
const RouteFormationPratiques = "/v1/formation/pratiques"

//go:embed openapi.yaml
var contractDocument []byte

// ErrContract is returned when a payload does not match the backend's
// published request schema.
var ErrContract = errors.New("submission: payload rejected by contract")

// ContractError lists the schema violations of a payload.
type ContractError struct {
	Issues []string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s", ErrContract.Error(), strings.Join(e.Issues, "; "))
}

// Fields splits issues of the form "path: reason" into per-path messages;
// the remaining issues are returned apart.
func (e *ContractError) Fields() (map[string][]string, []string) {
	fields := make(map[string][]string)
	var rest []string
	for _, issue := range e.Issues {
		path, reason, ok := strings.Cut(issue, ": ")
		if !ok || path == "" || strings.ContainsAny(path, " \t") {
			rest = append(rest, issue)
			continue
		}
		fields[path] = append(fields[path], reason)
	}
	return fields, rest
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

// Contract checks payloads against the request schema of the submission
// operation.
type Contract struct {
	schema *openapi3.Schema
}

var (
	defaultContractOnce sync.Once
	defaultContract     *Contract
	defaultContractErr  error
)

// DefaultContract loads the embedded OpenAPI document once.
func DefaultContract() (*Contract, error) {
	defaultContractOnce.Do(func() {
		defaultContract, defaultContractErr = LoadContract(context.Background(), contractDocument)
	})
	return defaultContract, defaultContractErr
}

// ContractDocument returns the embedded OpenAPI document.
func ContractDocument() []byte {
	return append([]byte(nil), contractDocument...)
}

// LoadContract parses an OpenAPI 3 document and extracts the JSON request
// schema of POST /v1/formation/pratiques.
func LoadContract(ctx context.Context, data []byte) (*Contract, error) {
	if len(data) == 0 {
		return nil, errors.New("submission: contract document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("submission: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("submission: invalid contract: %w", err)
	}
	if doc.Paths == nil {
		return nil, errors.New("submission: contract has no paths")
	}
	item := doc.Paths.Value(RouteFormationPratiques)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("submission: contract has no POST %s", RouteFormationPratiques)
	}
	body := item.Post.RequestBody
	if body == nil || body.Value == nil {
		return nil, errors.New("submission: contract operation has no request body")
	}
	media := body.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("submission: contract request body has no JSON schema")
	}
	return &Contract{schema: media.Schema.Value}, nil
}

// Check validates p. Violations are reported as a *ContractError.
func (c *Contract) Check(p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("submission: encode payload: %w", err)
	}
	return c.CheckJSON(data)
}

// CheckJSON validates a raw JSON body.
func (c *Contract) CheckJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &ContractError{Issues: []string{"corps JSON invalide: " + err.Error()}}
	}
	err := c.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return &ContractError{Issues: schemaIssues(err)}
}

func schemaIssues(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		var multi openapi3.MultiError
		if errors.As(e, &multi) {
			for _, inner := range multi {
				walk(inner)
			}
			return
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(e, &schemaErr) {
			path := strings.Join(schemaErr.JSONPointer(), ".")
			if path == "" {
				out = append(out, schemaErr.Reason)
			} else {
				out = append(out, path+": "+schemaErr.Reason)
			}
			return
		}
		out = append(out, e.Error())
	}
	walk(err)
	sort.Strings(out)
	return out
}
