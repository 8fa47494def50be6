package validation

import "github.com/goliatone/go-fiche/pkg/fiche"

// Schema validates a slice of the form snapshot.
type Schema interface {
	Validate(s fiche.Snapshot) Result
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc func(s fiche.Snapshot) Result

// Validate implements Schema.
func (fn SchemaFunc) Validate(s fiche.Snapshot) Result {
	if fn == nil {
		return Ok()
	}
	return fn(s)
}

// Field runs checks against a single string field. Checks stop at the first
// failure so each field reports one message at a time.
type Field struct {
	Path   string
	Value  func(fiche.Snapshot) string
	Checks []Check
}

// Validate implements Schema.
func (f Field) Validate(s fiche.Snapshot) Result {
	if f.Value == nil {
		return Ok()
	}
	value := f.Value(s)
	for _, check := range f.Checks {
		if check.Test == nil || check.Test(value) {
			continue
		}
		return Fail(Issue{Field: f.Path, Rule: check.Rule, Message: check.Message})
	}
	return Ok()
}

// All is the conjunction of schemas; every schema runs and issues accumulate.
func All(schemas ...Schema) Schema {
	return SchemaFunc(func(s fiche.Snapshot) Result {
		results := make([]Result, 0, len(schemas))
		for _, schema := range schemas {
			if schema == nil {
				continue
			}
			results = append(results, schema.Validate(s))
		}
		return Merge(results...)
	})
}

// Union validates only the variant selected by the discriminant. Fields of
// the other variants are never evaluated, whatever their content.
type Union struct {
	Path         string
	Discriminant func(fiche.Snapshot) fiche.EntityType
	Variants     map[fiche.EntityType]Schema
	Message      string
}

// Validate implements Schema.
func (u Union) Validate(s fiche.Snapshot) Result {
	if u.Discriminant == nil {
		return Ok()
	}
	variant, ok := u.Variants[u.Discriminant(s)]
	if !ok {
		return Fail(Issue{Field: u.Path, Rule: RuleVariant, Message: u.Message})
	}
	if variant == nil {
		return Ok()
	}
	return variant.Validate(s)
}
