package recap

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/recap.html
var recapTemplate string

var (
	templateOnce sync.Once
	compiled     *pongo2.Template
	compileErr   error

	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func htmlTemplate() (*pongo2.Template, error) {
	templateOnce.Do(func() {
		compiled, compileErr = pongo2.FromString(recapTemplate)
	})
	return compiled, compileErr
}

func textPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// sanitize strips markup from user text and keeps its line breaks.
func sanitize(raw string, multiline bool) string {
	cleaned := strings.TrimSpace(textPolicy().Sanitize(raw))
	if multiline {
		cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
		cleaned = strings.ReplaceAll(cleaned, "\n", "<br />")
	}
	return cleaned
}

type htmlField struct {
	Label     string
	Value     string
	Badges    []string
	Span      bool
	Multiline bool
	Empty     bool
}

type htmlSection struct {
	ID     string
	Title  string
	Fields []htmlField
}

// RenderHTML renders sections as an HTML fragment. User values are
// sanitized; labels come from this package.
func RenderHTML(sections []Section) (string, error) {
	tpl, err := htmlTemplate()
	if err != nil {
		return "", fmt.Errorf("recap: compile template: %w", err)
	}
	views := make([]htmlSection, 0, len(sections))
	for _, s := range sections {
		view := htmlSection{ID: s.ID, Title: s.Title}
		for _, f := range s.Fields {
			hf := htmlField{Label: f.Label, Span: f.Span, Multiline: f.Multiline}
			for _, badge := range f.Badges {
				if clean := sanitize(badge, false); clean != "" {
					hf.Badges = append(hf.Badges, clean)
				}
			}
			hf.Value = sanitize(f.Value, f.Multiline)
			hf.Empty = hf.Value == "" && len(hf.Badges) == 0
			view.Fields = append(view.Fields, hf)
		}
		views = append(views, view)
	}
	out, err := tpl.Execute(pongo2.Context{"sections": views, "placeholder": Placeholder})
	if err != nil {
		return "", fmt.Errorf("recap: render: %w", err)
	}
	return out, nil
}
