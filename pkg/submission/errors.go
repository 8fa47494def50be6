package submission

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-fiche/pkg/fiche"
	"github.com/goliatone/go-fiche/pkg/form"
)

// ErrorMapping splits a server error payload into messages attached to form
// field paths and messages for the whole form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// payloadAliases maps payload field paths onto form paths.
var payloadAliases = map[string]string{
	"theme":                      fiche.PathSujetTheme,
	"specialite":                 fiche.PathSujetOrientation,
	"objectif":                   fiche.PathSujetObjectif,
	"descriptif":                 fiche.PathSujetDescriptif,
	"planning_previsionnel":      fiche.PathAspectPlanning,
	"moyen_logiciel":             fiche.PathAspectLogiciel,
	"moyen_materiel":             fiche.PathAspectMateriel,
	"niveau":                     fiche.PathStagiaireNiveau,
	"parcours":                   fiche.PathStagiaireParcours,
	"nombre_stagiaire":           fiche.PathStagiaires,
	"inscriptions":               fiche.PathStagiaires,
	"etablissement_accueil_id":   fiche.PathEtablissementExistantID,
	"etablissement_accueil":      fiche.PathEtablissementType,
	"sigle_ea":                   fiche.PathEtablissementSigle,
	"raison_sociale":             fiche.PathEtablissementRaison,
	"email_ea":                   fiche.PathEtablissementEmail,
	"adresse_ea":                 fiche.PathEtablissementAdresse,
	"contact_ea":                 fiche.PathEtablissementContact,
	"site_web_ea":                fiche.PathEtablissementSiteWeb,
	"encadreur_professionnel_id": fiche.PathEncadreurExistantID,
	"encadreur_professionnel":    fiche.PathEncadreurType,
	"user.nom":                   fiche.PathEncadreurNom,
	"user.prenoms":               fiche.PathEncadreurPrenoms,
	"user.email":                 fiche.PathEncadreurEmail,
	"user.contact":               fiche.PathEncadreurContact,
}

// MapErrors resolves server-side field keys, given as payload names, form
// paths or JSON pointers, onto form paths. Keys that match nothing become
// form-level messages so no message is lost.
func MapErrors(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	known := make(map[string]struct{})
	for _, p := range form.Paths() {
		known[p] = struct{}{}
	}

	for raw, messages := range payload {
		msgs := normalizeMessages(messages)
		if len(msgs) == 0 {
			continue
		}
		path, ok := mapErrorPath(raw, known)
		if !ok {
			mapping.Form = append(mapping.Form, msgs...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], msgs...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", false
	}
	segments = stripNumericSegments(dropWrapperSegments(segments))
	if len(segments) == 0 {
		return "", false
	}

	if path := longestKnown(segments, known); path != "" {
		return path, true
	}
	// Payload names: try the full key, then each suffix, so both
	// "etablissement_accueil.sigle_ea" and "sigle_ea" resolve.
	for start := 0; start < len(segments); start++ {
		if path, ok := payloadAliases[strings.Join(segments[start:], ".")]; ok {
			return path, true
		}
	}
	for end := len(segments); end > 0; end-- {
		if path, ok := payloadAliases[strings.Join(segments[:end], ".")]; ok {
			return path, true
		}
	}
	return "", false
}

func longestKnown(segments []string, known map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := known[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
