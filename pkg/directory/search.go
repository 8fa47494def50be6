package directory

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowers s and strips combining marks so "Génie" matches "genie".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Equal compares two identifiers ignoring case and accents.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}

type ranked[T any] struct {
	item     T
	isPrefix bool
	key      string
}

// Filter keeps the items whose fields contain query. Prefix matches come
// first, then items sort by their first field. An empty query keeps every
// item in its original order.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := Fold(query)
	if q == "" {
		return append([]T{}, items...)
	}
	matches := make([]ranked[T], 0, len(items))
	for _, item := range items {
		values := fields(item)
		hit, prefix := false, false
		for _, v := range values {
			folded := Fold(v)
			if strings.Contains(folded, q) {
				hit = true
				if strings.HasPrefix(folded, q) {
					prefix = true
				}
			}
		}
		if !hit {
			continue
		}
		key := ""
		if len(values) > 0 {
			key = Fold(values[0])
		}
		matches = append(matches, ranked[T]{item: item, isPrefix: prefix, key: key})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].key < matches[j].key
	})
	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.item)
	}
	return out
}

func etablissementFields(r EtablissementRecord) []string {
	return []string{r.Sigle, r.RaisonSociale, r.Responsable}
}

func encadreurFields(r EncadreurRecord) []string {
	return []string{r.User.Nom, r.User.Prenoms, r.User.Email, r.Etablissement}
}

func specialiteFields(r Specialite) []string {
	return []string{r.Code, r.Description}
}

func parcoursFields(r Parcours) []string {
	return []string{r.Code, r.Description}
}

func inscriptionFields(r Inscription) []string {
	return []string{r.Etudiant.Matricule, r.Etudiant.User.Nom, r.Etudiant.User.Prenoms, r.Code}
}

func matchInscription(r Inscription, q InscriptionQuery) bool {
	if q.Niveau != "" && !Equal(r.Niveau.Code, q.Niveau) {
		return false
	}
	if q.Parcours != "" && !Equal(r.Parcours.Code, q.Parcours) {
		return false
	}
	if q.AnneeUniv != "" && r.AnneeUniv != q.AnneeUniv {
		return false
	}
	if q.Etudiant != "" && !Equal(r.Etudiant.Matricule, q.Etudiant) {
		return false
	}
	if q.EtatFormationPratique != "" && !Equal(r.EtatFormationPratique, q.EtatFormationPratique) {
		return false
	}
	return true
}
