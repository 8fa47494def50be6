// Package levels resolves how many stagiaires an academic level admits. The
// table is the single source for both the live hint shown next to the
// stagiaire picker and the authoritative count check in pkg/validation.
package levels

import (
	"fmt"
	"strings"
)

// Level codes accepted by the stagiaire step.
const (
	L1 = "L1"
	L2 = "L2"
	L3 = "L3"
	M1 = "M1"
	M2 = "M2"
)

// Bounds is a closed interval of allowed participant counts.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Allows reports whether n lies within the bounds.
func (b Bounds) Allows(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Default applies to empty or unknown level codes.
var Default = Bounds{Min: 1, Max: 5}

var table = map[string]Bounds{
	L1: {Min: 4, Max: 5},
	L2: {Min: 1, Max: 2},
	L3: {Min: 1, Max: 1},
	M1: {Min: 3, Max: 4},
	M2: {Min: 1, Max: 1},
}

// Level describes one entry of the catalogue.
type Level struct {
	Code  string
	Label string
}

var catalogue = []Level{
	{Code: L1, Label: "L1 - Licence 1ère année"},
	{Code: L2, Label: "L2 - Licence 2ème année"},
	{Code: L3, Label: "L3 - Licence 3ème année"},
	{Code: M1, Label: "M1 - Master 1ère année"},
	{Code: M2, Label: "M2 - Master 2ème année"},
}

// Levels returns the catalogue in display order.
func Levels() []Level {
	return append([]Level(nil), catalogue...)
}

// Codes returns the known level codes in display order.
func Codes() []string {
	out := make([]string, 0, len(catalogue))
	for _, lvl := range catalogue {
		out = append(out, lvl.Code)
	}
	return out
}

// Normalize trims and upper-cases a level code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Known reports whether code names a level of the table.
func Known(code string) bool {
	_, ok := table[Normalize(code)]
	return ok
}

// Resolve returns the bounds for code. It is total: unknown codes get Default.
func Resolve(code string) Bounds {
	if b, ok := table[Normalize(code)]; ok {
		return b
	}
	return Default
}

// Help renders the hint displayed under the stagiaire picker.
func Help(code string) string {
	b := Resolve(code)
	norm := Normalize(code)
	if _, ok := table[norm]; !ok {
		return fmt.Sprintf("Entre %d et %d stagiaires.", b.Min, b.Max)
	}
	if b.Min == b.Max {
		return fmt.Sprintf("Niveau %s : exactement %d stagiaire%s.", norm, b.Min, plural(b.Min))
	}
	return fmt.Sprintf("Niveau %s : entre %d et %d stagiaires.", norm, b.Min, b.Max)
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
