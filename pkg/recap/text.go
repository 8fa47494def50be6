package recap

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Placeholder is shown for empty values.
const Placeholder = "Non renseigné"

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	valueIndent  = lipgloss.NewStyle().PaddingLeft(4)
)

// RenderText renders sections for a terminal. Badges appear as [label] and
// multiline values are indented under their label.
func RenderText(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, f := range s.Fields {
			b.WriteString("  ")
			b.WriteString(labelStyle.Render(f.Label + " :"))
			switch {
			case len(f.Badges) > 0:
				badges := make([]string, 0, len(f.Badges))
				for _, badge := range f.Badges {
					badges = append(badges, badgeStyle.Render("["+badge+"]"))
				}
				b.WriteString(" ")
				b.WriteString(strings.Join(badges, " "))
			case f.Multiline && strings.TrimSpace(f.Value) != "":
				b.WriteString("\n")
				b.WriteString(valueIndent.Render(f.Value))
			default:
				b.WriteString(" ")
				b.WriteString(displayValue(f.Value))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func displayValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}
