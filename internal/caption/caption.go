package caption

import (
	"strings"

	"github.com/ivlev/datasettag/internal/tags"
)

const (
	separator  = ", "
	typeJoiner = " of a "
)

// Render builds the caption line for a selection: the trigger word first
// when set, then every tag in category rank order. Type tags are joined
// with " of a " so that "photo" + "girl" reads "photo of a girl".
func Render(trigger string, sel *tags.Selection) string {
	var b strings.Builder
	if strings.TrimSpace(trigger) != "" {
		b.WriteString(trigger)
		b.WriteString(separator)
	}

	for _, g := range sel.Grouped() {
		joiner := separator
		if g.Category == tags.Type {
			joiner = typeJoiner
		}
		for _, text := range g.Tags {
			b.WriteString(text)
			b.WriteString(joiner)
		}
	}

	// only the plain separator is stripped; a dangling " of a " stays
	return strings.TrimSuffix(b.String(), separator)
}

// RenderGroups renders stored groups, e.g. a manifest entry.
func RenderGroups(trigger string, groups []tags.Group) string {
	sel := tags.NewSelection()
	sel.ReplaceAll(groups)
	return Render(trigger, sel)
}
