package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/tags"
)

// Renderer formats session state for the terminal. In plain mode no
// escape sequences are emitted.
type Renderer struct {
	plain    bool
	renderer *lipgloss.Renderer
}

func New(w io.Writer, plain bool) *Renderer {
	return &Renderer{plain: plain, renderer: lipgloss.NewRenderer(w)}
}

func (r *Renderer) chip(text, bg string) string {
	if r.plain {
		return "[" + text + "]"
	}
	return r.renderer.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("#000000")).
		Padding(0, 1).
		Render(text)
}

// Chip renders one tag coloured by its category.
func (r *Renderer) Chip(t tags.Tag) string {
	return r.chip(t.Text, Color(t.Category))
}

// Trigger renders the trigger word line.
func (r *Renderer) Trigger(trigger string) string {
	if trigger == "" {
		return "trigger: (none)"
	}
	return "trigger: " + r.chip(trigger, triggerColor.hex())
}

// Selection lists the selected tags with their positions, as used by the
// rm and edit commands.
func (r *Renderer) Selection(list []tags.Tag) string {
	if len(list) == 0 {
		return "no tags selected"
	}
	var b strings.Builder
	for i, t := range list {
		fmt.Fprintf(&b, "%3d  %s (%s)\n", i, r.Chip(t), t.Category)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Catalog lists the available tags of one category.
func (r *Renderer) Catalog(c tags.Category, list []string) string {
	header := c.String()
	if c.IsSingleValued() {
		header += " (one)"
	}
	if len(list) == 0 {
		return header + ": empty"
	}
	chips := make([]string, len(list))
	for i, text := range list {
		chips[i] = fmt.Sprintf("%d:%s", i, r.chip(text, Color(c)))
	}
	return header + ": " + strings.Join(chips, " ")
}

// Images lists a directory, marking the active image.
func (r *Renderer) Images(images []source.Image, active string) string {
	if len(images) == 0 {
		return "no images"
	}
	var b strings.Builder
	for i, img := range images {
		mark := " "
		if img.Path == active {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%3d  %s\n", mark, i, img.Name)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Caption renders a caption preview line.
func (r *Renderer) Caption(text string) string {
	if r.plain {
		return "caption: " + text
	}
	return "caption: " + r.renderer.NewStyle().Italic(true).Render(text)
}
