package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// StylePlain skips terminal rendering and prints the markdown as is.
const StylePlain = "plain"

// Renderer renders markdown for the terminal with one of glamour's standard
// styles, "auto" or StylePlain.
type Renderer struct {
	style string
	width int
}

// NewRenderer returns a Renderer for style. An empty style means "auto".
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "auto"
	}
	return &Renderer{style: style, width: 100}
}

// Render renders markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	if r.style == StylePlain {
		return markdown, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.width)}
	if r.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("renderer style %q: %w", r.style, err)
	}
	return tr.Render(markdown)
}
