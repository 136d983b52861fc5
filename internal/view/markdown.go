package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
)

// Raw HTML in the source is dropped by goldmark's default (non-unsafe)
// renderer, so the output is safe to mark as template.HTML.
var md = goldmark.New()

// Markdown renders inline markdown (bold, emphasis, code, links) for a single
// line of resume text. Paragraph wrappers become spans so the text flows
// inline with labels such as "Expert:".
func Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	out := strings.TrimSpace(buf.String())
	out = strings.ReplaceAll(out, "<p>", "<span>")
	out = strings.ReplaceAll(out, "</p>", "</span>")
	return template.HTML(out)
}
