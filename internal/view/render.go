package view

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/page.html.tmpl templates/style.css
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{"markdown": Markdown, "href": safeHref}).
		ParseFS(templatesFS, "templates/page.html.tmpl"),
)

// RenderHTML renders a page as a standalone HTML document. The stylesheet is
// inlined at the top of <head> so the saved file prints the same as the
// preview.
func RenderHTML(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, err
	}

	css, err := templatesFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, err
	}
	html := buf.String()
	cssBlock := "<style>" + string(css) + "</style>"
	if strings.Contains(html, "<head>") {
		html = strings.Replace(html, "<head>", "<head>"+cssBlock, 1)
	} else {
		html = cssBlock + html
	}
	return []byte(html), nil
}

// safeHref passes contact links through html/template untouched for the
// schemes the layout produces. Anything else collapses to "#".
func safeHref(s string) template.URL {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"https://", "http://", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return template.URL(s)
		}
	}
	return template.URL("#")
}
