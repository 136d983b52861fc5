package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_InlineFormatting(t *testing.T) {
	out := string(Markdown("**Expert:** Go and `sql`"))
	assert.Equal(t, "<span><strong>Expert:</strong> Go and <code>sql</code></span>", out)
}

func TestMarkdown_DropsRawHTML(t *testing.T) {
	out := string(Markdown(`hi <script>alert(1)</script>`))
	assert.NotContains(t, out, "<script>")
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(Project(sampleResume(t)))
	require.NoError(t, err)
	s := string(html)

	assert.True(t, strings.HasPrefix(s, "<!DOCTYPE html>"))
	assert.Contains(t, s, "<head><style>@page { size: A4; margin: 0; }")
	assert.Contains(t, s, "<title>AdaLovelace_Resume</title>")
	assert.Contains(t, s, `href="tel:15550102000"`)
	assert.Contains(t, s, `href="mailto:ada@example.com"`)
	assert.Contains(t, s, "<strong>Expert:</strong> Go")
	assert.Contains(t, s, "Remote | 2020 — Present")
	assert.Contains(t, s, ProjectsHeading)
	assert.Less(t, strings.Index(s, "Zeta"), strings.Index(s, "Alpha"))
}

func TestSafeHref(t *testing.T) {
	assert.Equal(t, "tel:123", string(safeHref("tel:123")))
	assert.Equal(t, "https://x.dev", string(safeHref("https://x.dev")))
	assert.Equal(t, "#", string(safeHref("javascript:alert(1)")))
}
